package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kolide/kit/version"
	"github.com/kolide/spotlight/pkg/log/multislogger"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-version" || os.Args[1] == "--version") {
		version.PrintFull()
		os.Exit(0)
	}

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(1)
	}

	var run func([]string, *slog.Logger) error
	switch os.Args[1] {
	case "search":
		run = runSearch
	case "live":
		run = runLive
	case "metadata":
		run = runMetadata
	case "status":
		run = runStatus
	case "index":
		run = runIndex
	case "import":
		run = runImport
	case "attributes":
		run = runAttributes
	case "extension":
		run = runExtension
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(1)
	}

	slogger := multislogger.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevelFromEnv(),
	}))

	if err := run(os.Args[2:], slogger.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "running %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func logLevelFromEnv() slog.Level {
	if os.Getenv("SPOTLIGHT_DEBUG") != "" {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

func usage(w *os.File) {
	fmt.Fprintf(w, `Usage: spotlight <subcommand> [flags]

Subcommands:
  search      run a one-shot mdfind query
  live        stream results as the filesystem changes
  metadata    print Spotlight metadata for a file
  status      print indexing status for a volume
  index       administer the Spotlight index (enable, disable, erase, ...)
  import      run mdimport operations
  attributes  look up known Spotlight attribute names
  extension   serve the osquery table plugins on an extension socket

Run 'spotlight <subcommand> -h' for subcommand flags.
`)
}
