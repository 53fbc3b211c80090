package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"

	"github.com/kolide/spotlight/pkg/spotlight"
	"github.com/peterbourgon/ff/v3"
)

func runImport(args []string, slogger *slog.Logger) error {
	var (
		flagset       = flag.NewFlagSet("spotlight import", flag.ExitOnError)
		flDebugLevel  = flagset.Int("debug_level", 0, "mdimport debug level (1-3)")
		flOutputFile  = flagset.String("output", "", "store imported attributes to a file")
		flPerformance = flagset.Bool("performance", false, "print import timing information")
		flTimeout     = flagset.Duration("timeout", 0, "kill the operation after this duration")
	)

	flagset.Usage = func() {
		fmt.Fprintf(flagset.Output(), `Usage: spotlight import <test|importers|attributes|schema|reimport> [flags] [paths...]

Flags:
`)
		flagset.PrintDefaults()
	}

	if len(args) < 1 {
		flagset.Usage()
		return errors.New("an import operation is required")
	}

	verb := args[0]

	if err := ff.Parse(flagset, args[1:], ff.WithEnvVarPrefix("SPOTLIGHT")); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	s := spotlight.New(spotlight.WithSlogger(slogger))
	ctx := context.Background()

	switch verb {
	case "test":
		out, err := s.TestImport(ctx, flagset.Args(), &spotlight.ImportOptions{
			DebugLevel:      *flDebugLevel,
			OutputFile:      *flOutputFile,
			ShowPerformance: *flPerformance,
			Timeout:         *flTimeout,
		})
		if err != nil {
			return err
		}

		fmt.Println(out)
	case "importers":
		importers, err := s.ListImporters(ctx, &spotlight.ImportOptions{Timeout: *flTimeout})
		if err != nil {
			return err
		}

		for _, imp := range importers {
			fmt.Println(imp)
		}
	case "attributes":
		attrs, err := s.ListImporterAttributes(ctx, &spotlight.ImportOptions{Timeout: *flTimeout})
		if err != nil {
			return err
		}

		for _, a := range attrs {
			fmt.Println(a)
		}
	case "schema":
		schema, err := s.DumpSchema(ctx, &spotlight.ImportOptions{Timeout: *flTimeout})
		if err != nil {
			return err
		}

		fmt.Println(schema)
	case "reimport":
		if flagset.NArg() < 1 {
			return errors.New("reimport requires an importer bundle path")
		}

		out, err := s.Reimport(ctx, flagset.Arg(0), &spotlight.ImportOptions{Timeout: *flTimeout})
		if err != nil {
			return err
		}

		if out != "" {
			fmt.Println(out)
		}
	default:
		return fmt.Errorf("unknown import operation %q", verb)
	}

	return nil
}
