package spotlight

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/kolide/spotlight/pkg/allowedcmd"
)

// TestImport runs mdimport in test mode (-t), which imports the given paths
// without storing results in the index, and returns the tool's diagnostic
// output.
func (s *Spotlight) TestImport(ctx context.Context, paths []string, opts *ImportOptions) (string, error) {
	if opts == nil {
		opts = &ImportOptions{}
	}

	if err := opts.validate(); err != nil {
		return "", err
	}

	if len(paths) == 0 {
		return "", &ValidationError{Field: "paths", Reason: "at least one path is required"}
	}

	args := []string{"-t"}

	if opts.DebugLevel > 0 {
		args = append(args, "-d", strconv.Itoa(opts.DebugLevel))
	}

	if opts.OutputFile != "" {
		args = append(args, "-o", opts.OutputFile)
	}

	if opts.ShowPerformance {
		args = append(args, "-p")
	}

	args = append(args, paths...)

	// mdimport -t reports through stderr, so run without the benign-stderr
	// check and surface combined output.
	out, err := s.runSimple(ctx, opts.Timeout, allowedcmd.Mdimport, args)
	if err != nil {
		// Debug output on stderr is expected in test mode; only a
		// process failure is an error.
		var pe *ProcessError
		if errors.As(err, &pe) && pe.Err == nil {
			return pe.Stderr, nil
		}
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// ListImporters lists the installed Spotlight importer bundles (-L). Only
// opts.Timeout applies; the import-specific fields are ignored.
func (s *Spotlight) ListImporters(ctx context.Context, opts *ImportOptions) ([]string, error) {
	out, err := s.runSimple(ctx, opts.timeout(), allowedcmd.Mdimport, []string{"-L"})
	if err != nil {
		// mdimport -L prints its listing to stderr on some releases.
		var pe *ProcessError
		if errors.As(err, &pe) && pe.Err == nil {
			return parseImporterList(pe.Stderr), nil
		}
		return nil, err
	}

	return parseImporterList(string(out)), nil
}

// ListImporterAttributes lists the schema attributes importers can set (-A).
// Each record is a tab-separated quadruple; records are returned unparsed.
// Only opts.Timeout applies.
func (s *Spotlight) ListImporterAttributes(ctx context.Context, opts *ImportOptions) ([]string, error) {
	out, err := s.runSimple(ctx, opts.timeout(), allowedcmd.Mdimport, []string{"-A"})
	if err != nil {
		return nil, err
	}

	return splitResults(out, '\n'), nil
}

// DumpSchema prints the Spotlight schema file (-X). Only opts.Timeout
// applies.
func (s *Spotlight) DumpSchema(ctx context.Context, opts *ImportOptions) (string, error) {
	out, err := s.runSimple(ctx, opts.timeout(), allowedcmd.Mdimport, []string{"-X"})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// Reimport forces a reimport of all files handled by the given importer
// bundle (-r), e.g. /System/Library/Spotlight/Chat.mdimporter. Only
// opts.Timeout applies.
func (s *Spotlight) Reimport(ctx context.Context, importerPath string, opts *ImportOptions) (string, error) {
	if importerPath == "" {
		return "", &ValidationError{Field: "importerPath", Reason: "importer bundle path is required"}
	}

	out, err := s.runSimple(ctx, opts.timeout(), allowedcmd.Mdimport, []string{"-r", importerPath})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// parseImporterList splits the -L listing, dropping the "Paths:" banner line
// and per-line decoration.
func parseImporterList(out string) []string {
	importers := []string{}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSuffix(line, ",")
		line = strings.Trim(line, `"'`)

		if line == "" || strings.HasPrefix(line, "Paths:") {
			continue
		}

		importers = append(importers, line)
	}

	return importers
}
