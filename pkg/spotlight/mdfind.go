package spotlight

import (
	"context"
	"strconv"
	"strings"

	"github.com/kolide/spotlight/pkg/allowedcmd"
)

// Search runs a one-shot mdfind query and returns the matched paths.
func (s *Spotlight) Search(ctx context.Context, query string, opts *SearchOptions) ([]string, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	if opts.Live {
		return nil, &ValidationError{Field: "live", Reason: "use LiveSearch for live queries"}
	}

	if err := opts.validate(query); err != nil {
		return nil, err
	}

	out, err := s.runSimple(ctx, opts.Timeout, allowedcmd.Mdfind, opts.args(query))
	if err != nil {
		return nil, err
	}

	sep := byte('\n')
	if opts.NullSeparator {
		sep = 0
	}

	return splitResults(out, sep), nil
}

// Count runs mdfind in count mode and returns the number of matches.
func (s *Spotlight) Count(ctx context.Context, query string, opts *SearchOptions) (int, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	countOpts := *opts
	countOpts.Count = true

	if err := countOpts.validate(query); err != nil {
		return 0, err
	}

	out, err := s.runSimple(ctx, countOpts.Timeout, allowedcmd.Mdfind, countOpts.args(query))
	if err != nil {
		return 0, err
	}

	trimmed := strings.TrimSpace(string(out))
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &ParseError{Input: trimmed, Reason: "expected a numeric count"}
	}

	return n, nil
}

// SearchDirectories runs the same query against each directory and collects
// per-directory results in input order.
func (s *Spotlight) SearchDirectories(ctx context.Context, query string, dirs []string, opts *SearchOptions) []BatchResult {
	queries := make([]BatchQuery, len(dirs))
	for i, dir := range dirs {
		dirOpts := SearchOptions{}
		if opts != nil {
			dirOpts = *opts
		}
		dirOpts.OnlyIn = []string{dir}

		queries[i] = BatchQuery{Query: query, Options: &dirOpts}
	}

	return s.BatchSearch(ctx, queries)
}

// SearchQueries runs each query with the same options and collects results
// in input order.
func (s *Spotlight) SearchQueries(ctx context.Context, queries []string, opts *SearchOptions) []BatchResult {
	batch := make([]BatchQuery, len(queries))
	for i, q := range queries {
		batch[i] = BatchQuery{Query: q, Options: opts}
	}

	return s.BatchSearch(ctx, batch)
}

// splitResults splits process output on the separator, dropping the trailing
// empty element left by the final delimiter.
func splitResults(out []byte, sep byte) []string {
	if len(out) == 0 {
		return []string{}
	}

	parts := strings.Split(string(out), string(sep))

	results := make([]string, 0, len(parts))
	for _, p := range parts {
		if sep == '\n' {
			p = strings.TrimRight(p, "\r")
		}
		if p == "" {
			continue
		}
		results = append(results, p)
	}

	return results
}
