// Package table exposes Spotlight searches, file metadata, and index status
// as osquery table plugins.
package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kolide/spotlight/pkg/spotlight"
	"github.com/kolide/spotlight/pkg/table/tablehelpers"
	"github.com/osquery/osquery-go/plugin/table"
)

type searchTable struct {
	slogger *slog.Logger
	s       *spotlight.Spotlight
}

/*
SearchTablePlugin returns a Spotlight search table.
Example query:

	SELECT path FROM spotlight_search
	WHERE query = 'kMDItemKind == "PDF document"' AND directory = '/Users/me';
*/
func SearchTablePlugin(slogger *slog.Logger) *table.Plugin {
	columns := []table.ColumnDefinition{
		table.TextColumn("query"),
		table.TextColumn("directory"),
		table.TextColumn("path"),
	}

	t := &searchTable{
		slogger: slogger.With("table", "spotlight_search"),
		s:       spotlight.New(spotlight.WithSlogger(slogger)),
	}

	return table.NewPlugin("spotlight_search", columns, t.generate)
}

func (t *searchTable) generate(ctx context.Context, queryContext table.QueryContext) ([]map[string]string, error) {
	queries := tablehelpers.GetConstraints(queryContext, "query")
	if len(queries) == 0 {
		return nil, errors.New("the spotlight_search table requires that you specify a constraint WHERE query =")
	}

	var results []map[string]string

	for _, query := range queries {
		for _, directory := range tablehelpers.GetConstraints(queryContext, "directory", tablehelpers.WithDefaults("")) {
			opts := &spotlight.SearchOptions{}
			if directory != "" {
				opts.OnlyIn = []string{directory}
			}

			paths, err := t.s.Search(ctx, query, opts)
			if err != nil {
				return nil, fmt.Errorf("calling mdfind: %w", err)
			}

			for _, path := range paths {
				results = append(results, map[string]string{
					"query":     query,
					"directory": directory,
					"path":      path,
				})
			}
		}
	}

	return results, nil
}
