package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kolide/spotlight/pkg/spotlight"
	"github.com/kolide/spotlight/pkg/table/tablehelpers"
	"github.com/osquery/osquery-go/plugin/table"
)

type metadataTable struct {
	slogger *slog.Logger
	s       *spotlight.Spotlight
}

// MetadataTablePlugin returns a table with one row per Spotlight attribute
// of the queried path.
func MetadataTablePlugin(slogger *slog.Logger) *table.Plugin {
	columns := []table.ColumnDefinition{
		table.TextColumn("path"),
		table.TextColumn("attribute"),
		table.TextColumn("value"),
		table.TextColumn("value_type"),
	}

	t := &metadataTable{
		slogger: slogger.With("table", "spotlight_metadata"),
		s:       spotlight.New(spotlight.WithSlogger(slogger)),
	}

	return table.NewPlugin("spotlight_metadata", columns, t.generate)
}

func (t *metadataTable) generate(ctx context.Context, queryContext table.QueryContext) ([]map[string]string, error) {
	paths := tablehelpers.GetConstraints(queryContext, "path")
	if len(paths) == 0 {
		return nil, errors.New("the spotlight_metadata table requires that you specify a constraint WHERE path =")
	}

	var results []map[string]string

	for _, path := range paths {
		md, err := t.s.GetMetadata(ctx, path, nil)
		if err != nil {
			return nil, fmt.Errorf("calling mdls: %w", err)
		}

		for _, attr := range md.Names() {
			value, _ := md.Get(attr)
			rendered, valueType := renderValue(value)

			results = append(results, map[string]string{
				"path":       path,
				"attribute":  attr,
				"value":      rendered,
				"value_type": valueType,
			})
		}
	}

	return results, nil
}

// renderValue flattens a typed metadata value into osquery's all-text row
// model, keeping the original type visible in a separate column.
func renderValue(v any) (string, string) {
	switch t := v.(type) {
	case nil:
		return "", "null"
	case string:
		return t, "string"
	case bool:
		if t {
			return "1", "bool"
		}
		return "0", "bool"
	case int64:
		return fmt.Sprintf("%d", t), "number"
	case float64:
		return fmt.Sprintf("%g", t), "number"
	case time.Time:
		return t.UTC().Format(time.RFC3339), "date"
	case []string:
		return fmt.Sprintf("%v", t), "array"
	default:
		return fmt.Sprintf("%v", t), "unknown"
	}
}
