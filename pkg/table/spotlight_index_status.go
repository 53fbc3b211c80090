package table

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kolide/spotlight/pkg/spotlight"
	"github.com/kolide/spotlight/pkg/table/tablehelpers"
	"github.com/osquery/osquery-go/plugin/table"
)

type indexStatusTable struct {
	slogger *slog.Logger
	s       *spotlight.Spotlight
}

// IndexStatusTablePlugin returns a table reporting mdutil -s per volume.
func IndexStatusTablePlugin(slogger *slog.Logger) *table.Plugin {
	columns := []table.ColumnDefinition{
		table.TextColumn("volume"),
		table.TextColumn("state"),
		table.IntegerColumn("enabled"),
		table.TextColumn("scan_base_time"),
		table.TextColumn("reasoning"),
	}

	t := &indexStatusTable{
		slogger: slogger.With("table", "spotlight_index_status"),
		s:       spotlight.New(spotlight.WithSlogger(slogger)),
	}

	return table.NewPlugin("spotlight_index_status", columns, t.generate)
}

func (t *indexStatusTable) generate(ctx context.Context, queryContext table.QueryContext) ([]map[string]string, error) {
	var results []map[string]string

	for _, volume := range tablehelpers.GetConstraints(queryContext, "volume", tablehelpers.WithDefaults("/")) {
		status, err := t.s.GetIndexStatus(ctx, volume)
		if err != nil {
			return nil, fmt.Errorf("calling mdutil: %w", err)
		}

		enabled := "0"
		if status.Enabled {
			enabled = "1"
		}

		scanBaseTime := ""
		if status.ScanBaseTime != nil {
			scanBaseTime = status.ScanBaseTime.UTC().Format(time.RFC3339)
		}

		results = append(results, map[string]string{
			"volume":         volume,
			"state":          string(status.State),
			"enabled":        enabled,
			"scan_base_time": scanBaseTime,
			"reasoning":      status.Reasoning,
		})
	}

	return results, nil
}
