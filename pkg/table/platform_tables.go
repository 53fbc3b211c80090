package table

import (
	"log/slog"

	osquery "github.com/osquery/osquery-go"
)

// PlatformTables returns all the table plugins this module provides.
func PlatformTables(slogger *slog.Logger) []osquery.OsqueryPlugin {
	return []osquery.OsqueryPlugin{
		SearchTablePlugin(slogger),
		MetadataTablePlugin(slogger),
		IndexStatusTablePlugin(slogger),
	}
}
