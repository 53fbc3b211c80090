package spotlight

import (
	"context"
	"strings"
	"time"

	"github.com/kolide/spotlight/pkg/allowedcmd"
	"github.com/kolide/spotlight/pkg/log/multislogger"
)

// IndexState classifies an mdutil -s status line.
type IndexState string

const (
	IndexEnabled  IndexState = "enabled"
	IndexDisabled IndexState = "disabled"
	IndexUnknown  IndexState = "unknown"
	IndexError    IndexState = "error"
)

// IndexStatus is the parsed result of `mdutil -s volume`. Status retains the
// raw stdout for callers that need fields we do not parse.
type IndexStatus struct {
	State          IndexState
	Enabled        bool
	Status         string
	ScanBaseTime   *time.Time
	Reasoning      string
	VolumePath     string
	IsSystemVolume bool
}

// GetIndexStatus queries Spotlight indexing status for a volume.
func (s *Spotlight) GetIndexStatus(ctx context.Context, volume string) (*IndexStatus, error) {
	out, err := s.runSimple(volumeContext(ctx, volume), 0, allowedcmd.Mdutil, []string{"-s", volume})
	if err != nil {
		return nil, err
	}

	return parseIndexStatus(string(out), volume), nil
}

// SetIndexing enables or disables indexing for a volume (-i on|off).
// Requires elevated privileges for most volumes; the returned *ProcessError
// carries RequiresRoot when that is the failure.
func (s *Spotlight) SetIndexing(ctx context.Context, volume string, enable bool) (string, error) {
	state := "off"
	if enable {
		state = "on"
	}

	out, err := s.runSimple(volumeContext(ctx, volume), 0, allowedcmd.Mdutil, []string{"-i", state, volume})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// EraseIndex erases the local index and triggers a rebuild (-E).
func (s *Spotlight) EraseIndex(ctx context.Context, volume string) (string, error) {
	out, err := s.runSimple(volumeContext(ctx, volume), 0, allowedcmd.Mdutil, []string{"-E", volume})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// RemoveIndex removes the index directory entirely (-X). Indexing must be
// disabled first.
func (s *Spotlight) RemoveIndex(ctx context.Context, volume string) (string, error) {
	out, err := s.runSimple(volumeContext(ctx, volume), 0, allowedcmd.Mdutil, []string{"-X", volume})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// ListIndexContents lists the contents of the index directory (-L).
func (s *Spotlight) ListIndexContents(ctx context.Context, volume string) ([]string, error) {
	out, err := s.runSimple(volumeContext(ctx, volume), 0, allowedcmd.Mdutil, []string{"-L", volume})
	if err != nil {
		return nil, err
	}

	return splitResults(out, '\n'), nil
}

// FlushCaches flushes local caches to the index (-p).
func (s *Spotlight) FlushCaches(ctx context.Context, volume string) (string, error) {
	out, err := s.runSimple(volumeContext(ctx, volume), 0, allowedcmd.Mdutil, []string{"-p", volume})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// volumeContext tags the context with the volume path so multislogger-built
// handlers attach it to every log line for this operation.
func volumeContext(ctx context.Context, volume string) context.Context {
	return context.WithValue(ctx, multislogger.VolumeKey, volume)
}

// parseIndexStatus extracts the enabled flag, optional scan base time, and
// optional reasoning clause from mdutil -s output, e.g.:
//
//	/:
//		Indexing enabled.
//		Scan base time: 2024-03-01 10:22:17 +0000 (1709288537)
//		reasoning: default scan
func parseIndexStatus(out string, volume string) *IndexStatus {
	status := &IndexStatus{
		State:          IndexUnknown,
		Status:         strings.TrimSpace(out),
		VolumePath:     volume,
		IsSystemVolume: volume == "/" || strings.HasPrefix(volume, "/System/Volumes/"),
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)

		// Match the state against the indented status line only; the
		// volume header echoed on the first line could otherwise hit
		// (e.g. /Volumes/ErrorLogs:).
		if status.State == IndexUnknown {
			switch {
			case strings.HasPrefix(line, "Indexing enabled."):
				status.State = IndexEnabled
				status.Enabled = true
			case strings.HasPrefix(line, "Indexing disabled."):
				status.State = IndexDisabled
			case strings.HasPrefix(line, "Error"):
				status.State = IndexError
			}
		}

		if rest, ok := strings.CutPrefix(line, "Scan base time:"); ok {
			rest = strings.TrimSpace(rest)
			// Trailing "(epoch)" annotation is dropped before parsing.
			if i := strings.Index(rest, "("); i > 0 {
				rest = strings.TrimSpace(rest[:i])
			}

			if t, ok := parseDate(rest).(time.Time); ok {
				status.ScanBaseTime = &t
			}
		}

		if rest, ok := strings.CutPrefix(line, "reasoning:"); ok {
			status.Reasoning = strings.Trim(strings.TrimSpace(rest), `"'`)
		}
	}

	return status
}
