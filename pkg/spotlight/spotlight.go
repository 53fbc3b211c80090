// Package spotlight wraps the macOS Spotlight command-line utilities
// (mdfind, mdls, mdutil, mdimport). It builds argv arrays from validated
// option structs, spawns the binaries through allowedcmd, and parses their
// textual output into typed values.
package spotlight

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kolide/spotlight/pkg/allowedcmd"
)

// Spotlight is the entry point for all wrapped commands. The zero value is
// not usable; construct with New.
type Spotlight struct {
	slogger *slog.Logger

	// run is the exec seam. Tests replace it to feed canned stdout and
	// stderr without spawning processes.
	run runFunc
}

type runFunc func(ctx context.Context, cmd allowedcmd.AllowedCommand, args []string, stdout io.Writer, stderr io.Writer) error

type Option func(*Spotlight)

// WithSlogger sets the logger used for spawn-time debug lines.
func WithSlogger(slogger *slog.Logger) Option {
	return func(s *Spotlight) {
		s.slogger = slogger
	}
}

func New(opts ...Option) *Spotlight {
	s := &Spotlight{
		slogger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.run == nil {
		s.run = s.execRun
	}

	return s
}

// execRun spawns the command and copies its streams into the given writers.
func (s *Spotlight) execRun(ctx context.Context, execCmd allowedcmd.AllowedCommand, args []string, stdout io.Writer, stderr io.Writer) error {
	cmd, err := execCmd(ctx, args...)
	if err != nil {
		return fmt.Errorf("creating command: %w", err)
	}

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	s.slogger.Log(ctx, slog.LevelDebug,
		"execing",
		"cmd", cmd.String(),
		"args", cmd.Args,
	)

	switch err := cmd.Run(); {
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return fmt.Errorf("could not find %s to run: %w", cmd.Path, err)
	case ctx.Err() != nil:
		// ctx.Err() should only be set if the context is canceled or done
		return fmt.Errorf("context canceled during exec '%s': %w", cmd.String(), ctx.Err())
	default:
		return fmt.Errorf("exec '%s': %w", cmd.String(), err)
	}
}

// runSimple runs the command to completion and returns stdout. A non-zero
// exit or non-benign stderr output becomes a *ProcessError.
func (s *Spotlight) runSimple(ctx context.Context, timeout time.Duration, cmd allowedcmd.AllowedCommand, args []string) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	if err := s.run(ctx, cmd, args, &stdout, &stderr); err != nil {
		return nil, newProcessError(stderr.String(), err)
	}

	if msg := nonBenignStderr(stderr.String()); msg != "" {
		return nil, newProcessError(msg, nil)
	}

	return stdout.Bytes(), nil
}

// nonBenignStderr filters out the diagnostic noise the Spotlight tools are
// known to print on stderr during normal operation, returning whatever
// remains. An empty return means the stderr output can be ignored.
func nonBenignStderr(stderr string) string {
	var kept []string

	for _, line := range strings.Split(stderr, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if isBenignStderrLine(trimmed) {
			continue
		}

		kept = append(kept, trimmed)
	}

	return strings.Join(kept, "\n")
}

func isBenignStderrLine(line string) bool {
	// mdfind logs locale keyword loading through UserQueryParser on some
	// macOS releases.
	return strings.HasPrefix(line, "[UserQueryParser]")
}
