// Package allowedcmd wraps access to exec.Cmd in order to consolidate path
// lookup logic. The Spotlight utilities ship at fixed locations on every
// macOS release, so we use hardcoded (known, safe) paths rather than
// consulting PATH. All process spawning in this module goes through this
// package.
package allowedcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

var ErrCommandNotFound = errors.New("command not found")

// AllowedCommand is the shared shape of the command constructors below.
// Callers hold one of these when the binary to run is itself configurable,
// e.g. tablehelpers.Run.
type AllowedCommand func(ctx context.Context, arg ...string) (*TracedCmd, error)

// TracedCmd wraps exec.Cmd, retaining the construction context so that
// loggers further up the stack can attach it to spawn-time log lines.
type TracedCmd struct {
	Ctx context.Context // nolint:containedctx // This is an approved usage of context for short lived cmd
	*exec.Cmd
}

func (t *TracedCmd) String() string {
	return fmt.Sprintf("%+v", t.Args)
}

func validatedCommand(ctx context.Context, knownPath string, arg ...string) (*TracedCmd, error) {
	knownPath = filepath.Clean(knownPath)

	if _, err := os.Stat(knownPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, knownPath)
	}

	return newCmd(ctx, knownPath, arg...), nil
}

func newCmd(ctx context.Context, fullPathToCmd string, arg ...string) *TracedCmd {
	return &TracedCmd{
		Ctx: ctx,
		Cmd: exec.CommandContext(ctx, fullPathToCmd, arg...),
	}
}

func Mdfind(ctx context.Context, arg ...string) (*TracedCmd, error) {
	return validatedCommand(ctx, "/usr/bin/mdfind", arg...)
}

func Mdls(ctx context.Context, arg ...string) (*TracedCmd, error) {
	return validatedCommand(ctx, "/usr/bin/mdls", arg...)
}

func Mdutil(ctx context.Context, arg ...string) (*TracedCmd, error) {
	return validatedCommand(ctx, "/usr/bin/mdutil", arg...)
}

func Mdimport(ctx context.Context, arg ...string) (*TracedCmd, error) {
	return validatedCommand(ctx, "/usr/bin/mdimport", arg...)
}

// Echo is only used by tests that need a real spawnable binary.
func Echo(ctx context.Context, arg ...string) (*TracedCmd, error) {
	for _, p := range []string{"/bin/echo", "/usr/bin/echo"} {
		validatedCmd, err := validatedCommand(ctx, p, arg...)
		if err != nil {
			continue
		}

		return validatedCmd, nil
	}

	return nil, fmt.Errorf("%w: echo", ErrCommandNotFound)
}
