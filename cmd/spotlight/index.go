package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/kolide/spotlight/pkg/spotlight"
	"github.com/peterbourgon/ff/v3"
)

func runStatus(args []string, slogger *slog.Logger) error {
	var (
		flagset  = flag.NewFlagSet("spotlight status", flag.ExitOnError)
		flVolume = flagset.String("volume", "/", "volume to query")
	)

	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("SPOTLIGHT")); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	s := spotlight.New(spotlight.WithSlogger(slogger))

	status, err := s.GetIndexStatus(context.Background(), *flVolume)
	if err != nil {
		return err
	}

	fmt.Printf("volume: %s\n", status.VolumePath)
	fmt.Printf("state: %s\n", status.State)
	fmt.Printf("enabled: %t\n", status.Enabled)
	if status.ScanBaseTime != nil {
		fmt.Printf("scan base time: %s\n", status.ScanBaseTime.UTC().Format(time.RFC3339))
	}
	if status.Reasoning != "" {
		fmt.Printf("reasoning: %s\n", status.Reasoning)
	}

	return nil
}

func runIndex(args []string, slogger *slog.Logger) error {
	var (
		flagset  = flag.NewFlagSet("spotlight index", flag.ExitOnError)
		flVolume = flagset.String("volume", "/", "volume to operate on")
	)

	flagset.Usage = func() {
		fmt.Fprintf(flagset.Output(), `Usage: spotlight index <enable|disable|erase|remove|flush|list> [flags]

Flags:
`)
		flagset.PrintDefaults()
	}

	if len(args) < 1 {
		flagset.Usage()
		return errors.New("an index operation is required")
	}

	verb := args[0]

	if err := ff.Parse(flagset, args[1:], ff.WithEnvVarPrefix("SPOTLIGHT")); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	s := spotlight.New(spotlight.WithSlogger(slogger))
	ctx := context.Background()

	var (
		out string
		err error
	)

	switch verb {
	case "enable":
		out, err = s.SetIndexing(ctx, *flVolume, true)
	case "disable":
		out, err = s.SetIndexing(ctx, *flVolume, false)
	case "erase":
		out, err = s.EraseIndex(ctx, *flVolume)
	case "remove":
		out, err = s.RemoveIndex(ctx, *flVolume)
	case "flush":
		out, err = s.FlushCaches(ctx, *flVolume)
	case "list":
		var contents []string
		contents, err = s.ListIndexContents(ctx, *flVolume)
		for _, c := range contents {
			fmt.Println(c)
		}
	default:
		return fmt.Errorf("unknown index operation %q", verb)
	}

	if err != nil {
		var pe *spotlight.ProcessError
		if errors.As(err, &pe) && pe.RequiresRoot {
			return fmt.Errorf("%s requires elevated privileges, re-run with sudo: %w", verb, err)
		}

		return err
	}

	if out != "" {
		fmt.Println(out)
	}

	return nil
}
