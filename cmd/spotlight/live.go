package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/kolide/spotlight/pkg/spotlight"
	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v3"
)

func runLive(args []string, slogger *slog.Logger) error {
	var (
		flagset   = flag.NewFlagSet("spotlight live", flag.ExitOnError)
		flDir     = flagset.String("dir", "", "limit the search to a directory")
		flName    = flagset.String("name", "", "filename glob filter")
		flReprint = flagset.Bool("reprint", false, "re-print the full result set on every change")
		flTimeout = flagset.Duration("timeout", 0, "stop the live search after this duration")
	)

	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("SPOTLIGHT")); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	query := ""
	if flagset.NArg() > 0 {
		query = flagset.Arg(0)
	}

	opts := &spotlight.SearchOptions{
		Reprint: *flReprint,
		Timeout: *flTimeout,
	}
	if *flDir != "" {
		opts.OnlyIn = []string{*flDir}
	}
	if *flName != "" {
		opts.Name = []string{*flName}
	}

	s := spotlight.New(spotlight.WithSlogger(slogger))

	stream, err := s.LiveSearch(context.Background(), query, opts)
	if err != nil {
		return err
	}

	var runGroup run.Group

	// print batches until the stream ends
	runGroup.Add(func() error {
		for batch := range stream.Batches() {
			for _, path := range batch {
				fmt.Println(path)
			}
		}

		return stream.Err()
	}, func(error) {
		stream.Stop()
	})

	// listen for signals
	runGroup.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	err = runGroup.Run()

	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		slogger.Log(context.TODO(), slog.LevelInfo,
			"shutting down",
			"signal", sigErr.Signal.String(),
		)

		return nil
	}

	return err
}
