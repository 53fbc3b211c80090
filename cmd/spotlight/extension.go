package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	osquery "github.com/osquery/osquery-go"
	"github.com/peterbourgon/ff/v3"

	"github.com/kolide/spotlight/pkg/table"
	"github.com/oklog/run"
)

func runExtension(args []string, slogger *slog.Logger) error {
	var (
		flagset    = flag.NewFlagSet("spotlight extension", flag.ExitOnError)
		flSocket   = flagset.String("socket", "", "path to the osquery extension socket")
		flTimeout  = flagset.Duration("timeout", 10*time.Second, "timeout for connecting to the socket")
		flInterval = flagset.Duration("interval", 3*time.Second, "ping interval for the extension manager")
	)

	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("SPOTLIGHT")); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *flSocket == "" {
		return errors.New("the -socket flag is required")
	}

	server, err := osquery.NewExtensionManagerServer(
		"com.kolide.spotlight",
		*flSocket,
		osquery.ServerTimeout(*flTimeout),
		osquery.ServerPingInterval(*flInterval),
	)
	if err != nil {
		return fmt.Errorf("creating extension server: %w", err)
	}

	for _, plugin := range table.PlatformTables(slogger) {
		server.RegisterPlugin(plugin)
	}

	var runGroup run.Group

	runGroup.Add(func() error {
		slogger.Log(context.TODO(), slog.LevelInfo,
			"starting extension server",
			"socket", *flSocket,
		)

		return server.Run()
	}, func(error) {
		server.Shutdown(context.TODO()) //nolint:errcheck
	})

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
