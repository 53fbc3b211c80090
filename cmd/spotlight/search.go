package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/kolide/spotlight/pkg/spotlight"
	"github.com/peterbourgon/ff/v3"
)

func runSearch(args []string, slogger *slog.Logger) error {
	var (
		flagset     = flag.NewFlagSet("spotlight search", flag.ExitOnError)
		flDir       = flagset.String("dir", "", "limit the search to a directory")
		flName      = flagset.String("name", "", "filename glob filter")
		flCount     = flagset.Bool("count", false, "print only the number of matches")
		flLiteral   = flagset.Bool("literal", false, "disable query interpretation")
		flInterpret = flagset.Bool("interpret", false, "interpret the query as Spotlight menu input")
		flTimeout   = flagset.Duration("timeout", 0, "kill the search after this duration")
	)

	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("SPOTLIGHT")); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	query := ""
	if flagset.NArg() > 0 {
		query = flagset.Arg(0)
	}

	opts := &spotlight.SearchOptions{
		Literal:   *flLiteral,
		Interpret: *flInterpret,
		Timeout:   *flTimeout,
	}
	if *flDir != "" {
		opts.OnlyIn = []string{*flDir}
	}
	if *flName != "" {
		opts.Name = []string{*flName}
	}

	s := spotlight.New(spotlight.WithSlogger(slogger))
	ctx := context.Background()

	start := time.Now()

	if *flCount {
		n, err := s.Count(ctx, query, opts)
		if err != nil {
			return err
		}

		fmt.Println(n)
		return nil
	}

	paths, err := s.Search(ctx, query, opts)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Println(p)
	}

	slogger.Log(ctx, slog.LevelDebug,
		"search complete",
		"results", len(paths),
		"took", time.Since(start).String(),
	)

	return nil
}
