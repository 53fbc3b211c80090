package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kolide/spotlight/pkg/spotlight"
	"github.com/peterbourgon/ff/v3"
)

func runMetadata(args []string, slogger *slog.Logger) error {
	var (
		flagset      = flag.NewFlagSet("spotlight metadata", flag.ExitOnError)
		flAttributes = flagset.String("attributes", "", "comma-separated attribute names to fetch")
		flRaw        = flagset.Bool("raw", false, "use mdls raw mode (requires -attributes)")
		flNullMarker = flagset.String("null_marker", "", "override the token printed for missing values")
		flPlist      = flagset.Bool("plist", false, "parse mdls plist output instead of text")
		flExtended   = flagset.Bool("extended", false, "print the basic/EXIF/XMP structured view")
		flJSON       = flagset.Bool("json", false, "print as JSON")
	)

	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("SPOTLIGHT")); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	if flagset.NArg() < 1 {
		return fmt.Errorf("a file path is required")
	}
	path := flagset.Arg(0)

	s := spotlight.New(spotlight.WithSlogger(slogger))
	ctx := context.Background()

	if *flExtended {
		ext, err := s.GetExtendedMetadata(ctx, path)
		if err != nil {
			return err
		}

		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"basic": ext.Basic,
			"exif":  ext.EXIF,
			"xmp":   ext.XMP,
		})
	}

	opts := &spotlight.MetadataOptions{
		Raw:        *flRaw,
		NullMarker: *flNullMarker,
		Plist:      *flPlist,
	}
	if *flAttributes != "" {
		opts.Attributes = strings.Split(*flAttributes, ",")
	}

	md, err := s.GetMetadata(ctx, path, opts)
	if err != nil {
		return err
	}

	if *flJSON {
		return json.NewEncoder(os.Stdout).Encode(md.Map())
	}

	for _, name := range md.Names() {
		value, _ := md.Get(name)
		fmt.Printf("%s = %s\n", name, formatMetadataValue(value))
	}

	return nil
}

func formatMetadataValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "(null)"
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}
