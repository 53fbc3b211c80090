package main

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/kolide/spotlight/pkg/spotlight/attributes"
	"github.com/peterbourgon/ff/v3"
)

func runAttributes(args []string, _ *slog.Logger) error {
	var (
		flagset    = flag.NewFlagSet("spotlight attributes", flag.ExitOnError)
		flSearch   = flagset.String("search", "", "substring to search names and descriptions for")
		flCategory = flagset.String("category", "", "limit to a category (filesystem, common, image, audio, video, document, location)")
	)

	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("SPOTLIGHT")); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	// exact name lookup when a positional argument is given
	if flagset.NArg() > 0 {
		name := flagset.Arg(0)

		def, ok := attributes.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown attribute %q", name)
		}

		printDefinition(def)
		return nil
	}

	var defs []attributes.Definition
	switch {
	case *flSearch != "":
		defs = attributes.Search(*flSearch)
	case *flCategory != "":
		defs = attributes.ByCategory(attributes.Category(*flCategory))
	default:
		for _, name := range attributes.Names() {
			def, _ := attributes.Lookup(name)
			defs = append(defs, def)
		}
	}

	for _, def := range defs {
		fmt.Printf("%s (%s, %s): %s\n", def.Name, def.Type, def.Category, def.Description)
	}

	return nil
}

func printDefinition(def attributes.Definition) {
	fmt.Printf("name: %s\n", def.Name)
	fmt.Printf("type: %s\n", def.Type)
	fmt.Printf("category: %s\n", def.Category)
	fmt.Printf("description: %s\n", def.Description)
	if def.Example != "" {
		fmt.Printf("example: %s\n", def.Example)
	}
}
