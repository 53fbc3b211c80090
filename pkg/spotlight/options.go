package spotlight

import (
	"time"
)

// DefaultNullMarker is the token mdls prints for attributes without a value.
const DefaultNullMarker = "(null)"

// SearchOptions configures a single mdfind invocation. The zero value is a
// plain one-shot search over the whole index.
type SearchOptions struct {
	// OnlyIn limits the search to the given directories (-onlyin).
	OnlyIn []string
	// Name adds filename glob filters (-name). A search with an empty
	// query string is only valid when at least one Name filter is set.
	Name []string
	// Attributes asks mdfind to print the named attributes alongside each
	// path (-attr).
	Attributes []string
	// SmartFolder runs the query saved in the named smart folder (-s).
	SmartFolder string
	// NullSeparator separates results with NUL instead of newline (-0).
	NullSeparator bool
	// Count prints only the number of matches (-count). Incompatible
	// with Live.
	Count bool
	// Live keeps the process running and re-emits results as the
	// filesystem changes (-live). Incompatible with Count.
	Live bool
	// Reprint re-prints the full result set on every change (-reprint).
	// Requires Live.
	Reprint bool
	// Literal disables query interpretation (-literal). Incompatible
	// with Interpret.
	Literal bool
	// Interpret treats the query as if typed into the Spotlight menu
	// (-interpret). Incompatible with Literal.
	Interpret bool
	// Timeout, when non-zero, bounds the process lifetime. For live
	// searches the child is killed when the deadline passes.
	Timeout time.Duration
}

func (o *SearchOptions) validate(query string) error {
	if o.Live && o.Count {
		return &ValidationError{Field: "live", Reason: "cannot be combined with count"}
	}

	if o.Literal && o.Interpret {
		return &ValidationError{Field: "literal", Reason: "cannot be combined with interpret"}
	}

	if o.Reprint && !o.Live {
		return &ValidationError{Field: "reprint", Reason: "requires live"}
	}

	if query == "" && len(o.Name) == 0 && o.SmartFolder == "" {
		return &ValidationError{Field: "query", Reason: "empty query requires a name filter or smart folder"}
	}

	return nil
}

// args serializes the options and query into an mdfind argv.
func (o *SearchOptions) args(query string) []string {
	args := make([]string, 0, 8)

	for _, dir := range o.OnlyIn {
		args = append(args, "-onlyin", dir)
	}

	for _, name := range o.Name {
		args = append(args, "-name", name)
	}

	for _, attr := range o.Attributes {
		args = append(args, "-attr", attr)
	}

	if o.SmartFolder != "" {
		args = append(args, "-s", o.SmartFolder)
	}

	if o.NullSeparator {
		args = append(args, "-0")
	}

	if o.Count {
		args = append(args, "-count")
	}

	if o.Live {
		args = append(args, "-live")
	}

	if o.Reprint {
		args = append(args, "-reprint")
	}

	if o.Literal {
		args = append(args, "-literal")
	}

	if o.Interpret {
		args = append(args, "-interpret")
	}

	if query != "" {
		args = append(args, query)
	}

	return args
}

// MetadataOptions configures a single mdls invocation.
type MetadataOptions struct {
	// Attributes limits output to the named attributes (-name, repeated).
	Attributes []string
	// Raw prints bare NUL-separated values without keys (-raw). Requires
	// Attributes, since raw values carry no names to zip against.
	Raw bool
	// NullMarker overrides the token printed for missing values
	// (-nullMarker). Only meaningful with Raw. Defaults to "(null)".
	NullMarker string
	// Plist asks mdls for a binary property list on stdout (-plist -).
	// Incompatible with Raw.
	Plist bool
	// Timeout, when non-zero, bounds the process lifetime.
	Timeout time.Duration
}

func (o *MetadataOptions) validate() error {
	if o.Raw && len(o.Attributes) == 0 {
		return &ValidationError{Field: "raw", Reason: "requires an explicit attribute list"}
	}

	if o.Raw && o.Plist {
		return &ValidationError{Field: "raw", Reason: "cannot be combined with plist"}
	}

	return nil
}

func (o *MetadataOptions) nullMarker() string {
	if o.NullMarker != "" {
		return o.NullMarker
	}

	return DefaultNullMarker
}

func (o *MetadataOptions) args(path string) []string {
	args := make([]string, 0, 4)

	for _, attr := range o.Attributes {
		args = append(args, "-name", attr)
	}

	if o.Raw {
		args = append(args, "-raw")

		if o.NullMarker != "" {
			args = append(args, "-nullMarker", o.NullMarker)
		}
	}

	if o.Plist {
		args = append(args, "-plist", "-")
	}

	return append(args, path)
}

// ImportOptions configures an mdimport test-import run (-t).
type ImportOptions struct {
	// DebugLevel prints import diagnostics at levels 1-3 (-d).
	DebugLevel int
	// OutputFile stores the imported attributes to a file (-o).
	OutputFile string
	// ShowPerformance prints timing information for the import (-p).
	ShowPerformance bool
	// Timeout, when non-zero, bounds the process lifetime.
	Timeout time.Duration
}

// timeout is nil-safe so the listing wrappers can take a nil options
// pointer.
func (o *ImportOptions) timeout() time.Duration {
	if o == nil {
		return 0
	}

	return o.Timeout
}

func (o *ImportOptions) validate() error {
	if o.DebugLevel < 0 || o.DebugLevel > 3 {
		return &ValidationError{Field: "debugLevel", Reason: "must be between 0 and 3"}
	}

	return nil
}
