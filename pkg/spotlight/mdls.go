package spotlight

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kolide/spotlight/pkg/allowedcmd"
	"howett.net/plist"
)

// GetMetadata runs mdls against a path and parses the output into a typed,
// insertion-ordered Metadata record.
func (s *Spotlight) GetMetadata(ctx context.Context, path string, opts *MetadataOptions) (*Metadata, error) {
	if opts == nil {
		opts = &MetadataOptions{}
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}

	out, err := s.runSimple(ctx, opts.Timeout, allowedcmd.Mdls, opts.args(path))
	if err != nil {
		return nil, err
	}

	switch {
	case opts.Raw:
		return parseRawMetadata(out, opts.Attributes, opts.nullMarker()), nil
	case opts.Plist:
		return parsePlistMetadata(out)
	default:
		return parseFormattedMetadata(string(out), opts.nullMarker()), nil
	}
}

// parseFormattedMetadata consumes the default `key = value` mdls format.
// Array values span multiple lines:
//
//	kMDItemAuthors = (
//	    "A. Author",
//	    "B. Author"
//	)
func parseFormattedMetadata(out string, nullMarker string) *Metadata {
	md := newMetadata()

	var (
		arrayKey   string
		arrayLines []string
	)

	for _, line := range strings.Split(out, "\n") {
		if arrayKey != "" {
			if strings.TrimSpace(line) == ")" {
				md.set(arrayKey, parseArrayLiteral("("+strings.Join(arrayLines, ",")+")"))
				arrayKey = ""
				arrayLines = nil
				continue
			}

			arrayLines = append(arrayLines, strings.TrimSuffix(strings.TrimSpace(line), ","))
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}

		if value == "(" {
			arrayKey = key
			continue
		}

		md.set(key, coerceFormatted(value, nullMarker))
	}

	// An unterminated array literal at EOF is kept rather than dropped.
	if arrayKey != "" {
		md.set(arrayKey, parseArrayLiteral("("+strings.Join(arrayLines, ",")+")"))
	}

	return md
}

// parseRawMetadata zips NUL-separated bare values against the ordered
// attribute list the caller supplied. mdls -raw emits values in request
// order; that ordering is undocumented and treated as best-effort.
func parseRawMetadata(out []byte, requested []string, nullMarker string) *Metadata {
	md := newMetadata()

	values := strings.Split(string(out), "\x00")

	for i, attr := range requested {
		if i >= len(values) {
			md.set(attr, nil)
			continue
		}

		md.set(attr, coerceRaw(attr, values[i], nullMarker))
	}

	return md
}

// parsePlistMetadata decodes the binary property list emitted by
// `mdls -plist -`. Plist dictionaries are unordered, so attribute order is
// normalized to lexical.
func parsePlistMetadata(out []byte) (*Metadata, error) {
	var decoded map[string]any
	if _, err := plist.Unmarshal(out, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshalling mdls plist output: %w", err)
	}

	names := make([]string, 0, len(decoded))
	for name := range decoded {
		names = append(names, name)
	}
	sort.Strings(names)

	md := newMetadata()
	for _, name := range names {
		md.set(name, normalizePlistValue(decoded[name]))
	}

	return md, nil
}

func normalizePlistValue(v any) any {
	switch t := v.(type) {
	case uint64:
		return int64(t)
	case []any:
		elements := make([]string, 0, len(t))
		for _, e := range t {
			elements = append(elements, fmt.Sprintf("%v", e))
		}
		return elements
	default:
		return v
	}
}
