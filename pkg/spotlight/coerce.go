package spotlight

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kolide/spotlight/pkg/spotlight/attributes"
)

// mdls prints dates in its own fixed layout; RFC3339 shows up when values
// round-trip through plists or smart folders.
var dateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 +0000",
	time.RFC3339,
	"2006-01-02",
}

var dateShaped = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([ T]\d{2}:\d{2}:\d{2}(\.\d+)?( ?[+-]\d{4}| ?[+-]\d{2}:\d{2}|Z)?)?$`)

// numericNameHints are attribute-name substrings that mark a raw value as
// numeric when the attribute is not in the compiled table. This heuristic is
// inherited from the textual contract of mdls -raw (values carry no type
// hints) and can misfire on oddly named attributes; that is accepted.
var numericNameHints = []string{
	"Size", "Count", "Height", "Width", "BitRate",
	"Duration", "Length", "Speed", "Number",
}

var dateNameHints = []string{"Date", "Time"}

// coerceFormatted turns one value from `key = value` mdls output into a
// typed value. Formatted values carry their own shape, so the attribute name
// is not consulted.
func coerceFormatted(raw string, nullMarker string) any {
	raw = strings.TrimSpace(raw)

	// -nullMarker only changes raw-mode output, so formatted values always
	// print the tool's own (null) token no matter what the caller set.
	if raw == nullMarker || raw == DefaultNullMarker {
		return nil
	}

	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		return parseArrayLiteral(raw)
	}

	if strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2 {
		return strings.Trim(raw, `"`)
	}

	if dateShaped.MatchString(raw) {
		return parseDate(raw)
	}

	if raw == "true" || raw == "false" {
		return raw == "true"
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	return raw
}

// coerceRaw types one bare value from mdls -raw output. Raw values carry no
// embedded type hints, so the expected type comes from the compiled
// attribute table first and the name-substring heuristic second.
func coerceRaw(attribute, raw string, nullMarker string) any {
	raw = strings.TrimSpace(raw)

	if raw == nullMarker {
		return nil
	}

	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		return parseArrayLiteral(raw)
	}

	switch attributes.TypeOf(attribute) {
	case attributes.TypeDate:
		return parseDate(raw)
	case attributes.TypeNumber:
		return parseNumber(raw)
	case attributes.TypeBool:
		return parseBool(raw)
	case attributes.TypeString:
		return strings.Trim(raw, `"`)
	}

	// Unknown attribute: fall back to name-substring heuristics.
	for _, hint := range dateNameHints {
		if strings.Contains(attribute, hint) && dateShaped.MatchString(raw) {
			return parseDate(raw)
		}
	}

	for _, hint := range numericNameHints {
		if strings.Contains(attribute, hint) {
			return parseNumber(raw)
		}
	}

	if raw == "true" || raw == "false" {
		return raw == "true"
	}

	return strings.Trim(raw, `"`)
}

// parseArrayLiteral splits a parenthesized mdls list into its elements.
// The empty literal () is an empty slice, not nil.
func parseArrayLiteral(raw string) []string {
	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return []string{}
	}

	parts := strings.Split(inner, ",")

	elements := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		if p == "" {
			continue
		}
		elements = append(elements, p)
	}

	return elements
}

// parseDate returns nil for unparseable input rather than a garbage time.
func parseDate(raw string) any {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return nil
}

// parseNumber returns nil for unparseable input, keeping the no-undefined
// invariant for attributes whose name promised a number.
func parseNumber(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	return nil
}

func parseBool(raw string) any {
	switch raw {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}

	return nil
}
