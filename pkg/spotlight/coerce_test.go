package spotlight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceFormatted(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name     string
		raw      string
		expected any
	}{
		{name: "null marker", raw: "(null)", expected: nil},
		{name: "quoted string", raw: `"report.pdf"`, expected: "report.pdf"},
		{name: "bare string", raw: "PDF document", expected: "PDF document"},
		{name: "integer", raw: "48231", expected: int64(48231)},
		{name: "float", raw: "1.75", expected: 1.75},
		{name: "true", raw: "true", expected: true},
		{name: "false", raw: "false", expected: false},
		{name: "date", raw: "2024-03-01 10:22:17 +0000", expected: time.Date(2024, 3, 1, 10, 22, 17, 0, time.UTC)},
		{name: "unparseable date is nil, never a garbage date", raw: "2024-99-99 10:22:17 +0000", expected: nil},
		{name: "empty array literal", raw: "()", expected: []string{}},
		{name: "array", raw: `("a", "b", "c")`, expected: []string{"a", "b", "c"}},
		{name: "array without quotes", raw: "(public.jpeg, public.image)", expected: []string{"public.jpeg", "public.image"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := coerceFormatted(tt.raw, DefaultNullMarker)

			if expected, ok := tt.expected.(time.Time); ok {
				require.IsType(t, time.Time{}, got)
				assert.True(t, expected.Equal(got.(time.Time)))
				return
			}

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCoerceFormatted_customNullMarker(t *testing.T) {
	t.Parallel()

	// A caller-configured marker never reaches mdls in formatted mode, so
	// the tool's own (null) token must stay recognized alongside it.
	assert.Nil(t, coerceFormatted("(null)", "-MISSING-"))
	assert.Nil(t, coerceFormatted("-MISSING-", "-MISSING-"))
}

func TestCoerceFormatted_customNullMarkerQuotedDefault(t *testing.T) {
	t.Parallel()

	assert.Nil(t, coerceFormatted("-MISSING-", "-MISSING-"))
	// The default marker is a plain string once the caller overrides it.
	assert.Equal(t, "(null)", coerceFormatted(`"(null)"`, "-MISSING-"))
}

func TestCoerceRaw(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name      string
		attribute string
		raw       string
		expected  any
	}{
		// Typed by the compiled attribute table.
		{name: "table number", attribute: "kMDItemFSSize", raw: "1024", expected: int64(1024)},
		{name: "table float", attribute: "kMDItemDurationSeconds", raw: "12.5", expected: 12.5},
		{name: "table bool one", attribute: "kMDItemHasAlphaChannel", raw: "1", expected: true},
		{name: "table bool zero", attribute: "kMDItemHasAlphaChannel", raw: "0", expected: false},
		{name: "table date", attribute: "kMDItemFSCreationDate", raw: "2024-03-01 10:22:17 +0000", expected: time.Date(2024, 3, 1, 10, 22, 17, 0, time.UTC)},
		{name: "table string keeps digits", attribute: "kMDItemTitle", raw: "1984", expected: "1984"},

		// Unknown attributes fall back to name-substring heuristics.
		{name: "heuristic size", attribute: "kMDItemSomethingSize", raw: "77", expected: int64(77)},
		{name: "heuristic width", attribute: "kMDItemCustomWidth", raw: "640", expected: int64(640)},
		{name: "heuristic date", attribute: "kMDItemSomeDate", raw: "2020-05-04 01:02:03 +0000", expected: time.Date(2020, 5, 4, 1, 2, 3, 0, time.UTC)},
		{name: "heuristic number misfire is nil", attribute: "kMDItemSomethingCount", raw: "not-a-number", expected: nil},
		{name: "plain string", attribute: "kMDItemMysteryAttr", raw: "hello", expected: "hello"},
		{name: "boolean literal", attribute: "kMDItemMysteryAttr", raw: "true", expected: true},

		// Shape beats name for markers and arrays.
		{name: "null marker", attribute: "kMDItemFSSize", raw: "(null)", expected: nil},
		{name: "empty array", attribute: "kMDItemKeywords", raw: "()", expected: []string{}},
		{name: "array", attribute: "kMDItemKeywords", raw: `("x", "y")`, expected: []string{"x", "y"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := coerceRaw(tt.attribute, tt.raw, DefaultNullMarker)

			if expected, ok := tt.expected.(time.Time); ok {
				require.IsType(t, time.Time{}, got)
				assert.True(t, expected.Equal(got.(time.Time)))
				return
			}

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate_neverInvalid(t *testing.T) {
	t.Parallel()

	for _, garbage := range []string{"", "tomorrow", "2024-13-45", "12345", "Date: yes"} {
		got := parseDate(garbage)
		assert.Nil(t, got, "parseDate(%q) must be nil", garbage)
	}
}
