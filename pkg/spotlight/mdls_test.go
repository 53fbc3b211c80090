package spotlight

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formattedFixture = `kMDItemContentType         = "com.adobe.pdf"
kMDItemContentTypeTree     = (
    "com.adobe.pdf",
    "public.data",
    "public.item"
)
kMDItemDisplayName         = "report.pdf"
kMDItemFSCreationDate      = 2024-03-01 10:22:17 +0000
kMDItemFSSize              = 48231
kMDItemKind                = "PDF document"
kMDItemNumberOfPages       = 12
kMDItemAuthors             = ()
kMDItemTitle               = (null)
`

func TestParseFormattedMetadata(t *testing.T) {
	t.Parallel()

	md := parseFormattedMetadata(formattedFixture, DefaultNullMarker)

	require.Equal(t, 9, md.Len())

	// Insertion order follows print order.
	require.Equal(t, []string{
		"kMDItemContentType",
		"kMDItemContentTypeTree",
		"kMDItemDisplayName",
		"kMDItemFSCreationDate",
		"kMDItemFSSize",
		"kMDItemKind",
		"kMDItemNumberOfPages",
		"kMDItemAuthors",
		"kMDItemTitle",
	}, md.Names())

	contentType, ok := md.Get("kMDItemContentType")
	require.True(t, ok)
	assert.Equal(t, "com.adobe.pdf", contentType)

	tree, ok := md.Get("kMDItemContentTypeTree")
	require.True(t, ok)
	assert.Equal(t, []string{"com.adobe.pdf", "public.data", "public.item"}, tree)

	size, ok := md.Get("kMDItemFSSize")
	require.True(t, ok)
	assert.Equal(t, int64(48231), size)

	created, ok := md.Get("kMDItemFSCreationDate")
	require.True(t, ok)
	require.IsType(t, time.Time{}, created)
	assert.True(t, created.(time.Time).Equal(time.Date(2024, 3, 1, 10, 22, 17, 0, time.UTC)))

	// Empty array literal is an empty slice, not nil.
	authors, ok := md.Get("kMDItemAuthors")
	require.True(t, ok)
	assert.Equal(t, []string{}, authors)

	// Null marker is present-but-nil, never missing.
	title, ok := md.Get("kMDItemTitle")
	require.True(t, ok)
	assert.Nil(t, title)
}

func TestParseFormattedMetadata_customNullMarker(t *testing.T) {
	t.Parallel()

	// mdls only honors -nullMarker in raw mode, so formatted output still
	// prints (null): it must parse to nil, not a one-element array.
	md := parseFormattedMetadata("kMDItemTitle = (null)\n", "-MISSING-")

	title, ok := md.Get("kMDItemTitle")
	require.True(t, ok)
	assert.Nil(t, title)
}

func TestParseFormattedMetadata_idempotent(t *testing.T) {
	t.Parallel()

	first := parseFormattedMetadata(formattedFixture, DefaultNullMarker)
	second := parseFormattedMetadata(formattedFixture, DefaultNullMarker)

	require.Equal(t, first.Names(), second.Names())
	require.Equal(t, first.Map(), second.Map())
}

func TestParseRawMetadata(t *testing.T) {
	t.Parallel()

	// mdls -raw is assumed to emit values in request order. That ordering
	// is undocumented by the tool; this test pins our reading of it.
	requested := []string{"kMDItemDisplayName", "kMDItemFSSize", "kMDItemTitle", "kMDItemFSCreationDate"}
	out := []byte(strings.Join([]string{
		"report.pdf",
		"48231",
		"(null)",
		"2024-03-01 10:22:17 +0000",
	}, "\x00"))

	md := parseRawMetadata(out, requested, DefaultNullMarker)

	require.Equal(t, requested, md.Names())

	name, _ := md.Get("kMDItemDisplayName")
	assert.Equal(t, "report.pdf", name)

	size, _ := md.Get("kMDItemFSSize")
	assert.Equal(t, int64(48231), size)

	title, ok := md.Get("kMDItemTitle")
	require.True(t, ok)
	assert.Nil(t, title)

	created, _ := md.Get("kMDItemFSCreationDate")
	require.IsType(t, time.Time{}, created)
}

func TestParseRawMetadata_shortOutput(t *testing.T) {
	t.Parallel()

	// Fewer values than requested attributes: the missing tail is nil,
	// never absent.
	md := parseRawMetadata([]byte("report.pdf"), []string{"kMDItemDisplayName", "kMDItemFSSize"}, DefaultNullMarker)

	require.Equal(t, 2, md.Len())

	size, ok := md.Get("kMDItemFSSize")
	require.True(t, ok)
	assert.Nil(t, size)
}

func TestParsePlistMetadata(t *testing.T) {
	t.Parallel()

	fixture := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>kMDItemDisplayName</key>
	<string>report.pdf</string>
	<key>kMDItemFSSize</key>
	<integer>48231</integer>
	<key>kMDItemHasAlphaChannel</key>
	<false/>
	<key>kMDItemContentTypeTree</key>
	<array>
		<string>com.adobe.pdf</string>
		<string>public.data</string>
	</array>
</dict>
</plist>`)

	md, err := parsePlistMetadata(fixture)
	require.NoError(t, err)

	name, _ := md.Get("kMDItemDisplayName")
	assert.Equal(t, "report.pdf", name)

	size, _ := md.Get("kMDItemFSSize")
	assert.Equal(t, int64(48231), size)

	alpha, _ := md.Get("kMDItemHasAlphaChannel")
	assert.Equal(t, false, alpha)

	tree, _ := md.Get("kMDItemContentTypeTree")
	assert.Equal(t, []string{"com.adobe.pdf", "public.data"}, tree)
}

func TestParsePlistMetadata_malformed(t *testing.T) {
	t.Parallel()

	_, err := parsePlistMetadata([]byte("not a plist"))
	require.Error(t, err)
}

func TestMetadata_neverUndefined(t *testing.T) {
	t.Parallel()

	md := parseFormattedMetadata(formattedFixture, DefaultNullMarker)

	for _, name := range md.Names() {
		_, ok := md.Get(name)
		require.True(t, ok, "attribute %s must be present", name)
	}

	// Absent attributes report absence explicitly.
	_, ok := md.Get("kMDItemNope")
	require.False(t, ok)
}
