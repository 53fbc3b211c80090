package spotlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFramer_partialLines(t *testing.T) {
	t.Parallel()

	framer := newLineFramer('\n')

	// A chunk may end mid-line; the fragment must be deferred until its
	// terminating newline arrives in the next chunk.
	first := framer.push([]byte("/a/b.pdf\n/a/c"))
	require.Equal(t, []string{"/a/b.pdf"}, first)

	second := framer.push([]byte(".pdf\n"))
	require.Equal(t, []string{"/a/c.pdf"}, second)

	require.Empty(t, framer.flush())
}

func TestLineFramer_flushTrailingFragment(t *testing.T) {
	t.Parallel()

	framer := newLineFramer('\n')

	require.Nil(t, framer.push([]byte("/no/newline/yet")))
	require.Equal(t, []string{"/no/newline/yet"}, framer.flush())
}

func TestLineFramer_bannerStripped(t *testing.T) {
	t.Parallel()

	framer := newLineFramer('\n')

	batch := framer.push([]byte("/a/b.pdf\n[Type ctrl-C to exit]\n/a/c.pdf\n"))
	require.Equal(t, []string{"/a/b.pdf", "/a/c.pdf"}, batch)
}

func TestLineFramer_bannerSplitAcrossChunks(t *testing.T) {
	t.Parallel()

	framer := newLineFramer('\n')

	require.Nil(t, framer.push([]byte("[Type ctrl-C")))
	batch := framer.push([]byte(" to exit]\n/a/d.pdf\n"))
	require.Equal(t, []string{"/a/d.pdf"}, batch)
}

func TestLineFramer_nulDelimiter(t *testing.T) {
	t.Parallel()

	framer := newLineFramer(0)

	batch := framer.push([]byte("/with spaces/a.pdf\x00/b.pdf\x00/partial"))
	require.Equal(t, []string{"/with spaces/a.pdf", "/b.pdf"}, batch)
	require.Equal(t, []string{"/partial"}, framer.flush())
}

func TestLineFramer_emptyLinesDropped(t *testing.T) {
	t.Parallel()

	framer := newLineFramer('\n')

	batch := framer.push([]byte("\n\n/a.pdf\n\n"))
	assert.Equal(t, []string{"/a.pdf"}, batch)
}
