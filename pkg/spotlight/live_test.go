package spotlight

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kolide/spotlight/pkg/log/multislogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader delivers exactly one predefined chunk per Read call, letting
// tests control how stdout is split across reads.
type chunkReader struct {
	chunks []string
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}

	chunk := c.chunks[0]
	c.chunks = c.chunks[1:]

	n := copy(p, chunk)
	return n, nil
}

func newTestLiveStream() *LiveStream {
	return &LiveStream{
		slogger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		batches: make(chan []string, 16),
		done:    make(chan struct{}),
	}
}

func collectBatches(t *testing.T, stream *LiveStream, r io.Reader, delim byte) [][]string {
	t.Helper()

	stream.consume(context.TODO(), r, delim)
	close(stream.batches)

	var batches [][]string
	for b := range stream.batches {
		batches = append(batches, b)
	}

	return batches
}

func TestNewSearchContext(t *testing.T) {
	t.Parallel()

	ctx, searchId := newSearchContext(context.TODO())

	require.NotEmpty(t, searchId)
	// The id rides the context so multislogger handlers pick it up.
	assert.Equal(t, searchId, ctx.Value(multislogger.SearchIdKey))
}

func TestLiveStream_chunkFraming(t *testing.T) {
	t.Parallel()

	// A chunk ending mid-line must defer the fragment to the next chunk:
	// exactly two batches, the first containing only the complete path.
	r := &chunkReader{chunks: []string{"/a/b.pdf\n/a/c", ".pdf\n"}}

	batches := collectBatches(t, newTestLiveStream(), r, '\n')

	require.Len(t, batches, 2)
	assert.Equal(t, []string{"/a/b.pdf"}, batches[0])
	assert.Equal(t, []string{"/a/c.pdf"}, batches[1])
}

func TestLiveStream_trailingBufferFlushedAtClose(t *testing.T) {
	t.Parallel()

	r := &chunkReader{chunks: []string{"/a.pdf\n/b/no-newline"}}

	batches := collectBatches(t, newTestLiveStream(), r, '\n')

	require.Len(t, batches, 2)
	assert.Equal(t, []string{"/a.pdf"}, batches[0])
	assert.Equal(t, []string{"/b/no-newline"}, batches[1])
}

func TestLiveStream_bannerStripped(t *testing.T) {
	t.Parallel()

	r := &chunkReader{chunks: []string{"/initial.pdf\n[Type ctrl-C to exit]\n", "/changed.pdf\n"}}

	batches := collectBatches(t, newTestLiveStream(), r, '\n')

	require.Len(t, batches, 2)
	assert.Equal(t, []string{"/initial.pdf"}, batches[0])
	assert.Equal(t, []string{"/changed.pdf"}, batches[1])
}

func TestLiveStream_duplicatePathsNotDeduplicated(t *testing.T) {
	t.Parallel()

	r := &chunkReader{chunks: []string{"/same.pdf\n", "/same.pdf\n"}}

	batches := collectBatches(t, newTestLiveStream(), r, '\n')

	require.Len(t, batches, 2)
	assert.Equal(t, batches[0], batches[1])
}

func TestLiveStream_nulSeparated(t *testing.T) {
	t.Parallel()

	r := &chunkReader{chunks: []string{"/a b.pdf\x00/c", " d.pdf\x00"}}

	batches := collectBatches(t, newTestLiveStream(), r, 0)

	require.Len(t, batches, 2)
	assert.Equal(t, []string{"/a b.pdf"}, batches[0])
	assert.Equal(t, []string{"/c d.pdf"}, batches[1])
}

func TestLiveStream_stderrError(t *testing.T) {
	t.Parallel()

	stream := newTestLiveStream()
	stream.watchStderr(strings.NewReader("[UserQueryParser] Loading keywords\nmdfind: query syntax error\n"))

	require.Error(t, stream.stderrErr)

	var pe *ProcessError
	require.ErrorAs(t, stream.stderrErr, &pe)
	assert.Contains(t, pe.Stderr, "query syntax error")
}

func TestLiveStream_benignStderrIgnored(t *testing.T) {
	t.Parallel()

	stream := newTestLiveStream()
	stream.watchStderr(strings.NewReader("[UserQueryParser] Loading keywords and predicates\n"))

	assert.NoError(t, stream.stderrErr)
}
