package spotlight

import (
	"bytes"
	"strings"
)

// liveBanner is the interactive marker mdfind -live prints after the initial
// result batch when stdout is a terminal or pipe.
const liveBanner = "[Type ctrl-C to exit]"

// lineFramer reassembles delimiter-terminated lines from an arbitrary chunk
// stream. A chunk may end mid-line; the undelimited tail is retained and
// prefixed to the next chunk. Only fully delimited lines are ever returned
// from push; flush drains whatever remains at stream end.
type lineFramer struct {
	delim byte
	buf   bytes.Buffer
}

func newLineFramer(delim byte) *lineFramer {
	return &lineFramer{delim: delim}
}

// push appends a chunk and returns the complete lines it unlocked, in order.
func (f *lineFramer) push(chunk []byte) []string {
	f.buf.Write(chunk)

	data := f.buf.Bytes()
	last := bytes.LastIndexByte(data, f.delim)
	if last < 0 {
		return nil
	}

	// split must copy the complete lines out before the buffer is reset:
	// Reset keeps the underlying array, so the subsequent Write would
	// clobber the bytes data[:last] still points at.
	lines := f.split(data[:last])

	rest := make([]byte, len(data)-last-1)
	copy(rest, data[last+1:])

	f.buf.Reset()
	f.buf.Write(rest)

	return lines
}

// flush returns any buffered trailing fragment as a final batch.
func (f *lineFramer) flush() []string {
	if f.buf.Len() == 0 {
		return nil
	}

	data := f.buf.Bytes()
	f.buf.Reset()

	return f.split(data)
}

func (f *lineFramer) split(data []byte) []string {
	var lines []string

	for _, raw := range bytes.Split(data, []byte{f.delim}) {
		line := string(raw)
		if f.delim == '\n' {
			line = strings.TrimRight(line, "\r")
		}

		if line == "" || line == liveBanner {
			continue
		}

		lines = append(lines, line)
	}

	return lines
}
