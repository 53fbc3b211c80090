package spotlight

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/kolide/kit/ulid"
	"github.com/kolide/spotlight/pkg/allowedcmd"
	"github.com/kolide/spotlight/pkg/log/multislogger"
)

// LiveStream is the handle for a running mdfind -live search. Result batches
// arrive on Batches in the order the process emitted them; the same path may
// appear in multiple batches and is never deduplicated. After Done closes,
// Err reports why the stream ended.
type LiveStream struct {
	slogger *slog.Logger
	cancel  context.CancelFunc

	batches chan []string
	done    chan struct{}

	mu        sync.Mutex
	err       error
	stderrErr error
}

// LiveSearch spawns mdfind -live and streams result batches until the child
// exits, errors, or Stop is called. Options are validated with Live forced
// on, so {Live, Count} exclusion still applies.
func (s *Spotlight) LiveSearch(ctx context.Context, query string, opts *SearchOptions) (*LiveStream, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	liveOpts := *opts
	liveOpts.Live = true

	if err := liveOpts.validate(query); err != nil {
		return nil, err
	}

	ctx, searchId := newSearchContext(ctx)

	var cancel context.CancelFunc
	if liveOpts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, liveOpts.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	cmd, err := allowedcmd.Mdfind(ctx, liveOpts.args(query)...)
	if err != nil {
		cancel()
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, newProcessError("", err)
	}

	delim := byte('\n')
	if liveOpts.NullSeparator {
		delim = 0
	}

	stream := &LiveStream{
		slogger: s.slogger.With("live_search_id", searchId, "query", query),
		cancel:  cancel,
		batches: make(chan []string, 1),
		done:    make(chan struct{}),
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		stream.watchStderr(stderr)
	}()

	go func() {
		stream.consume(ctx, stdout, delim)

		// Collect the stderr watcher before Wait closes the pipes.
		wg.Wait()
		waitErr := cmd.Wait()

		stream.mu.Lock()
		if stream.stderrErr != nil {
			stream.err = stream.stderrErr
		} else if waitErr != nil && ctx.Err() == nil {
			stream.err = newProcessError("", waitErr)
		}
		stream.mu.Unlock()

		cancel()
		close(stream.batches)
		close(stream.done)
	}()

	return stream, nil
}

// newSearchContext tags the context with a fresh search id so that
// multislogger-built handlers attach it to every log line emitted under
// this search, including lines logged by code that never saw the id.
func newSearchContext(ctx context.Context) (context.Context, string) {
	searchId := ulid.New()
	return context.WithValue(ctx, multislogger.SearchIdKey, searchId), searchId
}

// Batches returns the result channel. It is closed when the stream ends.
func (l *LiveStream) Batches() <-chan []string {
	return l.batches
}

// Done closes when the stream has ended for any reason.
func (l *LiveStream) Done() <-chan struct{} {
	return l.done
}

// Err reports why the stream ended. It is only meaningful after Done closes;
// a nil return means the child exited cleanly or was stopped by the caller.
func (l *LiveStream) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Stop kills the child process. The Batches channel drains and closes, then
// Done closes.
func (l *LiveStream) Stop() {
	l.cancel()
}

// consume reads stdout chunks, reframes them into complete lines, and emits
// one batch per chunk that unlocked lines. The trailing fragment at process
// close is flushed as a final batch.
func (l *LiveStream) consume(ctx context.Context, stdout io.Reader, delim byte) {
	framer := newLineFramer(delim)
	buf := make([]byte, 4096)

	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			if batch := framer.push(buf[:n]); len(batch) > 0 {
				if !l.emit(ctx, batch) {
					return
				}
			}
		}

		if err != nil {
			if err != io.EOF {
				l.slogger.Log(ctx, slog.LevelDebug,
					"reading live search stdout",
					"err", err,
				)
			}
			break
		}
	}

	if batch := framer.flush(); len(batch) > 0 {
		l.emit(ctx, batch)
	}
}

func (l *LiveStream) emit(ctx context.Context, batch []string) bool {
	select {
	case l.batches <- batch:
		return true
	case <-ctx.Done():
		return false
	}
}

// watchStderr records the first non-benign stderr line as the stream error.
func (l *LiveStream) watchStderr(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := scanner.Text()
		if msg := nonBenignStderr(line); msg != "" {
			l.mu.Lock()
			if l.stderrErr == nil {
				l.stderrErr = newProcessError(msg, nil)
			}
			l.mu.Unlock()
		}
	}
}
