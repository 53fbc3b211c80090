package spotlight

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/kolide/spotlight/pkg/allowedcmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queryKeyedExec resolves each invocation from the query string (the last
// argv element), so batch tests can mix successes and failures.
func queryKeyedExec(outcomes map[string]error, stdout string) runFunc {
	return func(_ context.Context, _ allowedcmd.AllowedCommand, args []string, w io.Writer, stderrW io.Writer) error {
		query := args[len(args)-1]

		if err := outcomes[query]; err != nil {
			io.WriteString(stderrW, "simulated failure\n") //nolint:errcheck
			return err
		}

		io.WriteString(w, stdout) //nolint:errcheck
		return nil
	}
}

func TestBatchSearch_preservesOrderWithErrors(t *testing.T) {
	t.Parallel()

	s := New()
	s.run = queryKeyedExec(map[string]error{
		"failing": errors.New("exit status 1"),
	}, "/found.pdf\n")

	results := s.BatchSearch(context.TODO(), []BatchQuery{
		{Query: "succeeding"},
		{Query: "failing"},
	})

	require.Len(t, results, 2)

	assert.Equal(t, "succeeding", results[0].Query)
	require.NoError(t, results[0].Err)
	assert.Equal(t, []string{"/found.pdf"}, results[0].Results)

	assert.Equal(t, "failing", results[1].Query)
	require.Error(t, results[1].Err)
	assert.Empty(t, results[1].Results)

	var pe *ProcessError
	require.ErrorAs(t, results[1].Err, &pe)
	assert.Contains(t, pe.Stderr, "simulated failure")
}

func TestBatchSearch_manyQueriesSlottedByIndex(t *testing.T) {
	t.Parallel()

	s := New()
	s.run = queryKeyedExec(nil, "/x\n")

	queries := make([]BatchQuery, 20)
	for i := range queries {
		queries[i] = BatchQuery{Query: string(rune('a' + i))}
	}

	results := s.BatchSearch(context.TODO(), queries, WithMaxConcurrency(4))
	require.Len(t, results, 20)

	for i, r := range results {
		assert.Equal(t, queries[i].Query, r.Query)
		assert.NoError(t, r.Err)
	}
}

func TestBatchSearch_empty(t *testing.T) {
	t.Parallel()

	s := New()
	s.run = queryKeyedExec(nil, "")

	results := s.BatchSearch(context.TODO(), nil)
	assert.Empty(t, results)
}

func TestBatchSearchSequential(t *testing.T) {
	t.Parallel()

	s := New()
	s.run = queryKeyedExec(map[string]error{
		"bad": errors.New("exit status 1"),
	}, "/found.pdf\n")

	results := s.BatchSearchSequential(context.TODO(), []BatchQuery{
		{Query: "bad"},
		{Query: "good"},
	})

	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	require.NoError(t, results[1].Err)
	assert.Equal(t, []string{"/found.pdf"}, results[1].Results)
}
