package tablehelpers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kolide/spotlight/pkg/log/multislogger"
	"github.com/osquery/osquery-go/plugin/table"
)

type constraintOptions struct {
	allowedCharacters string
	defaults          []string
	slogger           *slog.Logger
}

type GetConstraintOpts func(*constraintOptions)

// WithSlogger sets the logger to use
func WithSlogger(slogger *slog.Logger) GetConstraintOpts {
	return func(co *constraintOptions) {
		co.slogger = slogger
	}
}

// WithDefaults sets the defaults to use if no constraints were specified.
func WithDefaults(defaults ...string) GetConstraintOpts {
	return func(co *constraintOptions) {
		co.defaults = append(co.defaults, defaults...)
	}
}

func WithAllowedCharacters(allowed string) GetConstraintOpts {
	return func(co *constraintOptions) {
		co.allowedCharacters = allowed
	}
}

// GetConstraints returns a []string of the constraint expressions on a
// column. It's meant for the common, simple, usecase of iterating over them.
func GetConstraints(queryContext table.QueryContext, columnName string, opts ...GetConstraintOpts) []string {
	co := &constraintOptions{
		slogger: multislogger.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(co)
	}

	q, ok := queryContext.Constraints[columnName]
	if !ok || len(q.Constraints) == 0 {
		return co.defaults
	}

	constraintSet := make(map[string]struct{})

	for _, c := range q.Constraints {
		if !co.onlyAllowedCharacters(c.Expression) {
			co.slogger.Log(context.TODO(), slog.LevelInfo,
				"disallowed character in expression",
				"column", columnName,
				"expression", c.Expression,
			)

			continue
		}

		constraintSet[c.Expression] = struct{}{}
	}

	constraints := make([]string, 0, len(constraintSet))
	for key := range constraintSet {
		constraints = append(constraints, key)
	}

	return constraints
}

func (co *constraintOptions) onlyAllowedCharacters(input string) bool {
	if co.allowedCharacters == "" {
		return true
	}

	for _, char := range input {
		if !strings.ContainsRune(co.allowedCharacters, char) {
			return false
		}
	}

	return true
}
