package spotlight

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Operator is an mdfind comparison operator.
type Operator string

const (
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
)

// Wildcard is the query that matches every indexed item. An empty builder
// serializes to this rather than to an empty string, which mdfind rejects.
const Wildcard = "*"

// Condition is one attribute/operator/value clause.
type Condition struct {
	Attribute string
	Operator  Operator
	Value     any
}

// QueryBuilder is a fluent accumulator of query conditions joined by a
// single logical operator. Builder state is mutated by the chained calls and
// read only at String or Execute time.
type QueryBuilder struct {
	conditions []Condition
	logicalOp  string
	options    SearchOptions
}

func NewQuery() *QueryBuilder {
	return &QueryBuilder{
		logicalOp: "&&",
	}
}

// Where appends an arbitrary attribute/operator/value clause. It is the
// escape hatch behind all the named helpers.
func (q *QueryBuilder) Where(attribute string, op Operator, value any) *QueryBuilder {
	q.conditions = append(q.conditions, Condition{Attribute: attribute, Operator: op, Value: value})
	return q
}

// UseOperator selects the logical operator joining all conditions. Only
// "&&" and "||" are meaningful to mdfind; anything else is kept as-is and
// rejected by the tool at execution time.
func (q *QueryBuilder) UseOperator(op string) *QueryBuilder {
	q.logicalOp = op
	return q
}

func (q *QueryBuilder) ContentType(uti string) *QueryBuilder {
	return q.Where("kMDItemContentType", OpEqual, uti)
}

func (q *QueryBuilder) CreatedAfter(t time.Time) *QueryBuilder {
	return q.Where("kMDItemContentCreationDate", OpGreaterOrEqual, t)
}

func (q *QueryBuilder) CreatedBefore(t time.Time) *QueryBuilder {
	return q.Where("kMDItemContentCreationDate", OpLessOrEqual, t)
}

func (q *QueryBuilder) ModifiedAfter(t time.Time) *QueryBuilder {
	return q.Where("kMDItemContentModificationDate", OpGreaterOrEqual, t)
}

func (q *QueryBuilder) ModifiedBefore(t time.Time) *QueryBuilder {
	return q.Where("kMDItemContentModificationDate", OpLessOrEqual, t)
}

func (q *QueryBuilder) LastUsedAfter(t time.Time) *QueryBuilder {
	return q.Where("kMDItemLastUsedDate", OpGreaterOrEqual, t)
}

// HasGPS matches items carrying location metadata.
func (q *QueryBuilder) HasGPS() *QueryBuilder {
	return q.Where("kMDItemLatitude", OpGreater, 0)
}

func (q *QueryBuilder) Author(name string) *QueryBuilder {
	return q.Where("kMDItemAuthors", OpEqual, name)
}

func (q *QueryBuilder) Keyword(keyword string) *QueryBuilder {
	return q.Where("kMDItemKeywords", OpEqual, keyword)
}

// Extension matches by filename extension glob.
func (q *QueryBuilder) Extension(ext string) *QueryBuilder {
	return q.Where("kMDItemFSName", OpEqual, "*."+strings.TrimPrefix(ext, "."))
}

func (q *QueryBuilder) MinImageWidth(pixels int) *QueryBuilder {
	return q.Where("kMDItemPixelWidth", OpGreaterOrEqual, pixels)
}

func (q *QueryBuilder) MinImageHeight(pixels int) *QueryBuilder {
	return q.Where("kMDItemPixelHeight", OpGreaterOrEqual, pixels)
}

func (q *QueryBuilder) MinAudioBitRate(bitsPerSecond int) *QueryBuilder {
	return q.Where("kMDItemAudioBitRate", OpGreaterOrEqual, bitsPerSecond)
}

func (q *QueryBuilder) MinDuration(seconds float64) *QueryBuilder {
	return q.Where("kMDItemDurationSeconds", OpGreaterOrEqual, seconds)
}

// InDirectory scopes execution to a directory (-onlyin). Execution option
// only; does not affect the serialized query string.
func (q *QueryBuilder) InDirectory(dir string) *QueryBuilder {
	q.options.OnlyIn = append(q.options.OnlyIn, dir)
	return q
}

// Literal disables mdfind's query interpretation at execution time.
func (q *QueryBuilder) Literal() *QueryBuilder {
	q.options.Literal = true
	return q
}

// Options returns a copy of the accumulated execution options.
func (q *QueryBuilder) Options() SearchOptions {
	return q.options
}

// String serializes the accumulated conditions. Zero conditions produce the
// wildcard query, never a dangling logical operator.
func (q *QueryBuilder) String() string {
	if len(q.conditions) == 0 {
		return Wildcard
	}

	clauses := make([]string, len(q.conditions))
	for i, c := range q.conditions {
		clauses[i] = fmt.Sprintf("%s %s %s", c.Attribute, c.Operator, formatQueryValue(c.Value))
	}

	return strings.Join(clauses, " "+q.logicalOp+" ")
}

// Execute runs the built query through the given Spotlight instance.
func (q *QueryBuilder) Execute(ctx context.Context, s *Spotlight) ([]string, error) {
	opts := q.options
	return s.Search(ctx, q.String(), &opts)
}

// formatQueryValue renders a condition value in mdfind's query grammar:
// strings are quote-escaped, dates use the $time.iso() function-call form,
// booleans are 1/0.
func formatQueryValue(v any) string {
	switch t := v.(type) {
	case string:
		return `"` + strings.ReplaceAll(t, `"`, `\"`) + `"`
	case time.Time:
		return fmt.Sprintf("$time.iso(%s)", t.UTC().Format(time.RFC3339))
	case bool:
		if t {
			return "1"
		}
		return "0"
	case nil:
		return `""`
	default:
		return fmt.Sprintf("%v", t)
	}
}
