package filter

import (
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"exiftui/internal/model"
)

// Criteria is the user's live filter text. Plain text is matched as a
// case-insensitive substring (with the <<family>> form scoping to the
// tag family); a leading '?' switches to an expression over the entry's
// fields, e.g. "?family == 'Exif' && id > 256".
type Criteria struct {
	Query string
}

func (c Criteria) IsExpr() bool { return strings.HasPrefix(c.Query, "?") }

type Evaluator struct {
	expr *govaluate.EvaluableExpression
}

func NewEvaluator(c Criteria) (*Evaluator, error) {
	if !c.IsExpr() {
		return &Evaluator{}, nil
	}
	src := strings.TrimSpace(strings.TrimPrefix(c.Query, "?"))
	if src == "" {
		return &Evaluator{}, nil
	}
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, err
	}
	return &Evaluator{expr: expr}, nil
}

func (e *Evaluator) Match(entry *model.Entry, c Criteria) bool {
	if e.expr == nil {
		return c.Query == "" || entry.MatchesFilter(c.Query)
	}
	params := map[string]any{
		"name":   entry.Name,
		"short":  entry.ShortName,
		"family": entry.Table.String(),
		"group":  entry.Table.Group,
		"value":  entry.Value.Render(),
		"num":    numericParam(entry),
		"binary": entry.BinarySizeKB != nil,
	}
	params["id"] = -1
	if entry.ID != nil {
		params["id"] = float64(*entry.ID)
	}
	params["index"] = -1
	if entry.Index != nil {
		params["index"] = float64(*entry.Index)
	}
	result, err := e.expr.Evaluate(params)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

// numericParam exposes the numeric rendering as a float when it parses,
// falling back to the raw text so string comparisons still work.
func numericParam(entry *model.Entry) any {
	s := entry.NumOrValue().Render()
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
