package search

import (
	"fmt"

	"github.com/agentic-research/shapekit/api"
	"github.com/agentic-research/shapekit/kind"
	"github.com/ohler55/ojg/jp"
)

// Query evaluates a JSONPath expression against tree and returns the
// matched values. Ordered objects are converted to plain maps first, so
// objects in the results are map[string]any.
func Query(tree any, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}
	return x.Get(api.Plain(tree)), nil
}

func isObject(v any) bool {
	return kind.Of(v) == kind.Object
}
