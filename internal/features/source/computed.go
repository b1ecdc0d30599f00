package source

import (
	"context"
	"time"

	"github.com/d5/tengo/v2"
)

const computedTimeout = 100 * time.Millisecond

// Evaluate runs a computed-field expression against one row. The row is bound
// as the "row" variable. A compile or runtime error (including a missing key
// the expression touches) yields a missing value, never an aborted run.
func Evaluate(ctx context.Context, expr string, row map[string]any) (any, bool) {
	script := tengo.NewScript([]byte("out := " + expr))
	if err := script.Add("row", row); err != nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, computedTimeout)
	defer cancel()

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return nil, false
	}

	v := compiled.Get("out")
	if v == nil || v.IsUndefined() {
		return nil, false
	}
	return v.Value(), true
}
