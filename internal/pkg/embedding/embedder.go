// Package embedding provides the text-to-vector service used by the indexer
// and the search engine. The model runs out of process; this package only
// speaks its HTTP contract.
package embedding

import "context"

// Service converts free text into a fixed-dimension numeric vector.
// Implementations are deterministic for a fixed model version and have no
// side effects on caller data. Calls may block for non-trivial time and must
// honor the context deadline; the model state is not guaranteed safe for
// concurrent invocation, so callers keep one call in flight at a time.
type Service interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
