// Package transformer defines the stage contract used by the cleaning
// pipeline.
package transformer

import (
	"context"

	"segprep/internal/frame"
)

// Transformer is one in-place pass over a dataset. Apply must leave ds
// untouched when it fails before mutating, and the pipeline records Name in
// logs and metrics.
type Transformer interface {
	Name() string
	Apply(ctx context.Context, ds *frame.Dataset) error
}
