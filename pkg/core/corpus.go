package core

import "context"

// Corpus provides labeled records for evaluation.
type Corpus interface {
	Name() string
	Len(ctx context.Context) (int, error)
	Records(ctx context.Context) (<-chan Record, <-chan error)
}
