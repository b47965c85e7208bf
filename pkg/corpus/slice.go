package corpus

import (
	"context"

	"lidbench/pkg/core"
)

// SliceCorpus serves records from memory, mainly for tests.
type SliceCorpus struct {
	NameHint string
	Items    []core.Record
}

func NewSliceCorpus(records []core.Record, name string) *SliceCorpus {
	if name == "" {
		name = "slice"
	}
	return &SliceCorpus{NameHint: name, Items: records}
}

func (c *SliceCorpus) Name() string {
	return c.NameHint
}

func (c *SliceCorpus) Len(_ context.Context) (int, error) {
	return len(c.Items), nil
}

func (c *SliceCorpus) Records(ctx context.Context) (<-chan core.Record, <-chan error) {
	recordCh := make(chan core.Record)
	errCh := make(chan error, 1)
	go func() {
		defer close(recordCh)
		defer close(errCh)
		for _, record := range c.Items {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case recordCh <- record:
			}
		}
	}()
	return recordCh, errCh
}
