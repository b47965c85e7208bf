package corpus

import (
	"context"
	"errors"

	"lidbench/pkg/core"
)

// Collect drains a corpus into per-tag groups. A limit > 0 stops after
// that many records; the tag set observed here fixes the full label
// space for the run, so it must happen before any sampling.
func Collect(ctx context.Context, c core.Corpus, limit int) (map[string][]core.Record, []string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	recordCh, errCh := c.Records(ctx)

	groups := make(map[string][]core.Record)
	var tags []string
	total := 0
	truncated := false
	for record := range recordCh {
		groups[record.Tag] = append(groups[record.Tag], record)
		if len(groups[record.Tag]) == 1 {
			tags = append(tags, record.Tag)
		}
		total++
		if limit > 0 && total >= limit {
			truncated = true
			cancel()
			break
		}
	}
	if truncated {
		// Unblock the producer; the cancellation error it reports is ours.
		for range recordCh {
		}
	}

	for err := range errCh {
		if err != nil && !(truncated && errors.Is(err, context.Canceled)) {
			return nil, nil, err
		}
	}
	return groups, tags, nil
}
