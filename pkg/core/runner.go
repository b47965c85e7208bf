package core

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

// Runner drives samples through a detector and collects predictions.
// Workers=1 is the sequential baseline; calls are independent, so any
// worker count is safe. Predictions are re-sorted by sample ID so the
// output order never depends on scheduling.
type Runner struct {
	Detector Detector
	Workers  int
	Timeout  time.Duration
	Limiter  RateLimiter
	Progress func(completed, total int)
}

// Run classifies every sample. Per-sample failures are recorded as
// OutcomeError predictions; only context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, samples []Sample) ([]Prediction, error) {
	if r.Detector == nil {
		return nil, errors.New("runner: detector is required")
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	sampleCh := make(chan Sample)
	resultCh := make(chan Prediction, workers)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for sample := range sampleCh {
			pred := r.classify(ctx, sample)
			select {
			case resultCh <- pred:
			case <-ctx.Done():
				return
			}
		}
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go worker()
	}

	go func() {
		defer close(sampleCh)
		for _, sample := range samples {
			select {
			case <-ctx.Done():
				return
			case sampleCh <- sample:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	predictions := make([]Prediction, 0, len(samples))
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case pred, ok := <-resultCh:
			if !ok {
				sort.Slice(predictions, func(i, j int) bool {
					return predictions[i].Sample.ID < predictions[j].Sample.ID
				})
				return predictions, nil
			}
			predictions = append(predictions, pred)
			if r.Progress != nil {
				r.Progress(len(predictions), len(samples))
			}
		}
	}
}

func (r *Runner) classify(ctx context.Context, sample Sample) Prediction {
	pred := Prediction{Sample: sample}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx); err != nil {
			pred.Outcome = OutcomeError
			pred.Err = err.Error()
			return pred
		}
	}

	callCtx := ctx
	cancel := func() {}
	if r.Timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, r.Timeout)
	}

	start := time.Now()
	detection, err := r.Detector.Identify(callCtx, sample.Text)
	cancel()
	pred.Latency = time.Since(start)

	if err != nil {
		pred.Outcome = OutcomeError
		pred.Err = err.Error()
		return pred
	}

	code := NormalizeCode(detection.Code)
	if code == "" || code == Unknown {
		pred.Outcome = OutcomeUnknown
		pred.Code = Unknown
		return pred
	}

	pred.Outcome = OutcomeCode
	pred.Code = code
	return pred
}

// NormalizeCode lowercases a detector code and strips regional
// suffixes, so pt_BR and pt-PT both compare as pt.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if i := strings.IndexAny(code, "_-"); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}
