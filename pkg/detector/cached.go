package detector

import (
	"context"

	"lidbench/pkg/cache"
	"lidbench/pkg/core"
)

// Cached wraps a detector with the on-disk verdict cache. Errors are
// never cached; only committed verdicts (including unknown) are.
type Cached struct {
	Detector core.Detector
	Cache    *cache.Cache
}

func (c Cached) Name() string {
	if c.Detector == nil {
		return ""
	}
	return c.Detector.Name()
}

func (c Cached) Codes() []string {
	if c.Detector == nil {
		return nil
	}
	return c.Detector.Codes()
}

func (c Cached) Identify(ctx context.Context, text string) (core.Detection, error) {
	if c.Cache != nil {
		if detection, ok := c.Cache.Get(c.Name(), text); ok {
			return detection, nil
		}
	}
	detection, err := c.Detector.Identify(ctx, text)
	if err != nil {
		return core.Detection{}, err
	}
	if c.Cache != nil {
		_ = c.Cache.Set(c.Name(), text, detection)
	}
	return detection, nil
}
