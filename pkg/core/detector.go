package core

import "context"

// Detection is a single detector verdict.
type Detection struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

// Detector identifies the language of a text. Implementations are
// stateless across calls and deterministic for identical input. Codes
// returns the detector's supported language codes and is used to build
// the benchmark-to-detector mapping.
type Detector interface {
	Name() string
	Codes() []string
	Identify(ctx context.Context, text string) (Detection, error)
}
