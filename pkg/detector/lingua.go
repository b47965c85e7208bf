// Package detector provides adapters from concrete language
// identifiers to the core.Detector interface.
package detector

import (
	"context"
	"strings"

	"github.com/pemistahl/lingua-go"

	"lidbench/pkg/core"
)

// Lingua wraps the in-process lingua-go n-gram models. Verdicts below
// MinConfidence are reported as unknown rather than as a guess.
type Lingua struct {
	detector      lingua.LanguageDetector
	codes         []string
	MinConfidence float64
}

func NewLingua(minConfidence float64) *Lingua {
	languages := lingua.AllLanguages()
	codes := make([]string, 0, len(languages))
	for _, language := range languages {
		codes = append(codes, strings.ToLower(language.IsoCode639_1().String()))
	}
	return &Lingua{
		detector:      lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build(),
		codes:         codes,
		MinConfidence: minConfidence,
	}
}

func (d *Lingua) Name() string {
	return "lingua"
}

func (d *Lingua) Codes() []string {
	out := make([]string, len(d.codes))
	copy(out, d.codes)
	return out
}

func (d *Lingua) Identify(ctx context.Context, text string) (core.Detection, error) {
	if err := ctx.Err(); err != nil {
		return core.Detection{}, err
	}

	language, exists := d.detector.DetectLanguageOf(text)
	if !exists {
		return core.Detection{Code: core.Unknown}, nil
	}

	confidence := d.detector.ComputeLanguageConfidence(text, language)
	if d.MinConfidence > 0 && confidence < d.MinConfidence {
		return core.Detection{Code: core.Unknown, Confidence: confidence}, nil
	}

	return core.Detection{
		Code:       strings.ToLower(language.IsoCode639_1().String()),
		Confidence: confidence,
	}, nil
}
