package detector

import (
	"context"

	"github.com/abadojack/whatlanggo"

	"lidbench/pkg/core"
	"lidbench/pkg/langmap"
)

// whatlangCodes is the 639-1 vocabulary the whatlanggo trigram models
// cover. The library itself reports 639-3 codes; Identify normalizes
// them through the langmap table.
var whatlangCodes = []string{
	"af", "ar", "az", "be", "bg", "bn", "ca", "cs", "cy", "da", "de",
	"el", "en", "eo", "es", "et", "eu", "fa", "fi", "fr", "gu", "he",
	"hi", "hr", "hu", "hy", "id", "is", "it", "ja", "jv", "ka", "kk",
	"km", "kn", "ko", "la", "lt", "lv", "mk", "ml", "mr", "ms", "my",
	"ne", "nl", "no", "pa", "pl", "pt", "ro", "ru", "si", "sk", "sl",
	"sq", "sr", "sv", "sw", "ta", "te", "th", "tl", "tr", "uk", "ur",
	"uz", "vi", "yi", "zh", "zu",
}

// Whatlang wraps the whatlanggo classifier. With ReliableOnly set,
// low-confidence verdicts are reported as unknown.
type Whatlang struct {
	ReliableOnly bool
}

func (Whatlang) Name() string {
	return "whatlang"
}

func (Whatlang) Codes() []string {
	out := make([]string, len(whatlangCodes))
	copy(out, whatlangCodes)
	return out
}

func (d Whatlang) Identify(ctx context.Context, text string) (core.Detection, error) {
	if err := ctx.Err(); err != nil {
		return core.Detection{}, err
	}

	info := whatlanggo.Detect(text)
	code3 := whatlanggo.LangToString(info.Lang)
	if code3 == "" {
		return core.Detection{Code: core.Unknown}, nil
	}
	if d.ReliableOnly && !info.IsReliable() {
		return core.Detection{Code: core.Unknown, Confidence: info.Confidence}, nil
	}

	code, ok := langmap.Alpha2For(code3)
	if !ok {
		code = code3
	}
	return core.Detection{Code: code, Confidence: info.Confidence}, nil
}
