// Package report turns aggregated scores into serializable output.
package report

import (
	"time"

	"lidbench/pkg/score"
)

// Reporter writes an evaluation report.
type Reporter interface {
	Report(report Report) error
}

const (
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatHTML     = "html"
)

// RunInfo identifies one evaluation run.
type RunInfo struct {
	Detector   string    `json:"detector"`
	Corpus     string    `json:"corpus"`
	Seed       int64     `json:"seed"`
	PerLang    int       `json:"sample_per_lang,omitempty"`
	Workers    int       `json:"workers,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Metrics is the overall statistics block.
type Metrics struct {
	TotalSamples  int `json:"total_samples"`
	MappedSamples int `json:"mapped_samples"`
	Correct       int `json:"correct"`
	Unknown       int `json:"unknown"`
	Failed        int `json:"failed"`

	MicroMapped float64 `json:"micro_accuracy_mapped"`
	MicroFull   float64 `json:"micro_accuracy_full"`
	MacroMapped float64 `json:"macro_recall_mapped"`
	MacroFull   float64 `json:"macro_recall_full"`
	UnknownRate float64 `json:"unknown_rate"`
	FailureRate float64 `json:"failure_rate"`

	LabelSpace     int `json:"label_space"`
	EvaluatedLangs int `json:"evaluated_languages"`
}

// Report is the final structured result of a run.
type Report struct {
	Run       RunInfo           `json:"run"`
	Metrics   Metrics           `json:"metrics"`
	Languages []score.LangStats `json:"languages"`
	Unmapped  []string          `json:"unmapped"`
}

// Build restructures an aggregate into a Report. No recomputation
// happens here.
func Build(info RunInfo, result score.Result, unmapped []string) Report {
	return Report{
		Run: info,
		Metrics: Metrics{
			TotalSamples:   result.TotalSamples,
			MappedSamples:  result.MappedSamples,
			Correct:        result.Correct,
			Unknown:        result.Unknown,
			Failed:         result.Failed,
			MicroMapped:    result.MicroMapped,
			MicroFull:      result.MicroFull,
			MacroMapped:    result.MacroMapped,
			MacroFull:      result.MacroFull,
			UnknownRate:    result.UnknownRate,
			FailureRate:    result.FailureRate,
			LabelSpace:     result.LabelSpace,
			EvaluatedLangs: result.EvaluatedLangs,
		},
		Languages: result.Languages,
		Unmapped:  unmapped,
	}
}
