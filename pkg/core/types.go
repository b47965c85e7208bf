package core

import "time"

// Outcome classifies a detector response for one sample.
type Outcome string

const (
	// OutcomeCode means the detector committed to a language code.
	OutcomeCode Outcome = "code"
	// OutcomeUnknown means the detector declined to decide.
	OutcomeUnknown Outcome = "unknown"
	// OutcomeError means the detector call failed or timed out.
	OutcomeError Outcome = "error"
)

// Unknown is the sentinel code detectors return when they have no
// confident answer.
const Unknown = "un"

// Record is one labeled line of the benchmark corpus. Tag is the
// benchmark's ISO 639-3 style language identifier.
type Record struct {
	Tag    string `json:"tag"`
	Text   string `json:"text"`
	Script string `json:"script,omitempty"`
}

// Sample is a record selected for evaluation. ID is unique within a run
// and ties a prediction back to its sample regardless of arrival order.
type Sample struct {
	ID   int    `json:"id"`
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Prediction is the detector's verdict for one sample. Code is set only
// when Outcome is OutcomeCode or OutcomeUnknown; Err only on OutcomeError.
type Prediction struct {
	Sample  Sample        `json:"sample"`
	Code    string        `json:"code,omitempty"`
	Outcome Outcome       `json:"outcome"`
	Err     string        `json:"error,omitempty"`
	Latency time.Duration `json:"latency"`
}

// Correct reports whether the prediction matches the expected detector
// code. Exact, case-sensitive comparison; unknown and error outcomes
// never match.
func (p Prediction) Correct(expected string) bool {
	return p.Outcome == OutcomeCode && p.Code == expected
}
