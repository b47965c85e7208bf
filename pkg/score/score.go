// Package score joins predictions to ground truth through the code
// mapping and computes the run's accuracy statistics.
package score

import (
	"sort"

	"lidbench/pkg/core"
	"lidbench/pkg/langmap"
)

// Counters is the per-tag confusion tally.
type Counters struct {
	Total     int            `json:"total"`
	Correct   int            `json:"correct"`
	Unknown   int            `json:"unknown"`
	Failed    int            `json:"failed"`
	Predicted map[string]int `json:"predicted"`
}

// LangStats is the finalized view of one benchmark tag.
type LangStats struct {
	Tag       string  `json:"tag"`
	Code      string  `json:"code,omitempty"`
	Mapped    bool    `json:"mapped"`
	Total     int     `json:"total"`
	Correct   int     `json:"correct"`
	Unknown   int     `json:"unknown"`
	Failed    int     `json:"failed"`
	Accuracy  float64 `json:"accuracy"`
	LowSample bool    `json:"low_sample,omitempty"`
}

// Result aggregates a full prediction set.
//
// The mapped-only metrics divide by samples (or languages) that have a
// detector code; the full variants keep the same numerators but let
// unmapped languages inflate the denominators, so MicroFull <=
// MicroMapped and MacroFull <= MacroMapped always hold.
type Result struct {
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

	Languages []LangStats         `json:"languages"`
	Counters  map[string]Counters `json:"-"`
}

// Aggregator turns predictions into a Result. MinSamples flags (but
// never excludes) languages with fewer samples as statistically
// unreliable; zero-sample languages are excluded from macro averages
// entirely.
type Aggregator struct {
	Mapping    *langmap.Mapping
	MinSamples int
}

// Tally accumulates the per-tag confusion counters for a prediction set.
func Tally(predictions []core.Prediction, mapping *langmap.Mapping) map[string]Counters {
	counters := make(map[string]Counters)
	for _, pred := range predictions {
		tag := pred.Sample.Tag
		c := counters[tag]
		if c.Predicted == nil {
			c.Predicted = make(map[string]int)
		}
		c.Total++
		switch pred.Outcome {
		case core.OutcomeError:
			c.Failed++
			c.Predicted["<error>"]++
		case core.OutcomeUnknown:
			c.Unknown++
			c.Predicted[core.Unknown]++
		default:
			c.Predicted[pred.Code]++
			if expected, ok := mapping.Resolve(tag); ok && pred.Correct(expected) {
				c.Correct++
			}
		}
		counters[tag] = c
	}
	return counters
}

// Aggregate computes the Result for a prediction set. Re-running over
// the same predictions yields an identical Result: all iteration is in
// sorted tag order.
func (a Aggregator) Aggregate(predictions []core.Prediction) Result {
	counters := Tally(predictions, a.Mapping)

	tags := make([]string, 0, len(counters))
	for tag := range counters {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	minSamples := a.MinSamples
	if minSamples <= 0 {
		minSamples = 1
	}

	result := Result{
		Counters:   counters,
		LabelSpace: a.Mapping.Size(),
	}

	var accSum float64
	evaluated := 0 // mapped languages with at least one sample
	for _, tag := range tags {
		c := counters[tag]
		code, mapped := a.Mapping.Resolve(tag)

		stats := LangStats{
			Tag:     tag,
			Code:    code,
			Mapped:  mapped,
			Total:   c.Total,
			Correct: c.Correct,
			Unknown: c.Unknown,
			Failed:  c.Failed,
		}

		result.TotalSamples += c.Total
		result.Failed += c.Failed
		if mapped {
			result.MappedSamples += c.Total
			result.Correct += c.Correct
			result.Unknown += c.Unknown
			if c.Total > 0 {
				stats.Accuracy = float64(c.Correct) / float64(c.Total)
				stats.LowSample = c.Total < minSamples
				accSum += stats.Accuracy
				evaluated++
			}
		}

		result.Languages = append(result.Languages, stats)
	}

	sort.SliceStable(result.Languages, func(i, j int) bool {
		if result.Languages[i].Total != result.Languages[j].Total {
			return result.Languages[i].Total > result.Languages[j].Total
		}
		return result.Languages[i].Tag < result.Languages[j].Tag
	})

	result.EvaluatedLangs = evaluated

	if result.MappedSamples > 0 {
		result.MicroMapped = float64(result.Correct) / float64(result.MappedSamples)
		result.UnknownRate = float64(result.Unknown) / float64(result.MappedSamples)
	}
	if result.TotalSamples > 0 {
		result.MicroFull = float64(result.Correct) / float64(result.TotalSamples)
		result.FailureRate = float64(result.Failed) / float64(result.TotalSamples)
	}
	if evaluated > 0 {
		result.MacroMapped = accSum / float64(evaluated)
	}
	// Unmapped languages always sit in the full-space denominator with
	// recall 0; mapped languages with zero samples stay out of both.
	fullDenominator := evaluated + len(a.Mapping.Unmapped())
	if fullDenominator > 0 {
		result.MacroFull = accSum / float64(fullDenominator)
	}

	return result
}
