package score

import (
	"fmt"
	"math"
	"testing"

	"lidbench/pkg/core"
	"lidbench/pkg/langmap"

	"github.com/stretchr/testify/require"
)

func preds(tag string, correct, wrong, unknown, failed int, code string) []core.Prediction {
	var out []core.Prediction
	add := func(p core.Prediction) {
		p.Sample = core.Sample{ID: len(out) + 1, Tag: tag, Text: "x"}
		out = append(out, p)
	}
	for i := 0; i < correct; i++ {
		add(core.Prediction{Outcome: core.OutcomeCode, Code: code})
	}
	for i := 0; i < wrong; i++ {
		add(core.Prediction{Outcome: core.OutcomeCode, Code: "zz"})
	}
	for i := 0; i < unknown; i++ {
		add(core.Prediction{Outcome: core.OutcomeUnknown, Code: core.Unknown})
	}
	for i := 0; i < failed; i++ {
		add(core.Prediction{Outcome: core.OutcomeError, Err: "boom"})
	}
	return out
}

func renumber(predictions []core.Prediction) []core.Prediction {
	for i := range predictions {
		predictions[i].Sample.ID = i + 1
	}
	return predictions
}

func TestCollapsedDialectsScoredIndependently(t *testing.T) {
	// arb and aeb both map to ar; each language is scored against its
	// own tally, so macro recall over the two is 100%.
	mapping := langmap.New([]string{"arb", "aeb"}, []string{"ar"})

	var predictions []core.Prediction
	predictions = append(predictions, preds("arb", 100, 0, 0, 0, "ar")...)
	predictions = append(predictions, preds("aeb", 10, 0, 0, 0, "ar")...)
	predictions = renumber(predictions)

	result := Aggregator{Mapping: mapping}.Aggregate(predictions)

	require.Equal(t, 110, result.TotalSamples)
	require.Equal(t, 110, result.Correct)
	require.Equal(t, 1.0, result.MicroMapped)
	require.Equal(t, 1.0, result.MacroMapped)
	require.Equal(t, 1.0, result.MacroFull)
}

func TestMacroFullCountsUnmappedAsZero(t *testing.T) {
	// 2 mapped languages at 60% and 80%, 3 unmapped languages.
	// Macro full = (0.6+0.8)/5, macro mapped = (0.6+0.8)/2.
	mapping := langmap.New(
		[]string{"deu", "fra", "qaa", "qab", "qac"},
		[]string{"de", "fr"},
	)

	var predictions []core.Prediction
	predictions = append(predictions, preds("deu", 6, 4, 0, 0, "de")...)
	predictions = append(predictions, preds("fra", 8, 2, 0, 0, "fr")...)
	for _, tag := range []string{"qaa", "qab", "qac"} {
		predictions = append(predictions, preds(tag, 0, 5, 0, 0, "")...)
	}
	predictions = renumber(predictions)

	result := Aggregator{Mapping: mapping}.Aggregate(predictions)

	require.InDelta(t, 0.7, result.MacroMapped, 1e-12)
	require.InDelta(t, 1.4/5, result.MacroFull, 1e-12)

	// Unmapped samples inflate only the full micro denominator.
	require.InDelta(t, 14.0/20, result.MicroMapped, 1e-12)
	require.InDelta(t, 14.0/35, result.MicroFull, 1e-12)
	require.LessOrEqual(t, result.MicroFull, result.MicroMapped)
	require.LessOrEqual(t, result.MacroFull, result.MacroMapped)
}

func TestMacroFullScaledLabelSpace(t *testing.T) {
	// 55 mapped languages averaging 61.5%, 54 unmapped: macro full is
	// 55/109 of the mapped mean.
	var tags []string
	var detectorCodes []string
	var predictions []core.Prediction

	// Tags double as detector codes so each maps via direct code match.
	for i := 0; i < 55; i++ {
		tag := fmt.Sprintf("m%02d", i)
		tags = append(tags, tag)
		detectorCodes = append(detectorCodes, tag)
		// 123/200 correct = 61.5% per language.
		predictions = append(predictions, preds(tag, 123, 77, 0, 0, tag)...)
	}
	for i := 0; i < 54; i++ {
		tags = append(tags, fmt.Sprintf("u%02daa", i))
	}
	predictions = renumber(predictions)

	mapping := langmap.New(tags, detectorCodes)
	require.Len(t, mapping.Mapped(), 55)
	result := Aggregator{Mapping: mapping}.Aggregate(predictions)

	require.Equal(t, 109, result.LabelSpace)
	require.Equal(t, 55, result.EvaluatedLangs)
	require.InDelta(t, 0.615, result.MacroMapped, 1e-12)
	require.InDelta(t, 55.0/109*0.615, result.MacroFull, 1e-9)
}

func TestUnknownRateOverMappedPredictions(t *testing.T) {
	mapping := langmap.New([]string{"deu"}, []string{"de"})

	predictions := renumber(preds("deu", 8208, 0, 583, 0, "de"))
	result := Aggregator{Mapping: mapping}.Aggregate(predictions)

	require.Equal(t, 8791, result.MappedSamples)
	require.Equal(t, 583, result.Unknown)
	require.InDelta(t, 583.0/8791, result.UnknownRate, 1e-12)
}

func TestFailuresDistinctFromUnknownAndIncorrect(t *testing.T) {
	mapping := langmap.New([]string{"deu"}, []string{"de"})

	predictions := renumber(preds("deu", 5, 2, 1, 2, "de"))
	result := Aggregator{Mapping: mapping}.Aggregate(predictions)

	require.Equal(t, 10, result.TotalSamples)
	require.Equal(t, 5, result.Correct)
	require.Equal(t, 1, result.Unknown)
	require.Equal(t, 2, result.Failed)
	require.InDelta(t, 0.2, result.FailureRate, 1e-12)

	c := result.Counters["deu"]
	require.Equal(t, 1, c.Predicted[core.Unknown])
	require.Equal(t, 2, c.Predicted["<error>"])
	require.Equal(t, 5, c.Predicted["de"])
}

func TestLowSampleFlagging(t *testing.T) {
	mapping := langmap.New([]string{"deu", "fin"}, []string{"de", "fi"})

	var predictions []core.Prediction
	predictions = append(predictions, preds("deu", 9, 1, 0, 0, "de")...)
	predictions = append(predictions, preds("fin", 1, 0, 0, 0, "fi")...)
	predictions = renumber(predictions)

	result := Aggregator{Mapping: mapping, MinSamples: 5}.Aggregate(predictions)

	byTag := map[string]LangStats{}
	for _, l := range result.Languages {
		byTag[l.Tag] = l
	}
	require.False(t, byTag["deu"].LowSample)
	require.True(t, byTag["fin"].LowSample)
	// Flagged, not excluded.
	require.InDelta(t, (0.9+1.0)/2, result.MacroMapped, 1e-12)
}

func TestAggregateIdempotent(t *testing.T) {
	mapping := langmap.New([]string{"deu", "fra", "qaa"}, []string{"de", "fr"})

	var predictions []core.Prediction
	predictions = append(predictions, preds("deu", 3, 1, 1, 1, "de")...)
	predictions = append(predictions, preds("fra", 2, 2, 0, 0, "fr")...)
	predictions = append(predictions, preds("qaa", 0, 3, 0, 0, "")...)
	predictions = renumber(predictions)

	agg := Aggregator{Mapping: mapping, MinSamples: 2}
	a := agg.Aggregate(predictions)
	b := agg.Aggregate(predictions)
	require.Equal(t, a, b)
	require.True(t, math.Float64bits(a.MacroFull) == math.Float64bits(b.MacroFull))
}

func TestLanguagesSortedByCountThenTag(t *testing.T) {
	mapping := langmap.New([]string{"deu", "fra", "nld"}, []string{"de", "fr", "nl"})

	var predictions []core.Prediction
	predictions = append(predictions, preds("nld", 2, 0, 0, 0, "nl")...)
	predictions = append(predictions, preds("deu", 5, 0, 0, 0, "de")...)
	predictions = append(predictions, preds("fra", 2, 0, 0, 0, "fr")...)
	predictions = renumber(predictions)

	result := Aggregator{Mapping: mapping}.Aggregate(predictions)

	require.Equal(t, "deu", result.Languages[0].Tag)
	require.Equal(t, "fra", result.Languages[1].Tag)
	require.Equal(t, "nld", result.Languages[2].Tag)
}
