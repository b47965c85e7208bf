package sampler

import (
	"fmt"
	"testing"

	"lidbench/pkg/core"

	"github.com/stretchr/testify/require"
)

func makeGroup(tag string, n int) []core.Record {
	records := make([]core.Record, n)
	for i := range records {
		records[i] = core.Record{Tag: tag, Text: fmt.Sprintf("%s line %d", tag, i)}
	}
	return records
}

func countByTag(samples []core.Sample) map[string]int {
	counts := map[string]int{}
	for _, s := range samples {
		counts[s.Tag]++
	}
	return counts
}

func TestSelectCapsLargeGroupsKeepsSmallOnes(t *testing.T) {
	groups := map[string][]core.Record{
		"deu": makeGroup("deu", 50),
		"fin": makeGroup("fin", 3),
		"swe": makeGroup("swe", 10),
	}

	s := Stratified{PerLang: 10, Seed: 42}
	samples := s.Select(groups)

	counts := countByTag(samples)
	require.Equal(t, 10, counts["deu"])
	require.Equal(t, 3, counts["fin"])
	require.Equal(t, 10, counts["swe"])
}

func TestSelectNoDuplicates(t *testing.T) {
	groups := map[string][]core.Record{"deu": makeGroup("deu", 100)}

	samples := Stratified{PerLang: 25, Seed: 7}.Select(groups)
	require.Len(t, samples, 25)

	seen := map[string]bool{}
	for _, s := range samples {
		require.False(t, seen[s.Text], "duplicate record %q", s.Text)
		seen[s.Text] = true
	}
}

func TestSelectReproducibleAcrossRuns(t *testing.T) {
	groups := map[string][]core.Record{
		"deu": makeGroup("deu", 40),
		"fra": makeGroup("fra", 40),
		"nld": makeGroup("nld", 40),
	}

	a := Stratified{PerLang: 5, Seed: 42}.Select(groups)
	b := Stratified{PerLang: 5, Seed: 42}.Select(groups)
	require.Equal(t, a, b)

	c := Stratified{PerLang: 5, Seed: 43}.Select(groups)
	require.NotEqual(t, a, c)
}

func TestSelectUncappedTakesEverything(t *testing.T) {
	groups := map[string][]core.Record{
		"deu": makeGroup("deu", 4),
		"fra": makeGroup("fra", 6),
	}

	samples := Stratified{Seed: 1}.Select(groups)
	require.Len(t, samples, 10)
}

func TestSelectSkipsEmptyGroupsAndAssignsUniqueIDs(t *testing.T) {
	groups := map[string][]core.Record{
		"deu": makeGroup("deu", 2),
		"xxx": nil,
	}

	samples := Stratified{PerLang: 5, Seed: 3}.Select(groups)
	require.Len(t, samples, 2)

	ids := map[int]bool{}
	for _, s := range samples {
		require.NotEqual(t, "xxx", s.Tag)
		require.False(t, ids[s.ID])
		ids[s.ID] = true
	}
}
