// Package sampler selects a per-language working subset of the corpus.
package sampler

import (
	"math/rand"
	"sort"

	"lidbench/pkg/core"
)

// Stratified draws up to PerLang records for each benchmark tag. With
// PerLang <= 0 every record is taken. Selection is uniform without
// replacement and fully determined by Seed; languages with zero records
// simply produce nothing.
type Stratified struct {
	PerLang int
	Seed    int64
}

// Select samples each group and returns the combined, shuffled sample
// list with run-unique IDs. Tags are visited in sorted order so the
// same seed always yields the same selection.
func (s Stratified) Select(groups map[string][]core.Record) []core.Sample {
	rng := rand.New(rand.NewSource(s.Seed))

	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var picked []core.Record
	for _, tag := range tags {
		records := groups[tag]
		if len(records) == 0 {
			continue
		}
		if s.PerLang <= 0 || len(records) <= s.PerLang {
			picked = append(picked, records...)
			continue
		}
		for _, idx := range rng.Perm(len(records))[:s.PerLang] {
			picked = append(picked, records[idx])
		}
	}

	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})

	samples := make([]core.Sample, len(picked))
	for i, record := range picked {
		samples[i] = core.Sample{ID: i + 1, Tag: record.Tag, Text: record.Text}
	}
	return samples
}
