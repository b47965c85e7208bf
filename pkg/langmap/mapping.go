// Package langmap reconciles the benchmark's ISO 639-3 style tags with
// a detector's ISO 639-1 style vocabulary.
package langmap

import (
	"sort"

	"lidbench/pkg/core"
)

// Mapping is the read-only tag-to-code table for one evaluation run.
// Every benchmark tag maps to at most one detector code; an absent
// mapping is the explicit "unsupported" state, not an error.
type Mapping struct {
	codes    map[string]string
	unmapped []string
}

// New builds a Mapping from the benchmark's tag list and the detector's
// supported codes. Pure function of its inputs and the static tables;
// duplicate tags are ignored.
func New(tags []string, detectorCodes []string) *Mapping {
	supported := make(map[string]bool, len(detectorCodes))
	for _, code := range detectorCodes {
		supported[core.NormalizeCode(code)] = true
	}

	m := &Mapping{codes: make(map[string]string, len(tags))}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		if code, ok := resolve(tag, supported); ok {
			m.codes[tag] = code
		} else {
			m.unmapped = append(m.unmapped, tag)
		}
	}
	sort.Strings(m.unmapped)
	return m
}

// resolve tries the manual collapses first, then the general table,
// then a direct code match for tags the detector carries verbatim
// (e.g. ceb, nso). A collapse onto a code the detector lacks is
// unsupported, not a fallthrough.
func resolve(tag string, supported map[string]bool) (string, bool) {
	if code, ok := collapses[tag]; ok {
		if supported[code] {
			return code, true
		}
		return "", false
	}
	if code, ok := alpha3to1[tag]; ok && supported[code] {
		return code, true
	}
	if supported[tag] {
		return tag, true
	}
	return "", false
}

// Resolve returns the detector code for a benchmark tag, if any.
func (m *Mapping) Resolve(tag string) (string, bool) {
	code, ok := m.codes[tag]
	return code, ok
}

// IsMapped reports whether the tag has a detector code.
func (m *Mapping) IsMapped(tag string) bool {
	_, ok := m.codes[tag]
	return ok
}

// Mapped returns the mapped benchmark tags, sorted.
func (m *Mapping) Mapped() []string {
	tags := make([]string, 0, len(m.codes))
	for tag := range m.codes {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Unmapped returns the benchmark tags with no detector code, sorted.
func (m *Mapping) Unmapped() []string {
	out := make([]string, len(m.unmapped))
	copy(out, m.unmapped)
	return out
}

// Size returns the number of tags in the full label space.
func (m *Mapping) Size() int {
	return len(m.codes) + len(m.unmapped)
}
