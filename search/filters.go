package search

import (
	"strconv"

	"github.com/Robotu-ai/robotu-molkit/core"
)

// Filter narrows search results by entry metadata. Filters run after
// the vector scan, over the wide candidate pool.
type Filter interface {
	// Match reports whether the entry passes the filter.
	Match(entry *core.IndexEntry) bool
}

// equalsFilter matches entries whose metadata value equals the wanted
// value exactly.
type equalsFilter struct {
	key   string
	value string
}

func (f equalsFilter) Match(entry *core.IndexEntry) bool {
	return entry.Metadata[f.key] == f.value
}

// Equals returns a filter matching entries where metadata[key] == value.
func Equals(key, value string) Filter {
	return equalsFilter{key: key, value: value}
}

// oneOfFilter matches entries whose metadata value is in a set.
type oneOfFilter struct {
	key    string
	values map[string]bool
}

func (f oneOfFilter) Match(entry *core.IndexEntry) bool {
	return f.values[entry.Metadata[f.key]]
}

// OneOf returns a filter matching entries where metadata[key] is any of
// the given values.
func OneOf(key string, values ...string) Filter {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return oneOfFilter{key: key, values: set}
}

// rangeFilter matches entries whose metadata value parses as a number
// within [min, max].
type rangeFilter struct {
	key      string
	min, max float64
}

func (f rangeFilter) Match(entry *core.IndexEntry) bool {
	raw, ok := entry.Metadata[f.key]
	if !ok {
		return false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	return v >= f.min && v <= f.max
}

// Range returns a filter matching entries where metadata[key] is a
// number in the inclusive interval [min, max]. Entries without the key,
// or with a non-numeric value, do not match.
func Range(key string, min, max float64) Filter {
	return rangeFilter{key: key, min: min, max: max}
}

// sectionFilter matches entries from one thematic section.
type sectionFilter struct {
	name string
}

func (f sectionFilter) Match(entry *core.IndexEntry) bool {
	return entry.Section == f.name
}

// SectionIs returns a filter matching entries from the named thematic
// section (summary, names, structure, safety, properties, spectra).
func SectionIs(name string) Filter {
	return sectionFilter{name: name}
}

// matchAll reports whether the entry passes every filter.
func matchAll(entry *core.IndexEntry, filters []Filter) bool {
	for _, f := range filters {
		if !f.Match(entry) {
			return false
		}
	}
	return true
}
