package store

import (
	"maps"
	"slices"
)

// Section is a named group of key/value configuration entries.
type Section map[string]string

// Clone returns an independent copy of s. A nil section clones to an empty one.
func (s Section) Clone() Section {
	out := make(Section, len(s))
	maps.Copy(out, s)
	return out
}

// Sections maps section names to their values.
type Sections map[string]Section

// Clone deep-copies every section.
func (s Sections) Clone() Sections {
	out := make(Sections, len(s))
	for name, sec := range s {
		out[name] = sec.Clone()
	}
	return out
}

// Names returns the section names in sorted order.
func (s Sections) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// sortedKeys returns the keys of a section in sorted order so backends write
// deterministic output.
func sortedKeys(s Section) []string {
	return slices.Sorted(maps.Keys(s))
}
