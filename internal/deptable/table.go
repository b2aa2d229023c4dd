// Package deptable holds the static map of MediaWiki extensions and skins to the
// extensions and skins they directly depend on.
package deptable

import (
	"sort"
)

// Table maps an extension or skin name to its ordered direct dependencies.
// Skins are keyed with a "skins/" prefix, e.g. "skins/MinervaNeue".
type Table map[string][]string

// Clone returns a deep copy of the table. Changes to the copy never reach t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for name, deps := range t {
		if deps == nil {
			out[name] = nil
			continue
		}
		cp := make([]string, len(deps))
		copy(cp, deps)
		out[name] = cp
	}
	return out
}

// With returns a copy of the table with key set to deps.
func (t Table) With(key string, deps []string) Table {
	out := t.Clone()
	cp := make([]string, len(deps))
	copy(cp, deps)
	out[key] = cp
	return out
}

// Merge returns a copy of t where every entry of overlay replaces the entry of the
// same name.
func (t Table) Merge(overlay Table) Table {
	out := t.Clone()
	for name, deps := range overlay.Clone() {
		out[name] = deps
	}
	return out
}

// Remove drops every occurrence of dep from name's dependency list in place and
// reports whether anything was removed.
func (t Table) Remove(name string, dep string) bool {
	deps, ok := t[name]
	if !ok {
		return false
	}
	kept := deps[:0]
	removed := false
	for _, d := range deps {
		if d == dep {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	t[name] = kept
	return removed
}

// Names returns the sorted keys of the table.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
