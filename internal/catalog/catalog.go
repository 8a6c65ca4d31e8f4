// Package catalog holds the static prediction content: category tables,
// time-of-day and day-type pools, and the built-in themes. The selection
// engine receives these as explicit values at construction; nothing in this
// package is mutated at runtime.
package catalog

import "sort"

// Catalog maps a category name to its candidate prediction strings.
type Catalog map[string][]string

// Categories returns the category names in sorted order.
func (c Catalog) Categories() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the category exists and has at least one entry.
func (c Catalog) Has(name string) bool {
	return len(c[name]) > 0
}

// Clone returns a deep copy. Stores hand copies to callers so the
// originals stay immutable.
func (c Catalog) Clone() Catalog {
	cp := make(Catalog, len(c))
	for name, entries := range c {
		list := make([]string, len(entries))
		copy(list, entries)
		cp[name] = list
	}
	return cp
}
