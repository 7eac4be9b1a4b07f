package message

import (
	"slices"
	"strings"
)

// headers is a case-insensitive header multimap that preserves the case of
// the name each header was last written under and the order names were
// added. It is a value: every mutation returns a new headers and leaves the
// receiver untouched.
//
// Invariant: for every key k in fold, values[fold[k]] exists and is non-empty,
// and k == strings.ToLower(fold[k]).
type headers struct {
	names  []string            // original-case names in insertion order
	values map[string][]string // original-case name → values
	fold   map[string]string   // lowercased name → original-case name
}

func (h headers) clone() headers {
	c := headers{
		names:  slices.Clone(h.names),
		values: make(map[string][]string, len(h.values)),
		fold:   make(map[string]string, len(h.fold)),
	}
	for name, vals := range h.values {
		c.values[name] = vals
	}
	for lower, name := range h.fold {
		c.fold[lower] = name
	}
	return c
}

// lookup returns the stored original-case name for name.
func (h headers) lookup(name string) (string, bool) {
	stored, ok := h.fold[strings.ToLower(name)]
	return stored, ok
}

func (h headers) has(name string) bool {
	_, ok := h.lookup(name)
	return ok
}

// get returns a copy of the values stored under name, or an empty slice.
func (h headers) get(name string) []string {
	stored, ok := h.lookup(name)
	if !ok {
		return []string{}
	}
	return slices.Clone(h.values[stored])
}

// with replaces the header, dropping any entry stored under a different case
// first so name becomes the canonical spelling. An empty vals removes it.
func (h headers) with(name string, vals []string) headers {
	c := h.without(name)
	if len(vals) == 0 {
		return c
	}
	c.names = append(c.names, name)
	c.values[name] = slices.Clone(vals)
	c.fold[strings.ToLower(name)] = name
	return c
}

// added appends vals to the existing header and rewrites it under name.
func (h headers) added(name string, vals []string) headers {
	return h.with(name, append(h.get(name), vals...))
}

// without removes the header regardless of the case it is stored under.
func (h headers) without(name string) headers {
	c := h.clone()
	lower := strings.ToLower(name)
	stored, ok := c.fold[lower]
	if !ok {
		return c
	}
	delete(c.fold, lower)
	delete(c.values, stored)
	c.names = slices.DeleteFunc(c.names, func(n string) bool { return n == stored })
	return c
}

// all returns a copy of the header map keyed by original-case names.
func (h headers) all() map[string][]string {
	out := make(map[string][]string, len(h.values))
	for name, vals := range h.values {
		out[name] = slices.Clone(vals)
	}
	return out
}
