// Package launchenv holds the mutable environment table the launcher
// prepares before handing off to the runner.
package launchenv

import (
	"os"
	"sort"
	"strings"
)

// PathVar is the search-path variable consulted for bare executable names.
const PathVar = "PATH"

// Table is a snapshot of environment variables, keyed by name. It is
// mutated in place during launch preparation and converted back to the
// KEY=VALUE form expected by exec at handoff.
type Table struct {
	vars map[string]string
}

// New returns an empty Table.
func New() *Table {
	return &Table{vars: make(map[string]string)}
}

// Capture snapshots the current process environment.
func Capture() *Table {
	return Parse(os.Environ())
}

// Parse builds a Table from KEY=VALUE pairs. Entries without a '=' are
// ignored. Later entries win over earlier ones with the same key.
func Parse(environ []string) *Table {
	t := New()
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		t.vars[key] = val
	}
	return t
}

// Lookup returns the value for key and whether it is set.
func (t *Table) Lookup(key string) (string, bool) {
	v, ok := t.vars[key]
	return v, ok
}

// Get returns the value for key, or "" when unset.
func (t *Table) Get(key string) string {
	return t.vars[key]
}

// Set adds or replaces a variable.
func (t *Table) Set(key, value string) {
	t.vars[key] = value
}

// Len returns the number of variables in the table.
func (t *Table) Len() int {
	return len(t.vars)
}

// PrependPath places dir at the front of the search-path variable so it
// wins over any later entry with a conflicting executable name. The
// prepend is unconditional; duplicates further down the list are kept.
func (t *Table) PrependPath(dir string) {
	existing, ok := t.vars[PathVar]
	if !ok || existing == "" {
		t.vars[PathVar] = dir
		return
	}
	t.vars[PathVar] = dir + string(os.PathListSeparator) + existing
}

// Environ returns the table as sorted KEY=VALUE pairs, suitable for
// passing to exec.
func (t *Table) Environ() []string {
	environ := make([]string, 0, len(t.vars))
	for k, v := range t.vars {
		environ = append(environ, k+"="+v)
	}
	sort.Strings(environ)
	return environ
}
