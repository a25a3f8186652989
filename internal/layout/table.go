package layout

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Table maps composite names to their declarations.
type Table struct {
	// Root is the name the table was extracted for. It is not part of the
	// textual format and does not take part in equality.
	Root  string
	decls map[string]*Declaration
}

// NewTable creates an empty table for root.
func NewTable(root string) *Table {
	return &Table{
		Root:  root,
		decls: make(map[string]*Declaration),
	}
}

// Set stores the declaration of name.
func (t *Table) Set(name string, d *Declaration) {
	if t.decls == nil {
		t.decls = make(map[string]*Declaration)
	}
	t.decls[name] = d
}

// Get returns the declaration of name.
func (t *Table) Get(name string) (*Declaration, bool) {
	d, ok := t.decls[name]
	return d, ok
}

// Has reports whether name is declared.
func (t *Table) Has(name string) bool {
	_, ok := t.decls[name]
	return ok
}

// Len returns the number of declarations.
func (t *Table) Len() int {
	return len(t.decls)
}

// Names returns the declared composite names, sorted.
func (t *Table) Names() []string {
	names := maps.Keys(t.decls)
	slices.Sort(names)
	return names
}

// Equal reports whether both tables declare the same names with equal
// declarations.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.decls) != len(o.decls) {
		return false
	}
	for name, d := range t.decls {
		od, ok := o.decls[name]
		if !ok || !d.Equal(od) {
			return false
		}
	}
	return true
}

// Dependencies returns the sorted, de-duplicated names of the composites
// the declaration of name embeds by value.
func (t *Table) Dependencies(name string) []string {
	d, ok := t.decls[name]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	for _, f := range d.fields {
		ref, ok := Embedded(f.Type)
		if !ok {
			continue
		}
		if n, _ := CompositeName(ref); n != "" {
			seen[n] = struct{}{}
		}
	}
	deps := maps.Keys(seen)
	slices.Sort(deps)
	return deps
}

// Validate checks closure (every composite embedded by value under a
// non-empty name is declared) and that no anonymous composite is declared.
func (t *Table) Validate() error {
	var problems []string

	if t.Has("") {
		problems = append(problems, "anonymous composite declared")
	}
	if t.Root != "" && !t.Has(t.Root) {
		problems = append(problems, fmt.Sprintf("root %q not declared", t.Root))
	}

	for _, name := range t.Names() {
		for _, f := range t.decls[name].fields {
			ref, ok := Embedded(f.Type)
			if !ok {
				continue
			}
			if n, _ := CompositeName(ref); n != "" && !t.Has(n) {
				problems = append(problems, fmt.Sprintf("%s.%s embeds undeclared %s", name, f.Name, ref))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid layout table: %s", strings.Join(problems, "; "))
	}
	return nil
}
