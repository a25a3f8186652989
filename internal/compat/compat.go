// Package compat compares two layout tables of the same composite and
// reports the differences that break binary compatibility.
package compat

import (
	"fmt"

	"struct-layout/internal/diagnostic"
	"struct-layout/internal/layout"
	"struct-layout/internal/match"
)

// Diagnostic codes.
const (
	CodeCompositeRemoved = "composite-removed"
	CodeCompositeAdded   = "composite-added"
	CodeCompositeResized = "composite-resized"
	CodeFieldRemoved     = "field-removed"
	CodeFieldAdded       = "field-added"
	CodeFieldMoved       = "field-moved"
	CodeFieldType        = "field-type-changed"
	CodeUnchanged        = "unchanged"
)

const maxSuggestions = 3

// Compare reports how current differs from baseline. Removed composites
// and fields, size changes, moved fields and changed field types are
// errors; additions are warnings.
func Compare(baseline, current *layout.Table) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	var added []string
	for _, name := range current.Names() {
		if !baseline.Has(name) {
			added = append(added, name)
		}
	}

	unchanged := 0
	for _, name := range baseline.Names() {
		base, _ := baseline.Get(name)
		cur, ok := current.Get(name)
		if !ok {
			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        CodeCompositeRemoved,
				Message:     "composite removed",
				Composite:   name,
				Suggestions: match.Suggest(name, added, maxSuggestions),
			})
			continue
		}

		before, after := compositeBits(baseline, name), compositeBits(current, name)
		if before != after {
			diags.AddError(CodeCompositeResized,
				fmt.Sprintf("size changed from %d to %d bits", before, after), name, "")
		}

		if base.Equal(cur) {
			if before == after {
				unchanged++
			}
			continue
		}
		diags.Merge(compareDeclarations(name, base, cur))
	}

	for _, name := range added {
		diags.AddWarning(CodeCompositeAdded, "composite added", name, "")
	}

	if unchanged > 0 {
		diags.AddInfo(CodeUnchanged, fmt.Sprintf("%d of %d composites unchanged", unchanged, baseline.Len()), "", "")
	}

	return diags
}

func compareDeclarations(name string, base, cur *layout.Declaration) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, f := range base.Fields() {
		g, ok := cur.Get(f.Name)
		if !ok {
			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        CodeFieldRemoved,
				Message:     fmt.Sprintf("field removed (was %s at bit %d)", describe(f.Type), f.Offset),
				Composite:   name,
				Field:       f.Name,
				Suggestions: renamedAs(f, base, cur),
			})
			continue
		}

		if g.Offset != f.Offset {
			diags.AddError(CodeFieldMoved,
				fmt.Sprintf("offset changed from %d to %d bits", f.Offset, g.Offset), name, f.Name)
		}
		if g.Type != f.Type {
			diags.AddError(CodeFieldType,
				fmt.Sprintf("type changed from %s to %s", describe(f.Type), describe(g.Type)), name, f.Name)
		}
	}

	for _, g := range cur.Fields() {
		if _, ok := base.Get(g.Name); !ok {
			diags.AddWarning(CodeFieldAdded,
				fmt.Sprintf("field added (%s at bit %d)", describe(g.Type), g.Offset), name, g.Name)
		}
	}

	return diags
}

// renamedAs returns the new fields that take the removed field's exact
// place, falling back to similarly named new fields.
func renamedAs(removed layout.Field, base, cur *layout.Declaration) []string {
	var fresh, same []string
	for _, g := range cur.Fields() {
		if _, ok := base.Get(g.Name); ok {
			continue
		}
		fresh = append(fresh, g.Name)
		if g.Offset == removed.Offset && g.Type == removed.Type {
			same = append(same, g.Name)
		}
	}
	if len(same) > 0 {
		return same
	}
	return match.Suggest(removed.Name, fresh, maxSuggestions)
}

// compositeBits returns the size of the composite called name as recorded
// by a reference to it anywhere in t, pointers included. A composite nothing
// refers to, usually the root, is as large as the extent of its fields.
func compositeBits(t *layout.Table, name string) int64 {
	for _, owner := range t.Names() {
		d, _ := t.Get(owner)
		for _, f := range d.Fields() {
			if bits, ok := referencedBits(f.Type, name); ok {
				return bits
			}
		}
	}

	d, _ := t.Get(name)
	var extent int64
	for _, f := range d.Fields() {
		if f.Type != nil {
			extent = max(extent, f.Offset+f.Type.Size())
		}
	}
	return extent
}

// referencedBits looks through pointers and arrays of n for a sized
// reference to the composite called name.
func referencedBits(n layout.Node, name string) (int64, bool) {
	for {
		switch c := n.(type) {
		case layout.Pointer:
			n = c.Pointee
		case layout.Array:
			n = c.Elem
		case layout.Struct, layout.Union:
			ref, _ := layout.CompositeName(c)
			if ref != name || c.Size() <= 0 {
				return 0, false
			}
			return c.Size(), true
		default:
			return 0, false
		}
	}
}

func describe(n layout.Node) string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%d bits)", n, n.Size())
}
