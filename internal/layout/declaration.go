package layout

import (
	"fmt"
	"strconv"
)

// Synthesized field names for unnamed struct and union members.
const (
	AnonymousStruct = "(anonymous struct)"
	AnonymousUnion  = "(anonymous union)"
)

// AnonymousFieldName returns the field name for the nth (1-based) unnamed
// member of kind k in a declaration holding total such members. A lone
// member keeps the bare marker.
func AnonymousFieldName(k Kind, nth, total int) string {
	marker := AnonymousStruct
	if k == KindUnion {
		marker = AnonymousUnion
	}
	if total <= 1 {
		return marker
	}
	return marker[:len(marker)-1] + " " + strconv.Itoa(nth) + ")"
}

// Field is a named field entry of a declaration.
type Field struct {
	Name   string
	Offset int64 // in bits
	Type   Node
}

// Declaration is the ordered field list of one composite.
type Declaration struct {
	fields []Field
	index  map[string]int
}

// NewDeclaration creates a declaration from fields, rejecting duplicates.
func NewDeclaration(fields ...Field) (*Declaration, error) {
	d := &Declaration{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if err := d.Add(f); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustDeclaration is like NewDeclaration but panics on duplicate names.
func MustDeclaration(fields ...Field) *Declaration {
	d, err := NewDeclaration(fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// Add appends a field.
func (d *Declaration) Add(f Field) error {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if f.Type == nil {
		return fmt.Errorf("field %q has no type", f.Name)
	}
	if _, dup := d.index[f.Name]; dup {
		return fmt.Errorf("duplicate field %q", f.Name)
	}
	d.index[f.Name] = len(d.fields)
	d.fields = append(d.fields, f)
	return nil
}

// Get returns the field called name.
func (d *Declaration) Get(name string) (Field, bool) {
	i, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// Len returns the number of fields.
func (d *Declaration) Len() int {
	return len(d.fields)
}

// Fields returns the fields in declaration order.
func (d *Declaration) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Names returns the field names in declaration order.
func (d *Declaration) Names() []string {
	out := make([]string, len(d.fields))
	for i, f := range d.fields {
		out[i] = f.Name
	}
	return out
}

// Equal reports whether both declarations hold the same field names with
// equal offsets and types. Field order is not significant.
func (d *Declaration) Equal(o *Declaration) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.fields) != len(o.fields) {
		return false
	}
	for _, f := range d.fields {
		g, ok := o.Get(f.Name)
		if !ok || g.Offset != f.Offset || g.Type != f.Type {
			return false
		}
	}
	return true
}
