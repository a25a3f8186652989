package oracle

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) by Lookup for unknown composite names.
var ErrNotFound = errors.New("composite not found")

// Oracle provides resolved composite layouts by name.
type Oracle interface {
	Lookup(name string) (*Composite, error)
}

// Lister is implemented by oracles that can enumerate the composite names
// they know about.
type Lister interface {
	Names() []string
}

// NotFound returns an ErrNotFound error for name.
func NotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// CompositeKind distinguishes structs from unions.
type CompositeKind int

const (
	Struct CompositeKind = iota
	Union
)

// String returns the C keyword for the kind.
func (k CompositeKind) String() string {
	if k == Union {
		return "union"
	}
	return "struct"
}

// Composite is the resolved layout of one struct or union.
type Composite struct {
	Name   string
	Kind   CompositeKind
	Bits   int64
	Fields []Field
}

// Field is one member of a composite. Name is empty for unnamed members.
type Field struct {
	Name   string
	Offset int64 // in bits from the start of the composite
	// BitfieldWidth is non-zero for bitfield members.
	BitfieldWidth int64
	Type          *Type
}

// Class classifies a Type descriptor.
type Class int

const (
	ClassUnsupported Class = iota
	ClassScalar
	ClassVoid
	ClassPointer
	ClassArray
	ClassStruct
	ClassUnion
)

// String returns a human-readable class name.
func (c Class) String() string {
	switch c {
	case ClassScalar:
		return "scalar"
	case ClassVoid:
		return "void"
	case ClassPointer:
		return "pointer"
	case ClassArray:
		return "array"
	case ClassStruct:
		return "struct"
	case ClassUnion:
		return "union"
	default:
		return "unsupported"
	}
}

// Type describes the type of a field.
type Type struct {
	Class Class
	Bits  int64
	// Name is the scalar spelling or the composite tag ("" for anonymous).
	Name string
	// Count is the element count of an array.
	Count int64
	// Elem is the pointee of a pointer or the element of an array.
	Elem *Type
	// Reason explains why a type is unsupported, e.g. "function type".
	Reason string
}

// Scalar returns a scalar descriptor.
func Scalar(bits int64, name string) *Type {
	return &Type{Class: ClassScalar, Bits: bits, Name: name}
}

// VoidType returns the void descriptor.
func VoidType() *Type {
	return &Type{Class: ClassVoid}
}

// PointerTo returns a pointer descriptor of width bits.
func PointerTo(bits int64, elem *Type) *Type {
	return &Type{Class: ClassPointer, Bits: bits, Elem: elem}
}

// ArrayOf returns an array descriptor of count elements.
func ArrayOf(count int64, elem *Type) *Type {
	return &Type{Class: ClassArray, Bits: count * elem.Bits, Count: count, Elem: elem}
}

// CompositeRef returns a reference descriptor to a struct or union.
func CompositeRef(kind CompositeKind, bits int64, name string) *Type {
	c := ClassStruct
	if kind == Union {
		c = ClassUnion
	}
	return &Type{Class: c, Bits: bits, Name: name}
}

// UnsupportedType returns a descriptor for a type outside the model.
func UnsupportedType(reason string) *Type {
	return &Type{Class: ClassUnsupported, Reason: reason}
}
