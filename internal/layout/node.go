package layout

import (
	"strconv"
	"strings"
)

// Node describes the type of a field.
type Node interface {
	// Kind returns the variant.
	Kind() Kind
	// Size returns the size in bits. Void reports 0.
	Size() int64
	// String returns a C-like spelling of the type, e.g. "struct a *".
	String() string

	node()
}

// Basic is a scalar type. Name is the scalar's canonical spelling.
type Basic struct {
	Bits int64
	Name string
}

// Void is the incomplete void type.
type Void struct{}

// Pointer is a pointer of width Bits to Pointee.
type Pointer struct {
	Bits    int64
	Pointee Node
}

// Array is a fixed-size array of Count elements totalling Bits.
type Array struct {
	Bits  int64
	Count int64
	Elem  Node
}

// Struct references the struct declaration called Name ("" for anonymous).
type Struct struct {
	Bits int64
	Name string
}

// Union references the union declaration called Name ("" for anonymous).
type Union struct {
	Bits int64
	Name string
}

func (Basic) Kind() Kind   { return KindBasic }
func (Void) Kind() Kind    { return KindVoid }
func (Pointer) Kind() Kind { return KindPointer }
func (Array) Kind() Kind   { return KindArray }
func (Struct) Kind() Kind  { return KindStruct }
func (Union) Kind() Kind   { return KindUnion }

func (n Basic) Size() int64   { return n.Bits }
func (Void) Size() int64      { return 0 }
func (n Pointer) Size() int64 { return n.Bits }
func (n Array) Size() int64   { return n.Bits }
func (n Struct) Size() int64  { return n.Bits }
func (n Union) Size() int64   { return n.Bits }

func (Basic) node()   {}
func (Void) node()    {}
func (Pointer) node() {}
func (Array) node()   {}
func (Struct) node()  {}
func (Union) node()   {}

func (n Basic) String() string { return n.Name }
func (Void) String() string    { return "void" }

func (n Pointer) String() string {
	inner := spell(n.Pointee)
	if strings.HasSuffix(inner, "*") {
		return inner + "*"
	}
	return inner + " *"
}

func (n Array) String() string {
	var dims strings.Builder
	var elem Node = n
	for {
		arr, ok := elem.(Array)
		if !ok {
			break
		}
		dims.WriteByte('[')
		dims.WriteString(strconv.FormatInt(arr.Count, 10))
		dims.WriteByte(']')
		elem = arr.Elem
	}
	return spell(elem) + dims.String()
}

func (n Struct) String() string { return compositeSpelling(KindStruct, n.Name) }
func (n Union) String() string  { return compositeSpelling(KindUnion, n.Name) }

func compositeSpelling(k Kind, name string) string {
	if name == "" {
		return k.Keyword() + " <anonymous>"
	}
	return k.Keyword() + " " + name
}

func spell(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

// CompositeName returns the referenced name when n is a Struct or Union.
func CompositeName(n Node) (string, bool) {
	switch c := n.(type) {
	case Struct:
		return c.Name, true
	case Union:
		return c.Name, true
	default:
		return "", false
	}
}

// Embedded returns the composite reference a field of type n embeds by
// value: n itself when it is a Struct or Union, or the innermost element of
// a (possibly nested) array of composites. Pointers stop the search.
func Embedded(n Node) (Node, bool) {
	for {
		switch c := n.(type) {
		case Array:
			n = c.Elem
		case Struct, Union:
			return c, true
		default:
			return nil, false
		}
	}
}

// NewComposite returns a Struct or Union reference node for kind k.
func NewComposite(k Kind, bits int64, name string) Node {
	if k == KindUnion {
		return Union{Bits: bits, Name: name}
	}
	return Struct{Bits: bits, Name: name}
}
