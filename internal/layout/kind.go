package layout

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies a Node variant. Its String form is the constructor name
// used by the textual layout format.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindBasic
	KindVoid
	KindPointer
	KindArray
	KindStruct
	KindUnion
)

// IsComposite reports whether the kind references a composite declaration.
func (k Kind) IsComposite() bool {
	return k == KindStruct || k == KindUnion
}

// Keyword returns the C keyword for composite kinds ("struct", "union").
func (k Kind) Keyword() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	default:
		return ""
	}
}
