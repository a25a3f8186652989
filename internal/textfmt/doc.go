// Package textfmt reads and writes layout tables in a small textual
// exchange format.
//
// A file is a sequence of bindings, one per composite:
//
//	point = {
//		"x": (0, Basic(32, "int")),
//		"y": (32, Basic(32, "int")),
//	}
//
//	poly = {
//		"pts": (0, Array(384, 6, Struct(64, "point"))),
//		"next": (384, Pointer(64, Struct(448, "poly"))),
//	}
//
// Binding names are bare identifiers when they can be, quoted Go string
// literals otherwise. Field entries are (offset, type) pairs with offsets in
// bits. Types are built from exactly six constructors: Basic, Void, Pointer,
// Array, Struct and Union. Lines starting with '#' are comments and trailing
// commas are accepted everywhere a list ends.
//
// Reading never evaluates anything: Unmarshal builds the table directly from
// the syntax and rejects anything outside the grammar with a *ParseError.
package textfmt
