// Package layout provides the structural model of an extracted memory layout.
//
// A Table maps composite names to their Declarations; a Declaration is an
// ordered set of fields, each with a bit offset and a Node describing its
// type. Nodes come in six variants (Basic, Void, Pointer, Array, Struct,
// Union). Struct and Union nodes are references by name: the fields of a
// composite only ever live in the Table, which is what keeps self- and
// mutually-referential composites finite.
//
// All Node variants are comparable values, so two Nodes are structurally
// equal exactly when they compare equal with ==.
package layout
