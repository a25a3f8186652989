// Package oracle defines the read-only view of a compiler's resolved type
// information that layout extraction runs against.
//
// An Oracle answers one question: given a composite name, what are its kind,
// size and fields. Field types are described by Type descriptors, which
// classify themselves as scalar, void, pointer, array, struct, union or
// unsupported and describe pointees and elements recursively. A composite
// referenced from a descriptor carries only its name and size, never its
// fields.
//
// Implementations live in subpackages:
//   - gotypes: Go packages via go/types
//   - dwarf: ELF objects carrying DWARF debug information
//   - universe: YAML-declared C-like composites with computed layouts
package oracle
