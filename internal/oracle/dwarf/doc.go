// Package dwarf presents the struct, union and class definitions in the
// DWARF debug information of an ELF object as a layout oracle.
//
// Composites are looked up by tag name. Typedefs and cv-qualifiers are
// looked through, base types keep their DWARF name, enumerations read as
// scalars named "enum tag", and arrays flagged as GNU vectors, function
// types and unspecified types are unsupported. Pointers to a composite that
// is only declared in the object get the size of its definition elsewhere
// in the object, or 0 when there is none.
//
// Typedef names of anonymous composites (typedef struct { ... } foo_t) are
// not indexed; such composites are only reachable as anonymous members.
package dwarf
