// Package universe provides an oracle over C-like composites declared in a
// YAML file. The oracle computes layouts itself using natural alignment for
// the selected data model, which makes it usable for offline layout
// modeling and as a fabricated compiler in tests.
//
// # File format
//
//	data_model: lp64            # lp64 (default), ilp32 or llp64
//	composites:
//	  - kind: struct
//	    name: node
//	    fields:
//	      - {name: next, type: "struct node*"}
//	      - {name: vals, type: "int[4]"}
//	      - {name: flags, type: "unsigned int", bits: 3}   # bitfield
//	      - anonymous:                                     # unnamed member
//	          kind: union
//	          fields:
//	            - {name: i, type: int}
//	            - {name: f, type: float}
//
// # Type strings
//
// A type string is a base type followed by pointer stars and array
// dimensions, with C declarator semantics: "int*[2]" is an array of two
// pointers to int and "int[2][3]" is an array of two arrays of three ints.
// Bases are scalar spellings ("unsigned long", "long long int", "int32_t",
// ...), "void", "struct TAG", "union TAG", and the unsupported "func" (only
// behind a pointer) and "vector". Scalar spellings are normalized to GCC's
// canonical form, so "long" reads back as "long int". An empty dimension
// ("char[]") declares a flexible array member.
package universe
