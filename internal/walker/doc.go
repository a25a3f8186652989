// Package walker turns a root composite name into a closed, minimal
// layout.Table by walking an oracle's type graph.
//
// The walk keeps a FIFO worklist of composite names and a set of names
// already queued. A composite embedded by value (directly or as an array
// element) is queued; a composite reached only through a pointer is
// recorded as a reference and never expanded; an anonymous composite is
// recorded as a reference with an empty name. Each name is queued at most
// once, so the walk terminates for self- and mutually-referential types.
//
// Extraction is all-or-nothing: any type outside the model (bitfields,
// function types, vector types) fails the whole request with
// errors.ErrUnsupportedType, and a missing composite fails with
// errors.ErrTypeNotFound.
package walker
