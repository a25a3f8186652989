// Package gotypes presents Go struct types as a layout oracle.
//
// Packages are loaded with golang.org/x/tools/go/packages and measured with
// the types.Sizes of the requested compiler and architecture. Struct types
// declared in the primary package are looked up by their bare name; struct
// types of any package it imports, directly or not, by "path.Name" (for
// example "net/netip.Addr").
//
// Scalars are reported with their predeclared spelling, so a field of type
// byte or of a named type such as `type Port uint16` reads as uint8 and
// uint16. unsafe.Pointer is a pointer to void. Strings, slices, maps,
// channels, interfaces, functions and instantiated generic types are
// unsupported. Go has no unions.
package gotypes
