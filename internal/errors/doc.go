// Package errors provides the structured error taxonomy for layout
// extraction and layout-file parsing.
//
// Every failure carries a Kind. Callers match kinds with the standard
// library's errors.Is against the sentinels:
//
//	if errors.Is(err, lerrors.ErrTypeNotFound) { ... }
//
// Errors are built with a Builder:
//
//	lerrors.New(lerrors.PhaseExtract, lerrors.KindUnsupportedType).
//		Type("node").
//		Path("node", "cb").
//		Detail("function types are not modeled").
//		Build()
package errors
