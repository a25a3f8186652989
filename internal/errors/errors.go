package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseExtract Phase = "extract" // type-graph walk
	PhaseParse   Phase = "parse"   // layout text decoding
)

// Kind categorizes the error
type Kind string

const (
	KindTypeNotFound    Kind = "type_not_found"
	KindUnsupportedType Kind = "unsupported_type"
	KindParse           Kind = "parse"
)

// Sentinels for errors.Is. Matching ignores the phase.
var (
	ErrTypeNotFound    = &Error{Kind: KindTypeNotFound}
	ErrUnsupportedType = &Error{Kind: KindUnsupportedType}
	ErrParse           = &Error{Kind: KindParse}
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause       error
	Phase       Phase
	Kind        Kind
	Type        string
	Detail      string
	Path        []string
	Suggestions []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(fmt.Sprintf("%q", e.Type))
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean ")
		for i, s := range e.Suggestions {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmt.Sprintf("%q", s))
		}
		b.WriteString("?)")
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target has the same kind as this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Type sets the offending type name
func (b *Builder) Type(name string) *Builder {
	b.err.Type = name
	return b
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Suggest sets the "did you mean" candidates
func (b *Builder) Suggest(names ...string) *Builder {
	b.err.Suggestions = names
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// TypeNotFound creates a missing-type error for the extraction phase
func TypeNotFound(name string, suggestions ...string) *Error {
	return &Error{
		Phase:       PhaseExtract,
		Kind:        KindTypeNotFound,
		Type:        name,
		Suggestions: suggestions,
	}
}

// Unsupported creates an unsupported-type error for the field at path
func Unsupported(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseExtract,
		Kind:   KindUnsupportedType,
		Path:   path,
		Detail: detail,
	}
}
