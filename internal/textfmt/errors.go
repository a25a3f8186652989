package textfmt

import (
	"fmt"

	lerrors "struct-layout/internal/errors"
)

// ParseError reports malformed layout text with its location.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Unwrap returns the parse-phase form of e, which matches errors.ErrParse.
func (e *ParseError) Unwrap() error {
	return lerrors.New(lerrors.PhaseParse, lerrors.KindParse).
		Detail("%s", e.Error()).
		Build()
}

func errorAt(pos Position, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}
