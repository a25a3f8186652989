package universe

import (
	"fmt"
	"strconv"
	"strings"
)

type baseKind int

const (
	baseScalar baseKind = iota
	baseVoid
	baseStruct
	baseUnion
	baseFunc
	baseVector
)

// vectorBytes is the size and alignment of the "vector" base (an SSE-sized
// SIMD register).
const vectorBytes = 16

// typeExpr is a parsed type string.
type typeExpr struct {
	base     baseKind
	name     string // canonical scalar spelling or composite tag
	pointers int
	dims     []int64 // outermost first; 0 declares a flexible array
}

// parseType parses a type string such as "struct node*" or "int*[2][3]".
func parseType(s string) (typeExpr, error) {
	var e typeExpr

	cut := strings.IndexAny(s, "*[")
	if cut < 0 {
		cut = len(s)
	}

	words := strings.Fields(s[:cut])
	if len(words) == 0 {
		return e, fmt.Errorf("type %q: missing base type", s)
	}

	switch words[0] {
	case "void":
		if len(words) != 1 {
			return e, fmt.Errorf("type %q: unexpected words after void", s)
		}
		e.base = baseVoid
	case "struct", "union":
		if len(words) != 2 {
			return e, fmt.Errorf("type %q: want %q followed by a tag", s, words[0])
		}
		e.base = baseStruct
		if words[0] == "union" {
			e.base = baseUnion
		}
		e.name = words[1]
	case "func":
		e.base = baseFunc
	case "vector":
		e.base = baseVector
	default:
		name, err := canonicalScalar(words)
		if err != nil {
			return e, fmt.Errorf("type %q: %w", s, err)
		}
		e.base = baseScalar
		e.name = name
	}

	rest := strings.TrimSpace(s[cut:])
	for strings.HasPrefix(rest, "*") {
		e.pointers++
		rest = strings.TrimSpace(rest[1:])
	}

	for rest != "" {
		if !strings.HasPrefix(rest, "[") {
			return e, fmt.Errorf("type %q: unexpected %q", s, rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return e, fmt.Errorf("type %q: unterminated array dimension", s)
		}

		dim := strings.TrimSpace(rest[1:end])
		n := int64(0)
		if dim != "" {
			v, err := strconv.ParseInt(dim, 10, 64)
			if err != nil || v <= 0 {
				return e, fmt.Errorf("type %q: invalid array dimension %q", s, dim)
			}
			n = v
		} else if len(e.dims) > 0 {
			return e, fmt.Errorf("type %q: only the outermost dimension may be empty", s)
		}

		e.dims = append(e.dims, n)
		rest = strings.TrimSpace(rest[end+1:])
	}

	if e.base == baseFunc && e.pointers == 0 {
		return e, fmt.Errorf("type %q: function types are only allowed behind a pointer", s)
	}
	if e.base == baseVoid && e.pointers == 0 {
		return e, fmt.Errorf("type %q: void member", s)
	}

	return e, nil
}

// flexible reports whether the outermost dimension is empty.
func (e typeExpr) flexible() bool {
	return len(e.dims) > 0 && e.dims[0] == 0
}
