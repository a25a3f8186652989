package universe

import (
	"fmt"
	"strings"
)

// Data model names.
const (
	LP64  = "lp64"
	ILP32 = "ilp32"
	LLP64 = "llp64"
)

type scalarInfo struct {
	size  int64 // bytes
	align int64 // bytes
}

// dataModel holds scalar and pointer sizes for one ABI.
type dataModel struct {
	name    string
	pointer int64
	scalars map[string]scalarInfo
}

func newDataModel(name string) (*dataModel, error) {
	var long, pointer, longDouble, longDoubleAlign int64

	switch name {
	case LP64:
		long, pointer, longDouble, longDoubleAlign = 8, 8, 16, 16
	case ILP32:
		long, pointer, longDouble, longDoubleAlign = 4, 4, 12, 4
	case LLP64:
		long, pointer, longDouble, longDoubleAlign = 4, 8, 8, 8
	default:
		return nil, fmt.Errorf("unknown data model %q (want %s, %s or %s)", name, LP64, ILP32, LLP64)
	}

	same := func(n int64) scalarInfo { return scalarInfo{size: n, align: n} }

	// long long keeps 4-byte alignment on i386.
	longLong := same(8)
	if name == ILP32 {
		longLong = scalarInfo{size: 8, align: 4}
	}

	dm := &dataModel{
		name:    name,
		pointer: pointer,
		scalars: map[string]scalarInfo{
			"_Bool":                  same(1),
			"char":                   same(1),
			"signed char":            same(1),
			"unsigned char":          same(1),
			"short int":              same(2),
			"short unsigned int":     same(2),
			"int":                    same(4),
			"unsigned int":           same(4),
			"long int":               same(long),
			"long unsigned int":      same(long),
			"long long int":          longLong,
			"long long unsigned int": longLong,
			"float":                  same(4),
			"double":                 longLong,
			"long double":            {size: longDouble, align: longDoubleAlign},
			"int8_t":                 same(1),
			"uint8_t":                same(1),
			"int16_t":                same(2),
			"uint16_t":               same(2),
			"int32_t":                same(4),
			"uint32_t":               same(4),
			"int64_t":                longLong,
			"uint64_t":               longLong,
			"size_t":                 same(pointer),
			"ssize_t":                same(pointer),
			"ptrdiff_t":              same(pointer),
			"intptr_t":               same(pointer),
			"uintptr_t":              same(pointer),
		},
	}

	return dm, nil
}

// canonicalScalar normalizes a scalar spelling to GCC's canonical form.
func canonicalScalar(words []string) (string, error) {
	var signed, unsigned, short, long, char, integer int
	var other []string

	for _, w := range words {
		switch w {
		case "const", "volatile":
		case "signed":
			signed++
		case "unsigned":
			unsigned++
		case "short":
			short++
		case "long":
			long++
		case "char":
			char++
		case "int":
			integer++
		default:
			other = append(other, w)
		}
	}

	spelled := strings.Join(words, " ")
	if signed > 0 && unsigned > 0 {
		return "", fmt.Errorf("scalar %q is both signed and unsigned", spelled)
	}

	if len(other) > 0 {
		if len(other) == 1 && long == 1 && other[0] == "double" && signed+unsigned+short+char+integer == 0 {
			return "long double", nil
		}
		if len(other) == 1 && signed+unsigned+short+long+char+integer == 0 {
			switch other[0] {
			case "bool":
				return "_Bool", nil
			default:
				return other[0], nil
			}
		}
		return "", fmt.Errorf("unknown scalar %q", spelled)
	}

	switch {
	case char == 1 && short+long+integer == 0:
		if unsigned > 0 {
			return "unsigned char", nil
		}
		if signed > 0 {
			return "signed char", nil
		}
		return "char", nil
	case char > 0:
		return "", fmt.Errorf("unknown scalar %q", spelled)
	case short == 1 && long == 0:
		if unsigned > 0 {
			return "short unsigned int", nil
		}
		return "short int", nil
	case long == 2 && short == 0:
		if unsigned > 0 {
			return "long long unsigned int", nil
		}
		return "long long int", nil
	case long == 1 && short == 0:
		if unsigned > 0 {
			return "long unsigned int", nil
		}
		return "long int", nil
	case short+long == 0 && integer <= 1 && (integer+signed+unsigned) > 0:
		if unsigned > 0 {
			return "unsigned int", nil
		}
		return "int", nil
	default:
		return "", fmt.Errorf("unknown scalar %q", spelled)
	}
}
