package textfmt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lerrors "struct-layout/internal/errors"
	"struct-layout/internal/layout"
	"struct-layout/internal/oracle/universe"
	"struct-layout/internal/walker"
)

var (
	intType  = layout.Basic{Bits: 32, Name: "int"}
	charType = layout.Basic{Bits: 8, Name: "char"}
)

func table(root string, decls map[string][]layout.Field) *layout.Table {
	t := layout.NewTable(root)
	for name, fields := range decls {
		t.Set(name, layout.MustDeclaration(fields...))
	}
	return t
}

func polyTable() *layout.Table {
	return table("poly", map[string][]layout.Field{
		"point": {
			{Name: "x", Offset: 0, Type: intType},
			{Name: "y", Offset: 32, Type: intType},
		},
		"poly": {
			{Name: "pts", Offset: 0, Type: layout.Array{Bits: 384, Count: 6, Elem: layout.Struct{Bits: 64, Name: "point"}}},
			{Name: "next", Offset: 384, Type: layout.Pointer{Bits: 64, Pointee: layout.Struct{Bits: 448, Name: "poly"}}},
		},
	})
}

func TestMarshal(t *testing.T) {
	want := `point = {
	"x": (0, Basic(32, "int")),
	"y": (32, Basic(32, "int")),
}

poly = {
	"pts": (0, Array(384, 6, Struct(64, "point"))),
	"next": (384, Pointer(64, Struct(448, "poly"))),
}
`
	assert.Equal(t, want, string(Marshal(polyTable())))
}

func TestMarshal_Names(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"plain", "plain = {}\n"},
		{"_x9", "_x9 = {}\n"},
		{"struct foo", `"struct foo" = {}` + "\n"},
		{"pkg.T", `"pkg.T" = {}` + "\n"},
		{"9lives", `"9lives" = {}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Marshal(table("", map[string][]layout.Field{tt.name: nil}))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshal_AllConstructors(t *testing.T) {
	tbl := table("", map[string][]layout.Field{
		"s": {
			{Name: "(anonymous union)", Offset: 0, Type: layout.Union{Bits: 32, Name: ""}},
			{Name: "p", Offset: 64, Type: layout.Pointer{Bits: 64, Pointee: layout.Void{}}},
		},
	})

	want := `s = {
	"(anonymous union)": (0, Union(32, "")),
	"p": (64, Pointer(64, Void())),
}
`
	assert.Equal(t, want, string(Marshal(tbl)))
}

func TestMarshal_DependencyOrder(t *testing.T) {
	tbl := table("", map[string][]layout.Field{
		"alpha": {{Name: "z", Offset: 0, Type: layout.Array{Bits: 64, Count: 2, Elem: layout.Struct{Bits: 32, Name: "zeta"}}}},
		"beta":  {{Name: "a", Offset: 0, Type: layout.Struct{Bits: 64, Name: "alpha"}}},
		"gamma": {{Name: "p", Offset: 0, Type: layout.Pointer{Bits: 64, Pointee: layout.Struct{Bits: 64, Name: "beta"}}}},
		"zeta":  {{Name: "x", Offset: 0, Type: intType}},
	})

	got := order(tbl)
	require.Len(t, got, 4)

	index := func(name string) int {
		for i, n := range got {
			if n == name {
				return i
			}
		}
		t.Fatalf("%q missing from %v", name, got)
		return -1
	}
	assert.Less(t, index("zeta"), index("alpha"))
	assert.Less(t, index("alpha"), index("beta"))
}

func TestMarshal_CycleFallsBackToNames(t *testing.T) {
	tbl := table("", map[string][]layout.Field{
		"y": {{Name: "x", Offset: 0, Type: layout.Struct{Bits: 32, Name: "x"}}},
		"x": {{Name: "y", Offset: 0, Type: layout.Struct{Bits: 32, Name: "y"}}},
		"w": {{Name: "v", Offset: 0, Type: intType}},
	})

	assert.Equal(t, []string{"w", "x", "y"}, order(tbl))
}

func TestEncode_WriteError(t *testing.T) {
	err := Encode(failingWriter{}, polyTable())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestUnmarshal_Lenient(t *testing.T) {
	src := `
# generated by hand
"odd name" = {
  "a": (0, Basic(8, "char"),),   # trailing comma inside the entry
  "b": (8,
        Array(16, 2, Basic(8, "char"))),
}
plain={"p":(0,Pointer(64,Void(),),)}
empty = { }
`
	got, err := Unmarshal([]byte(src))
	require.NoError(t, err)

	want := table("", map[string][]layout.Field{
		"odd name": {
			{Name: "a", Offset: 0, Type: charType},
			{Name: "b", Offset: 8, Type: layout.Array{Bits: 16, Count: 2, Elem: charType}},
		},
		"plain": {{Name: "p", Offset: 0, Type: layout.Pointer{Bits: 64, Pointee: layout.Void{}}}},
		"empty": nil,
	})
	assert.True(t, want.Equal(got), spew.Sdump(got))
	assert.Equal(t, "", got.Root)

	d, _ := got.Get("odd name")
	assert.Equal(t, []string{"a", "b"}, d.Names())
}

func TestUnmarshal_Empty(t *testing.T) {
	got, err := Unmarshal([]byte("  # nothing here\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestUnmarshal_Escapes(t *testing.T) {
	got, err := Unmarshal([]byte(`"tab\there" = {"q\"uote": (0, Basic(8, "unsigned char"))}`))
	require.NoError(t, err)

	d, ok := got.Get("tab\there")
	require.True(t, ok)
	f, ok := d.Get(`q"uote`)
	require.True(t, ok)
	assert.Equal(t, layout.Basic{Bits: 8, Name: "unsigned char"}, f.Type)
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		column  int
		message string
	}{
		{"unknown constructor", `a = { "x": (0, Foo(1)) }`, 1, 16, `unknown constructor "Foo"`},
		{"wrong arity", `a = { "x": (0, Basic(32)) }`, 1, 16, "Basic takes 2 arguments, got 1"},
		{"void with arguments", `a = { "x": (0, Void(0)) }`, 1, 16, "Void takes 0 arguments, got 1"},
		{"wrong argument kind", `a = { "x": (0, Basic("int", 32)) }`, 1, 22, "argument 1 of Basic must be an integer"},
		{"string where type expected", `a = { "x": (0, Pointer(64, "int")) }`, 1, 28, "argument 2 of Pointer must be a type"},
		{"duplicate binding", "a = {}\n\na = {}", 3, 1, `duplicate binding "a"`},
		{"duplicate field", "a = {\n\t\"x\": (0, Void()),\n\t\"x\": (8, Void()),\n}", 3, 2, `duplicate field "x"`},
		{"unterminated string", `a = { "x: (0, Void()) }`, 1, 7, "unterminated string"},
		{"negative offset", `a = { "x": (-1, Void()) }`, 1, 13, "unexpected character '-'"},
		{"missing equals", `a { }`, 1, 3, "expected '=', found '{'"},
		{"numeric binding name", `1 = {}`, 1, 1, "expected binding name, found integer 1"},
		{"unclosed declaration", `a = { "x": (0, Void())`, 1, 23, "expected ',' or '}', found end of input"},
		{"bare field name", `a = { x: (0, Void()) }`, 1, 7, "expected string, found identifier x"},
		{"after comment", "# header\na = { \"x\": (0, Nope()) }", 2, 16, `unknown constructor "Nope"`},
		{"offset overflow", `a = { "x": (99999999999999999999, Void()) }`, 1, 13, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tt.input))
			assert.Nil(t, got)
			require.Error(t, err)

			assert.True(t, errors.Is(err, lerrors.ErrParse))

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			assert.Equal(t, Position{Line: tt.line, Column: tt.column}, pe.Pos, pe.Error())
			assert.Contains(t, pe.Message, tt.message)
		})
	}
}

func TestParseError_Format(t *testing.T) {
	err := errorAt(Position{Line: 4, Column: 2}, "unknown constructor %q", "Foo")
	assert.Equal(t, `unknown constructor "Foo" at 4:2`, err.Error())
}

func TestParseError_Phase(t *testing.T) {
	_, err := Unmarshal([]byte(`point = { "x": (0, Int(32)) }`))
	require.Error(t, err)

	var le *lerrors.Error
	require.True(t, errors.As(err, &le))
	assert.Equal(t, lerrors.PhaseParse, le.Phase)
	assert.Equal(t, lerrors.KindParse, le.Kind)
	assert.Equal(t, `[parse] parse: unknown constructor "Int" at 1:20`, le.Error())
}

func TestDecode(t *testing.T) {
	got, err := Decode(strings.NewReader(string(Marshal(polyTable()))))
	require.NoError(t, err)
	assert.True(t, polyTable().Equal(got))
}

func TestRoundTrip(t *testing.T) {
	tables := map[string]*layout.Table{
		"poly":  polyTable(),
		"empty": layout.NewTable(""),
		"odd names": table("", map[string][]layout.Field{
			"struct foo": {{Name: "(anonymous struct)", Offset: 0, Type: layout.Struct{Bits: 64, Name: ""}}},
			"ns::inner": {
				{Name: "(anonymous union 1)", Offset: 0, Type: layout.Union{Bits: 8, Name: ""}},
				{Name: "(anonymous union 2)", Offset: 8, Type: layout.Union{Bits: 8, Name: ""}},
				{Name: "naïve", Offset: 16, Type: layout.Basic{Bits: 16, Name: "short int"}},
			},
		}),
		"deep": table("", map[string][]layout.Field{
			"d": {
				{Name: "m", Offset: 0, Type: layout.Array{Bits: 384, Count: 2, Elem: layout.Array{Bits: 192, Count: 3, Elem: layout.Pointer{Bits: 32, Pointee: layout.Pointer{Bits: 32, Pointee: layout.Void{}}}}}},
				{Name: "flex", Offset: 384, Type: layout.Array{Bits: 0, Count: 0, Elem: charType}},
			},
		}),
	}

	for name, tbl := range tables {
		t.Run(name, func(t *testing.T) {
			text := Marshal(tbl)
			got, err := Unmarshal(text)
			require.NoError(t, err, string(text))
			assert.True(t, tbl.Equal(got), "text:\n%s\ngot: %s", text, spew.Sdump(got))
			assert.True(t, bytes.Equal(text, Marshal(got)), "re-encoding is not stable")
		})
	}
}

func TestRoundTrip_Extracted(t *testing.T) {
	u, err := universe.Parse([]byte(`
composites:
  - {kind: struct, name: point, fields: [{name: x, type: int}, {name: y, type: int}]}
  - kind: struct
    name: shape
    fields:
      - {name: pts, type: "struct point[4]"}
      - {name: next, type: "struct shape*"}
      - anonymous: {kind: union, fields: [{name: i, type: int}, {name: f, type: double}]}
      - {name: tag, type: "const char*"}
`))
	require.NoError(t, err)

	tbl, err := walker.Extract("shape", u)
	require.NoError(t, err)

	text := Marshal(tbl)
	assert.True(t, strings.HasPrefix(string(text), "point = {"), string(text))

	got, err := Unmarshal(text)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(got), "text:\n%s", text)

	got.Root = tbl.Root
	assert.NoError(t, got.Validate())
}
