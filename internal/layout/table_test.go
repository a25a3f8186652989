package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var intType = Basic{Bits: 32, Name: "int"}

func TestAnonymousFieldName(t *testing.T) {
	assert.Equal(t, "(anonymous union)", AnonymousFieldName(KindUnion, 1, 1))
	assert.Equal(t, "(anonymous struct)", AnonymousFieldName(KindStruct, 1, 1))
	assert.Equal(t, "(anonymous union 1)", AnonymousFieldName(KindUnion, 1, 2))
	assert.Equal(t, "(anonymous struct 2)", AnonymousFieldName(KindStruct, 2, 2))
}

func TestDeclaration_AddAndGet(t *testing.T) {
	d, err := NewDeclaration(
		Field{Name: "y", Offset: 0, Type: intType},
		Field{Name: "z", Offset: 32, Type: Basic{Bits: 8, Name: "char"}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"y", "z"}, d.Names())

	z, ok := d.Get("z")
	require.True(t, ok)
	assert.Equal(t, int64(32), z.Offset)

	_, ok = d.Get("missing")
	assert.False(t, ok)

	err = d.Add(Field{Name: "y", Type: intType})
	assert.ErrorContains(t, err, "duplicate field")

	err = d.Add(Field{Name: "nil"})
	assert.ErrorContains(t, err, "no type")
}

func TestDeclaration_EqualIgnoresOrder(t *testing.T) {
	a := MustDeclaration(Field{Name: "x", Offset: 0, Type: intType}, Field{Name: "y", Offset: 32, Type: intType})
	b := MustDeclaration(Field{Name: "y", Offset: 32, Type: intType}, Field{Name: "x", Offset: 0, Type: intType})
	c := MustDeclaration(Field{Name: "x", Offset: 0, Type: intType}, Field{Name: "y", Offset: 64, Type: intType})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestTable_EqualAndNames(t *testing.T) {
	t1 := NewTable("b")
	t1.Set("b", MustDeclaration(Field{Name: "a", Type: Struct{Bits: 32, Name: "a"}}))
	t1.Set("a", MustDeclaration(Field{Name: "x", Type: intType}))

	t2 := NewTable("")
	t2.Set("a", MustDeclaration(Field{Name: "x", Type: intType}))
	t2.Set("b", MustDeclaration(Field{Name: "a", Type: Struct{Bits: 32, Name: "a"}}))

	assert.Equal(t, []string{"a", "b"}, t1.Names())
	assert.True(t, t1.Equal(t2), "root does not take part in equality")

	t2.Set("c", MustDeclaration())
	assert.False(t, t1.Equal(t2))
}

func TestTable_Dependencies(t *testing.T) {
	tbl := NewTable("c")
	tbl.Set("c", MustDeclaration(
		Field{Name: "a", Type: Struct{Bits: 32, Name: "a"}},
		Field{Name: "arr", Offset: 32, Type: Array{Bits: 64, Count: 2, Elem: Union{Bits: 32, Name: "u"}}},
		Field{Name: "p", Offset: 128, Type: Pointer{Bits: 64, Pointee: Struct{Bits: 32, Name: "z"}}},
		Field{Name: AnonymousStruct, Offset: 192, Type: Struct{Bits: 32}},
		Field{Name: "a2", Offset: 224, Type: Struct{Bits: 32, Name: "a"}},
	))

	assert.Equal(t, []string{"a", "u"}, tbl.Dependencies("c"))
	assert.Nil(t, tbl.Dependencies("missing"))
}

func TestTable_Validate(t *testing.T) {
	tbl := NewTable("node")
	tbl.Set("node", MustDeclaration(
		Field{Name: "next", Type: Pointer{Bits: 64, Pointee: Struct{Bits: 64, Name: "node"}}},
		Field{Name: "other", Offset: 64, Type: Pointer{Bits: 64, Pointee: Struct{Bits: 0, Name: "opaque"}}},
	))
	require.NoError(t, tbl.Validate(), "pointer references are exempt from closure")

	tbl.Set("holder", MustDeclaration(Field{Name: "m", Type: Struct{Bits: 32, Name: "missing"}}))
	err := tbl.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holder.m embeds undeclared struct missing")

	bad := NewTable("x")
	bad.Set("", MustDeclaration())
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anonymous composite declared")
	assert.Contains(t, err.Error(), `root "x" not declared`)
}
