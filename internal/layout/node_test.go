package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Basic", KindBasic.String())
	assert.Equal(t, "Void", KindVoid.String())
	assert.Equal(t, "Pointer", KindPointer.String())
	assert.Equal(t, "Array", KindArray.String())
	assert.Equal(t, "Struct", KindStruct.String())
	assert.Equal(t, "Union", KindUnion.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestNode_Equality(t *testing.T) {
	a := Pointer{Bits: 64, Pointee: Pointer{Bits: 64, Pointee: Basic{Bits: 32, Name: "int"}}}
	b := Pointer{Bits: 64, Pointee: Pointer{Bits: 64, Pointee: Basic{Bits: 32, Name: "int"}}}
	c := Pointer{Bits: 64, Pointee: Pointer{Bits: 64, Pointee: Basic{Bits: 32, Name: "unsigned int"}}}

	assert.True(t, Node(a) == Node(b))
	assert.False(t, Node(a) == Node(c))
	assert.NotEqual(t, Node(Struct{Bits: 32, Name: "a"}), Node(Union{Bits: 32, Name: "a"}))
}

func TestNode_String(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Basic{Bits: 32, Name: "int"}, "int"},
		{Void{}, "void"},
		{Pointer{Bits: 64, Pointee: Void{}}, "void *"},
		{Pointer{Bits: 64, Pointee: Pointer{Bits: 64, Pointee: Void{}}}, "void **"},
		{Array{Bits: 160, Count: 5, Elem: Basic{Bits: 32, Name: "int"}}, "int[5]"},
		{Array{Bits: 192, Count: 2, Elem: Array{Bits: 96, Count: 3, Elem: Basic{Bits: 32, Name: "int"}}}, "int[2][3]"},
		{Array{Bits: 128, Count: 2, Elem: Pointer{Bits: 64, Pointee: Void{}}}, "void *[2]"},
		{Struct{Bits: 32, Name: "a"}, "struct a"},
		{Union{Bits: 32, Name: ""}, "union <anonymous>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestNode_Size(t *testing.T) {
	assert.Equal(t, int64(0), Void{}.Size())
	assert.Equal(t, int64(64), Pointer{Bits: 64, Pointee: Void{}}.Size())
	assert.Equal(t, int64(160), Array{Bits: 160, Count: 5, Elem: Basic{Bits: 32, Name: "int"}}.Size())
}

func TestEmbedded(t *testing.T) {
	ref, ok := Embedded(Struct{Bits: 32, Name: "a"})
	assert.True(t, ok)
	assert.Equal(t, Node(Struct{Bits: 32, Name: "a"}), ref)

	nested := Array{Bits: 128, Count: 2, Elem: Array{Bits: 64, Count: 2, Elem: Union{Bits: 32, Name: "u"}}}
	ref, ok = Embedded(nested)
	assert.True(t, ok)
	assert.Equal(t, Node(Union{Bits: 32, Name: "u"}), ref)

	_, ok = Embedded(Pointer{Bits: 64, Pointee: Struct{Bits: 32, Name: "a"}})
	assert.False(t, ok)

	_, ok = Embedded(Basic{Bits: 8, Name: "char"})
	assert.False(t, ok)
}

func TestNewComposite(t *testing.T) {
	assert.Equal(t, Node(Struct{Bits: 8, Name: "s"}), NewComposite(KindStruct, 8, "s"))
	assert.Equal(t, Node(Union{Bits: 8, Name: "u"}), NewComposite(KindUnion, 8, "u"))
}
