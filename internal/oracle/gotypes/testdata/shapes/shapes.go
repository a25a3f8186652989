// Package shapes is loaded by the gotypes tests.
package shapes

import (
	"sync"
	"unsafe"
)

type Port uint16

type Point struct {
	X, Y int32
}

type Header struct {
	Magic [4]byte
	Port  Port
	Flags uint8
	Size  uint64
}

type Polygon struct {
	Points [3]Point
	Next   *Polygon
	Data   unsafe.Pointer
	Meta   struct{ A, B int16 }
}

type Guarded struct {
	Mu    sync.Mutex
	Count int
}
