package atomicops

import (
	"sync/atomic"
	"unsafe"
)

// Int is a 32-bit atomic cell. It must only be accessed through the
// functions of this package, and must not be copied after first use.
//
// The zero value holds 0.
type Int struct {
	_ noCopy
	v int32
}

// Int64 is a 64-bit atomic cell. On the heap and in globals it is 8-byte
// aligned on every target including 32-bit ARM, where no ordinary
// instruction reads or writes it atomically. The operations take its
// address, which moves it to the heap.
//
// The zero value holds 0.
type Int64 struct {
	_ noCopy
	_ [0]atomic.Int64
	v int64
}

// Pointer is a pointer-sized atomic cell holding an address. Its
// operations alias those of Int on 32-bit targets and of Int64 on 64-bit
// targets.
//
// The stored address is an integer as far as the garbage collector is
// concerned: a Pointer does not keep its referent alive.
type Pointer struct {
	_ noCopy
	v uintptr
}

// PaddedInt64 is an Int64 occupying a full cache line, for per-agent
// counters that would otherwise share a line.
type PaddedInt64 struct {
	Int64
	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(Int64{})%CacheLineSize) % CacheLineSize]byte
}

const ptrSize = unsafe.Sizeof(uintptr(0))

//go:nosplit
func (c *Int) raw() *int32 {
	return &c.v
}

//go:nosplit
func (c *Int64) raw() *int64 {
	return &c.v
}

// asInt and asInt64 reinterpret the pointer cell as the integer cell of
// the same width. Only the one matching ptrSize may be called.
//
//go:nosplit
func (c *Pointer) asInt() *Int {
	return (*Int)(unsafe.Pointer(&c.v))
}

//go:nosplit
func (c *Pointer) asInt64() *Int64 {
	return (*Int64)(unsafe.Pointer(&c.v))
}

// noCopy may be embedded into structs which must not be copied
// after the first use. See https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
