// Package atomicops provides the minimal atomic read-modify-write
// primitives for ARM that a higher-level atomic toolkit is built on:
// load, store, swap, compare-and-swap and fetch-and-add on 32-bit and
// 64-bit cells, with sequentially consistent, acquire and release
// ordering.
//
// Two backends implement the same Primitives interface:
//
//   - Intrinsics uses the toolchain's sync/atomic intrinsics. It is the
//     default.
//   - Exclusive runs load-exclusive/store-exclusive retry loops bracketed
//     by explicit barriers, over a Monitor supplying the instructions.
//     Build with the `atomicops_exclusive` tag to select it.
//
// The choice is made once at build time; the functions of this package
// forward to it without any run-time dispatch. Ops derives the rest of
// the operation set (increments, unsigned and pointer views, ordering
// variants) from either backend.
//
// Cells must be naturally aligned and must only be accessed through this
// package. A cell passed to the operations escapes to the heap, where
// Int64 is 8-byte aligned on every target; a non-escaping local on a
// 32-bit stack carries only 4-byte alignment.
//
// No operation fails or blocks; retry loops spin until they succeed.
package atomicops

import (
	"golang.org/x/sys/cpu"
)

var ops Ops[defaultBackend]

// Default returns the derived operation set over the build's backend.
func Default() Ops[defaultBackend] {
	return ops
}

// NewHostExclusive returns the Exclusive backend over the monitor for
// the build target, whichever backend the package functions use.
func NewHostExclusive() Exclusive[hostMonitor] {
	return Exclusive[hostMonitor]{}
}

// Info describes the backend compiled into the package functions.
type Info struct {
	Backend       string  `json:"backend"`
	Monitor       string  `json:"monitor"`
	BackoffSpins  int     `json:"backoff_spins"`
	CacheLineSize uintptr `json:"cache_line_size"`

	// ARMHasLPAE reports large physical address extension support, on
	// which LDRD/STRD are single-copy atomic as well.
	ARMHasLPAE bool `json:"arm_has_lpae"`
}

// Backend returns the build's backend configuration.
func Backend() Info {
	return Info{
		Backend:       backendName,
		Monitor:       monitorName,
		BackoffSpins:  backoffSpins,
		CacheLineSize: CacheLineSize,
		ARMHasLPAE:    cpu.ARM.HasLPAE,
	}
}

// *** atomic functions for Int ***

// GetInt returns the value of c.
func GetInt(c *Int) int32 { return ops.GetInt(c) }

// GetIntAcquire returns the value of c with acquire ordering.
func GetIntAcquire(c *Int) int32 { return ops.GetIntAcquire(c) }

// SetInt sets c to v.
func SetInt(c *Int, v int32) { ops.SetInt(c, v) }

// SetIntRelease sets c to v with release ordering.
func SetIntRelease(c *Int, v int32) { ops.SetIntRelease(c, v) }

// SwapInt sets c to v and returns the previous value.
func SwapInt(c *Int, v int32) int32 { return ops.SwapInt(c, v) }

// TestAndSwapInt sets c to swap if it holds cmp, and returns the value c
// held at the attempt.
func TestAndSwapInt(c *Int, cmp, swap int32) int32 { return ops.TestAndSwapInt(c, cmp, swap) }

// CompareAndSwapInt reports whether c held cmp and was set to swap.
func CompareAndSwapInt(c *Int, cmp, swap int32) bool { return ops.CompareAndSwapInt(c, cmp, swap) }

// AddIntNv adds delta to c and returns the new value.
func AddIntNv(c *Int, delta int32) int32 { return ops.AddIntNv(c, delta) }

// IncrementIntNv adds 1 to c and returns the new value.
func IncrementIntNv(c *Int) int32 { return ops.IncrementIntNv(c) }

// DecrementIntNv subtracts 1 from c and returns the new value.
func DecrementIntNv(c *Int) int32 { return ops.DecrementIntNv(c) }

// *** atomic functions for Int64 ***

// GetInt64 returns the value of c.
func GetInt64(c *Int64) int64 { return ops.GetInt64(c) }

// SetInt64 sets c to v.
func SetInt64(c *Int64, v int64) { ops.SetInt64(c, v) }

// SwapInt64 sets c to v and returns the previous value.
func SwapInt64(c *Int64, v int64) int64 { return ops.SwapInt64(c, v) }

// TestAndSwapInt64 sets c to swap if it holds cmp, and returns the value
// c held at the attempt.
func TestAndSwapInt64(c *Int64, cmp, swap int64) int64 {
	return ops.TestAndSwapInt64(c, cmp, swap)
}

// CompareAndSwapInt64 reports whether c held cmp and was set to swap.
func CompareAndSwapInt64(c *Int64, cmp, swap int64) bool {
	return ops.CompareAndSwapInt64(c, cmp, swap)
}

// AddInt64Nv adds delta to c and returns the new value.
func AddInt64Nv(c *Int64, delta int64) int64 { return ops.AddInt64Nv(c, delta) }

// IncrementInt64Nv adds 1 to c and returns the new value.
func IncrementInt64Nv(c *Int64) int64 { return ops.IncrementInt64Nv(c) }

// DecrementInt64Nv subtracts 1 from c and returns the new value.
func DecrementInt64Nv(c *Int64) int64 { return ops.DecrementInt64Nv(c) }

// *** atomic functions for Pointer ***

// GetPtr returns the address held by c.
func GetPtr(c *Pointer) uintptr { return ops.GetPtr(c) }

// GetPtrAcquire returns the address held by c with acquire ordering.
func GetPtrAcquire(c *Pointer) uintptr { return ops.GetPtrAcquire(c) }

// SetPtr sets c to v.
func SetPtr(c *Pointer, v uintptr) { ops.SetPtr(c, v) }

// SetPtrRelease sets c to v with release ordering.
func SetPtrRelease(c *Pointer, v uintptr) { ops.SetPtrRelease(c, v) }

// SwapPtr sets c to v and returns the previous address.
func SwapPtr(c *Pointer, v uintptr) uintptr { return ops.SwapPtr(c, v) }

// TestAndSwapPtr sets c to swap if it holds cmp, and returns the address
// c held at the attempt.
func TestAndSwapPtr(c *Pointer, cmp, swap uintptr) uintptr {
	return ops.TestAndSwapPtr(c, cmp, swap)
}
