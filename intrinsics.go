package atomicops

import (
	"sync/atomic"
)

// Intrinsics implements Primitives with the toolchain's atomic
// intrinsics from sync/atomic. This is the preferred backend: the
// compiler lowers each call to the best sequence for the target and can
// schedule code around it.
//
// sync/atomic only offers sequentially consistent operations, so the
// acquire and release variants use the sequentially consistent call,
// which is strictly stronger.
type Intrinsics struct{}

//go:nosplit
func (Intrinsics) GetInt(c *Int) int32 {
	return atomic.LoadInt32(c.raw())
}

//go:nosplit
func (Intrinsics) GetIntAcquire(c *Int) int32 {
	return atomic.LoadInt32(c.raw())
}

//go:nosplit
func (Intrinsics) SetInt(c *Int, v int32) {
	atomic.StoreInt32(c.raw(), v)
}

//go:nosplit
func (Intrinsics) SetIntRelease(c *Int, v int32) {
	atomic.StoreInt32(c.raw(), v)
}

//go:nosplit
func (Intrinsics) SwapInt(c *Int, v int32) int32 {
	return atomic.SwapInt32(c.raw(), v)
}

// TestAndSwapInt reports the observed value rather than a success flag.
// A failed CompareAndSwap means the cell changed between the load and the
// attempt, so the load is repeated until it either mismatches or the swap
// lands.
//
//go:nosplit
func (Intrinsics) TestAndSwapInt(c *Int, cmp, swap int32) int32 {
	addr := c.raw()
	for {
		prev := atomic.LoadInt32(addr)
		if prev != cmp {
			return prev
		}
		if atomic.CompareAndSwapInt32(addr, cmp, swap) {
			return cmp
		}
	}
}

//go:nosplit
func (Intrinsics) AddIntNv(c *Int, delta int32) int32 {
	return atomic.AddInt32(c.raw(), delta)
}

//go:nosplit
func (Intrinsics) GetInt64(c *Int64) int64 {
	return atomic.LoadInt64(c.raw())
}

//go:nosplit
func (Intrinsics) SetInt64(c *Int64, v int64) {
	atomic.StoreInt64(c.raw(), v)
}

//go:nosplit
func (Intrinsics) SwapInt64(c *Int64, v int64) int64 {
	return atomic.SwapInt64(c.raw(), v)
}

//go:nosplit
func (Intrinsics) TestAndSwapInt64(c *Int64, cmp, swap int64) int64 {
	addr := c.raw()
	for {
		prev := atomic.LoadInt64(addr)
		if prev != cmp {
			return prev
		}
		if atomic.CompareAndSwapInt64(addr, cmp, swap) {
			return cmp
		}
	}
}

//go:nosplit
func (Intrinsics) AddInt64Nv(c *Int64, delta int64) int64 {
	return atomic.AddInt64(c.raw(), delta)
}
