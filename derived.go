package atomicops

// Ops derives the full operation set from a Primitives backend. It holds
// no architecture knowledge: every method is written in terms of P only,
// so one implementation serves every backend.
//
// Ordering variants that P cannot express more cheaply (relaxed, acquire
// and release forms on 64-bit cells, acquire-release read-modify-writes)
// use the sequentially consistent primitive, which satisfies all of them.
type Ops[P Primitives] struct {
	p P
}

// NewOps returns the derived operation set over p.
func NewOps[P Primitives](p P) Ops[P] {
	return Ops[P]{p: p}
}

// Primitives returns the backend o is built on.
func (o Ops[P]) Primitives() P {
	return o.p
}

// fetchAddCAS adds delta to a cell given only its load and its
// value-returning compare-and-swap, and returns the new value. A
// compare-and-swap that observes anything but the value just used means
// another writer got in between; the observed value becomes the next
// attempt's base.
func fetchAddCAS[T int32 | int64](load func() T, cas func(cmp, swap T) T, delta T) T {
	prev := load()
	for {
		old := prev
		v := old + delta
		if prev = cas(old, v); prev == old {
			return v
		}
	}
}

// *** Int ***

// InitInt sets c to v before c is shared.
func (o Ops[P]) InitInt(c *Int, v int32) {
	o.p.SetInt(c, v)
}

// GetInt returns the value of c.
func (o Ops[P]) GetInt(c *Int) int32 { return o.p.GetInt(c) }

// GetIntAcquire returns the value of c with acquire ordering.
func (o Ops[P]) GetIntAcquire(c *Int) int32 { return o.p.GetIntAcquire(c) }

// GetIntRelaxed forwards to the sequentially consistent GetInt.
func (o Ops[P]) GetIntRelaxed(c *Int) int32 { return o.p.GetInt(c) }

// SetInt sets c to v.
func (o Ops[P]) SetInt(c *Int, v int32) { o.p.SetInt(c, v) }

// SetIntRelease sets c to v with release ordering.
func (o Ops[P]) SetIntRelease(c *Int, v int32) { o.p.SetIntRelease(c, v) }

// SetIntRelaxed forwards to the sequentially consistent SetInt.
func (o Ops[P]) SetIntRelaxed(c *Int, v int32) { o.p.SetInt(c, v) }

// SwapInt sets c to v and returns the previous value.
func (o Ops[P]) SwapInt(c *Int, v int32) int32 { return o.p.SwapInt(c, v) }

// SwapIntAcqRel forwards to the sequentially consistent SwapInt.
func (o Ops[P]) SwapIntAcqRel(c *Int, v int32) int32 { return o.p.SwapInt(c, v) }

// TestAndSwapInt sets c to swap if it holds cmp, and returns the value c
// held at the attempt.
func (o Ops[P]) TestAndSwapInt(c *Int, cmp, swap int32) int32 {
	return o.p.TestAndSwapInt(c, cmp, swap)
}

// TestAndSwapIntAcqRel forwards to the sequentially consistent TestAndSwapInt.
func (o Ops[P]) TestAndSwapIntAcqRel(c *Int, cmp, swap int32) int32 {
	return o.p.TestAndSwapInt(c, cmp, swap)
}

// CompareAndSwapInt reports whether c held cmp and was set to swap.
func (o Ops[P]) CompareAndSwapInt(c *Int, cmp, swap int32) bool {
	return o.p.TestAndSwapInt(c, cmp, swap) == cmp
}

// AddInt adds delta to c.
func (o Ops[P]) AddInt(c *Int, delta int32) { o.p.AddIntNv(c, delta) }

// AddIntNv adds delta to c and returns the new value.
func (o Ops[P]) AddIntNv(c *Int, delta int32) int32 { return o.p.AddIntNv(c, delta) }

// AddIntNvRelaxed forwards to the sequentially consistent AddIntNv.
func (o Ops[P]) AddIntNvRelaxed(c *Int, delta int32) int32 { return o.p.AddIntNv(c, delta) }

// AddIntNvAcquire forwards to the sequentially consistent AddIntNv.
func (o Ops[P]) AddIntNvAcquire(c *Int, delta int32) int32 { return o.p.AddIntNv(c, delta) }

// AddIntNvRelease forwards to the sequentially consistent AddIntNv.
func (o Ops[P]) AddIntNvRelease(c *Int, delta int32) int32 { return o.p.AddIntNv(c, delta) }

// IncrementInt adds 1 to c.
func (o Ops[P]) IncrementInt(c *Int) { o.p.AddIntNv(c, 1) }

// DecrementInt subtracts 1 from c.
func (o Ops[P]) DecrementInt(c *Int) { o.p.AddIntNv(c, -1) }

// IncrementIntNv adds 1 to c and returns the new value.
func (o Ops[P]) IncrementIntNv(c *Int) int32 { return o.p.AddIntNv(c, 1) }

// DecrementIntNv subtracts 1 from c and returns the new value.
func (o Ops[P]) DecrementIntNv(c *Int) int32 { return o.p.AddIntNv(c, -1) }

// *** Int64 ***

// InitInt64 sets c to v before c is shared.
func (o Ops[P]) InitInt64(c *Int64, v int64) {
	o.p.SetInt64(c, v)
}

// GetInt64 returns the value of c.
func (o Ops[P]) GetInt64(c *Int64) int64 { return o.p.GetInt64(c) }

// GetInt64Acquire forwards to the sequentially consistent GetInt64.
func (o Ops[P]) GetInt64Acquire(c *Int64) int64 { return o.p.GetInt64(c) }

// GetInt64Relaxed forwards to the sequentially consistent GetInt64.
func (o Ops[P]) GetInt64Relaxed(c *Int64) int64 { return o.p.GetInt64(c) }

// SetInt64 sets c to v.
func (o Ops[P]) SetInt64(c *Int64, v int64) { o.p.SetInt64(c, v) }

// SetInt64Release forwards to the sequentially consistent SetInt64.
func (o Ops[P]) SetInt64Release(c *Int64, v int64) { o.p.SetInt64(c, v) }

// SetInt64Relaxed forwards to the sequentially consistent SetInt64.
func (o Ops[P]) SetInt64Relaxed(c *Int64, v int64) { o.p.SetInt64(c, v) }

// SwapInt64 sets c to v and returns the previous value.
func (o Ops[P]) SwapInt64(c *Int64, v int64) int64 { return o.p.SwapInt64(c, v) }

// SwapInt64AcqRel forwards to the sequentially consistent SwapInt64.
func (o Ops[P]) SwapInt64AcqRel(c *Int64, v int64) int64 { return o.p.SwapInt64(c, v) }

// TestAndSwapInt64 sets c to swap if it holds cmp, and returns the value
// c held at the attempt.
func (o Ops[P]) TestAndSwapInt64(c *Int64, cmp, swap int64) int64 {
	return o.p.TestAndSwapInt64(c, cmp, swap)
}

// TestAndSwapInt64AcqRel forwards to the sequentially consistent TestAndSwapInt64.
func (o Ops[P]) TestAndSwapInt64AcqRel(c *Int64, cmp, swap int64) int64 {
	return o.p.TestAndSwapInt64(c, cmp, swap)
}

// CompareAndSwapInt64 reports whether c held cmp and was set to swap.
func (o Ops[P]) CompareAndSwapInt64(c *Int64, cmp, swap int64) bool {
	return o.p.TestAndSwapInt64(c, cmp, swap) == cmp
}

// AddInt64 adds delta to c.
func (o Ops[P]) AddInt64(c *Int64, delta int64) { o.p.AddInt64Nv(c, delta) }

// AddInt64Nv adds delta to c and returns the new value.
func (o Ops[P]) AddInt64Nv(c *Int64, delta int64) int64 { return o.p.AddInt64Nv(c, delta) }

// AddInt64NvRelaxed forwards to the sequentially consistent AddInt64Nv.
func (o Ops[P]) AddInt64NvRelaxed(c *Int64, delta int64) int64 { return o.p.AddInt64Nv(c, delta) }

// AddInt64NvAcquire forwards to the sequentially consistent AddInt64Nv.
func (o Ops[P]) AddInt64NvAcquire(c *Int64, delta int64) int64 { return o.p.AddInt64Nv(c, delta) }

// AddInt64NvRelease forwards to the sequentially consistent AddInt64Nv.
func (o Ops[P]) AddInt64NvRelease(c *Int64, delta int64) int64 { return o.p.AddInt64Nv(c, delta) }

// IncrementInt64 adds 1 to c.
func (o Ops[P]) IncrementInt64(c *Int64) { o.p.AddInt64Nv(c, 1) }

// DecrementInt64 subtracts 1 from c.
func (o Ops[P]) DecrementInt64(c *Int64) { o.p.AddInt64Nv(c, -1) }

// IncrementInt64Nv adds 1 to c and returns the new value.
func (o Ops[P]) IncrementInt64Nv(c *Int64) int64 { return o.p.AddInt64Nv(c, 1) }

// DecrementInt64Nv subtracts 1 from c and returns the new value.
func (o Ops[P]) DecrementInt64Nv(c *Int64) int64 { return o.p.AddInt64Nv(c, -1) }

// *** Uint: unsigned view of the Int cell ***

func (o Ops[P]) GetUint(c *Int) uint32 { return uint32(o.p.GetInt(c)) }

// GetUintAcquire is GetUint with acquire ordering.
func (o Ops[P]) GetUintAcquire(c *Int) uint32 { return uint32(o.p.GetIntAcquire(c)) }
func (o Ops[P]) SetUint(c *Int, v uint32) { o.p.SetInt(c, int32(v)) }

// SetUintRelease is SetUint with release ordering.
func (o Ops[P]) SetUintRelease(c *Int, v uint32) {
	o.p.SetIntRelease(c, int32(v))
}
func (o Ops[P]) SwapUint(c *Int, v uint32) uint32 { return uint32(o.p.SwapInt(c, int32(v))) }

// TestAndSwapUint sets c to swap if it holds cmp, and returns the value
// c held at the attempt.
func (o Ops[P]) TestAndSwapUint(c *Int, cmp, swap uint32) uint32 {
	return uint32(o.p.TestAndSwapInt(c, int32(cmp), int32(swap)))
}

// AddUintNv adds delta to c and returns the new value, wrapping modulo
// 2^32.
func (o Ops[P]) AddUintNv(c *Int, delta uint32) uint32 {
	return uint32(o.p.AddIntNv(c, int32(delta)))
}

// SubtractUintNv subtracts delta from c and returns the new value,
// wrapping modulo 2^32.
func (o Ops[P]) SubtractUintNv(c *Int, delta uint32) uint32 {
	return uint32(o.p.AddIntNv(c, -int32(delta)))
}

func (o Ops[P]) IncrementUintNv(c *Int) uint32 { return uint32(o.p.AddIntNv(c, 1)) }
func (o Ops[P]) DecrementUintNv(c *Int) uint32 { return uint32(o.p.AddIntNv(c, -1)) }

// *** Uint64: unsigned view of the Int64 cell ***

func (o Ops[P]) GetUint64(c *Int64) uint64 { return uint64(o.p.GetInt64(c)) }
func (o Ops[P]) SetUint64(c *Int64, v uint64) { o.p.SetInt64(c, int64(v)) }

func (o Ops[P]) SwapUint64(c *Int64, v uint64) uint64 {
	return uint64(o.p.SwapInt64(c, int64(v)))
}

func (o Ops[P]) TestAndSwapUint64(c *Int64, cmp, swap uint64) uint64 {
	return uint64(o.p.TestAndSwapInt64(c, int64(cmp), int64(swap)))
}

// AddUint64Nv adds delta to c and returns the new value, wrapping modulo
// 2^64.
func (o Ops[P]) AddUint64Nv(c *Int64, delta uint64) uint64 {
	return uint64(o.p.AddInt64Nv(c, int64(delta)))
}

// SubtractUint64Nv subtracts delta from c and returns the new value,
// wrapping modulo 2^64.
func (o Ops[P]) SubtractUint64Nv(c *Int64, delta uint64) uint64 {
	return uint64(o.p.AddInt64Nv(c, -int64(delta)))
}

func (o Ops[P]) IncrementUint64Nv(c *Int64) uint64 { return uint64(o.p.AddInt64Nv(c, 1)) }
func (o Ops[P]) DecrementUint64Nv(c *Int64) uint64 { return uint64(o.p.AddInt64Nv(c, -1)) }

// *** Pointer ***
//
// The width test is on a constant, so each method compiles down to the
// Int or the Int64 operation only.

// InitPointer sets c to v before c is shared.
func (o Ops[P]) InitPointer(c *Pointer, v uintptr) {
	o.SetPtr(c, v)
}

// GetPtr returns the address held by c.
func (o Ops[P]) GetPtr(c *Pointer) uintptr {
	if ptrSize == 4 {
		return uintptr(uint32(o.p.GetInt(c.asInt())))
	}
	return uintptr(o.p.GetInt64(c.asInt64()))
}

// GetPtrAcquire returns the address held by c with acquire ordering.
func (o Ops[P]) GetPtrAcquire(c *Pointer) uintptr {
	if ptrSize == 4 {
		return uintptr(uint32(o.p.GetIntAcquire(c.asInt())))
	}
	return uintptr(o.p.GetInt64(c.asInt64()))
}

// GetPtrRelaxed forwards to the sequentially consistent GetPtr.
func (o Ops[P]) GetPtrRelaxed(c *Pointer) uintptr {
	return o.GetPtr(c)
}

// SetPtr sets c to v.
func (o Ops[P]) SetPtr(c *Pointer, v uintptr) {
	if ptrSize == 4 {
		o.p.SetInt(c.asInt(), int32(v))
		return
	}
	o.p.SetInt64(c.asInt64(), int64(v))
}

// SetPtrRelease sets c to v with release ordering.
func (o Ops[P]) SetPtrRelease(c *Pointer, v uintptr) {
	if ptrSize == 4 {
		o.p.SetIntRelease(c.asInt(), int32(v))
		return
	}
	o.p.SetInt64(c.asInt64(), int64(v))
}

// SetPtrRelaxed forwards to the sequentially consistent SetPtr.
func (o Ops[P]) SetPtrRelaxed(c *Pointer, v uintptr) {
	o.SetPtr(c, v)
}

// SwapPtr sets c to v and returns the previous address.
func (o Ops[P]) SwapPtr(c *Pointer, v uintptr) uintptr {
	if ptrSize == 4 {
		return uintptr(uint32(o.p.SwapInt(c.asInt(), int32(v))))
	}
	return uintptr(o.p.SwapInt64(c.asInt64(), int64(v)))
}

// SwapPtrAcqRel forwards to the sequentially consistent SwapPtr.
func (o Ops[P]) SwapPtrAcqRel(c *Pointer, v uintptr) uintptr {
	return o.SwapPtr(c, v)
}

// TestAndSwapPtr sets c to swap if it holds cmp, and returns the address
// c held at the attempt.
func (o Ops[P]) TestAndSwapPtr(c *Pointer, cmp, swap uintptr) uintptr {
	if ptrSize == 4 {
		return uintptr(uint32(o.p.TestAndSwapInt(c.asInt(), int32(cmp), int32(swap))))
	}
	return uintptr(o.p.TestAndSwapInt64(c.asInt64(), int64(cmp), int64(swap)))
}

// TestAndSwapPtrAcqRel forwards to the sequentially consistent TestAndSwapPtr.
func (o Ops[P]) TestAndSwapPtrAcqRel(c *Pointer, cmp, swap uintptr) uintptr {
	return o.TestAndSwapPtr(c, cmp, swap)
}

// CompareAndSwapPtr reports whether c held cmp and was set to swap.
func (o Ops[P]) CompareAndSwapPtr(c *Pointer, cmp, swap uintptr) bool {
	return o.TestAndSwapPtr(c, cmp, swap) == cmp
}
