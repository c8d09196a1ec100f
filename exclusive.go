package atomicops

// Monitor is the instruction set the Exclusive backend is written
// against: plain single-copy-atomic word access, the load-exclusive /
// store-exclusive pair for both widths, and the two barriers. An
// architecture supplies its own Monitor; the retry loops stay the same.
//
// StoreExclusive* receive the value returned by the paired
// LoadExclusive* and succeed only if the cell still holds it, so a
// monitor may implement the pair as a read followed by a
// compare-and-swap. A store-exclusive may fail spuriously, callers
// always retry. Hardware monitors should also implement SequenceMonitor.
type Monitor interface {
	LoadWord32(addr *int32) int32
	StoreWord32(addr *int32, v int32)

	LoadExclusive32(addr *int32) int32
	StoreExclusive32(addr *int32, old, v int32) bool
	LoadExclusive64(addr *int64) int64
	StoreExclusive64(addr *int64, old, v int64) bool

	// Barrier is a full two-way data memory barrier.
	Barrier()
	// InstrBarrier flushes the pipeline so that no later instruction
	// executes ahead of the preceding exclusive sequence.
	InstrBarrier()
}

// SequenceMonitor is a Monitor that can also run a whole exclusive
// read-modify-write in one call, retrying internally until the
// exclusive store succeeds. Each method returns the value the final
// exclusive load observed.
//
// Exclusive uses these methods whenever its monitor provides them. A
// hardware monitor must: between its load-exclusive and store-exclusive
// no other memory access may be made, and a sequence driven from Go
// code cannot promise that.
type SequenceMonitor interface {
	Monitor

	SwapExclusive32(addr *int32, v int32) int32
	CompareAndSwapExclusive32(addr *int32, cmp, v int32) int32
	AddExclusive32(addr *int32, delta int32) int32
	SwapExclusive64(addr *int64, v int64) int64
	CompareAndSwapExclusive64(addr *int64, cmp, v int64) int64
}

// Exclusive implements Primitives with load-exclusive/store-exclusive
// retry loops bracketed by explicit barriers. It is the fallback for
// toolchains whose intrinsics lack the required ordering granularity.
//
// The loops are lock-free but not wait-free: under sustained contention
// a single caller may retry without bound.
type Exclusive[M Monitor] struct {
	m M
}

// NewExclusive returns an Exclusive backend driving m.
func NewExclusive[M Monitor](m M) Exclusive[M] {
	return Exclusive[M]{m: m}
}

func (e Exclusive[M]) GetInt(c *Int) int32 {
	v := e.m.LoadWord32(c.raw())
	e.m.Barrier()
	return v
}

// GetIntAcquire has no cheaper sequence than the full barrier.
func (e Exclusive[M]) GetIntAcquire(c *Int) int32 {
	return e.GetInt(c)
}

func (e Exclusive[M]) SetInt(c *Int, v int32) {
	e.m.Barrier()
	e.m.StoreWord32(c.raw(), v)
	e.m.Barrier()
}

func (e Exclusive[M]) SetIntRelease(c *Int, v int32) {
	e.m.Barrier()
	e.SetInt(c, v)
}

func (e Exclusive[M]) SwapInt(c *Int, v int32) int32 {
	e.m.Barrier()
	old := e.swap32(c.raw(), v)
	e.m.InstrBarrier()
	return old
}

func (e Exclusive[M]) TestAndSwapInt(c *Int, cmp, swap int32) int32 {
	e.m.Barrier()
	old := e.cas32(c.raw(), cmp, swap)
	e.m.Barrier()
	return old
}

func (e Exclusive[M]) AddIntNv(c *Int, delta int32) int32 {
	e.m.Barrier()
	old := e.add32(c.raw(), delta)
	e.m.Barrier()
	return old + delta
}

// GetInt64 goes through the exclusive load: on a 32-bit core it is the
// only read that observes both halves of the cell together.
func (e Exclusive[M]) GetInt64(c *Int64) int64 {
	v := e.m.LoadExclusive64(c.raw())
	e.m.Barrier()
	return v
}

// SetInt64 is a swap whose result is discarded.
func (e Exclusive[M]) SetInt64(c *Int64, v int64) {
	e.SwapInt64(c, v)
}

func (e Exclusive[M]) SwapInt64(c *Int64, v int64) int64 {
	e.m.Barrier()
	old := e.swap64(c.raw(), v)
	e.m.InstrBarrier()
	return old
}

func (e Exclusive[M]) TestAndSwapInt64(c *Int64, cmp, swap int64) int64 {
	e.m.Barrier()
	old := e.cas64(c.raw(), cmp, swap)
	e.m.InstrBarrier()
	return old
}

// AddInt64Nv has no single exclusive sequence here; it is composed from
// GetInt64 and TestAndSwapInt64.
func (e Exclusive[M]) AddInt64Nv(c *Int64, delta int64) int64 {
	return fetchAddCAS(
		func() int64 { return e.GetInt64(c) },
		func(cmp, swap int64) int64 { return e.TestAndSwapInt64(c, cmp, swap) },
		delta,
	)
}

func (e Exclusive[M]) swap32(addr *int32, v int32) int32 {
	if s, ok := any(e.m).(SequenceMonitor); ok {
		return s.SwapExclusive32(addr, v)
	}
	return e.update32(addr, func(int32) (int32, bool) {
		return v, true
	})
}

func (e Exclusive[M]) cas32(addr *int32, cmp, v int32) int32 {
	if s, ok := any(e.m).(SequenceMonitor); ok {
		return s.CompareAndSwapExclusive32(addr, cmp, v)
	}
	return e.update32(addr, func(old int32) (int32, bool) {
		return v, old == cmp
	})
}

// add32 returns the value before the addition.
func (e Exclusive[M]) add32(addr *int32, delta int32) int32 {
	if s, ok := any(e.m).(SequenceMonitor); ok {
		return s.AddExclusive32(addr, delta)
	}
	return e.update32(addr, func(old int32) (int32, bool) {
		return old + delta, true
	})
}

func (e Exclusive[M]) swap64(addr *int64, v int64) int64 {
	if s, ok := any(e.m).(SequenceMonitor); ok {
		return s.SwapExclusive64(addr, v)
	}
	return e.update64(addr, func(int64) (int64, bool) {
		return v, true
	})
}

// cas64 stores only when both halves of the loaded value match cmp.
func (e Exclusive[M]) cas64(addr *int64, cmp, v int64) int64 {
	if s, ok := any(e.m).(SequenceMonitor); ok {
		return s.CompareAndSwapExclusive64(addr, cmp, v)
	}
	return e.update64(addr, func(old int64) (int64, bool) {
		return v, old == cmp
	})
}

func (e Exclusive[M]) update32(addr *int32, next func(old int32) (int32, bool)) int32 {
	return exclusiveUpdate(
		func() int32 { return e.m.LoadExclusive32(addr) },
		func(old, v int32) bool { return e.m.StoreExclusive32(addr, old, v) },
		next,
	)
}

func (e Exclusive[M]) update64(addr *int64, next func(old int64) (int64, bool)) int64 {
	return exclusiveUpdate(
		func() int64 { return e.m.LoadExclusive64(addr) },
		func(old, v int64) bool { return e.m.StoreExclusive64(addr, old, v) },
		next,
	)
}

// exclusiveState is a step of the load-exclusive/store-exclusive loop.
type exclusiveState uint8

const (
	stateLoad    exclusiveState = iota // load-exclusive the cell
	stateAttempt                       // compute and try the exclusive store
	stateCheck                         // inspect the store status
	stateRetry                         // reservation lost, go back to load
	stateSucceed                       // done, report the loaded value
)

// exclusiveUpdate runs one exclusive read-modify-write. next maps the
// loaded value to the value to store; ok=false ends the sequence without
// a store (a compare that did not match). The most recently loaded value
// is returned whatever the outcome.
func exclusiveUpdate[T int32 | int64](
	loadEx func() T,
	storeEx func(old, v T) bool,
	next func(old T) (v T, ok bool),
) T {
	var (
		old, v T
		ok     bool
		stored bool
		fails  int
	)
	for state := stateLoad; ; {
		switch state {
		case stateLoad:
			old = loadEx()
			state = stateAttempt
		case stateAttempt:
			if v, ok = next(old); !ok {
				state = stateSucceed
				continue
			}
			stored = storeEx(old, v)
			state = stateCheck
		case stateCheck:
			if stored {
				state = stateSucceed
			} else {
				state = stateRetry
			}
		case stateRetry:
			fails++
			backoff(fails)
			state = stateLoad
		case stateSucceed:
			return old
		}
	}
}
