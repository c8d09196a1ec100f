//go:build arm

package atomicops

// ARMMonitor drives the ARM exclusive monitor with LDREX/STREX and
// LDREXD/STREXD. Barriers are DMB ISH and ISB SY when built for ARMv7
// (GOARM=7); older cores get the equivalent CP15 operations.
//
// Every exclusive sequence lives in a single assembly body that makes no
// other memory access between the exclusive load and store, so a core
// that clears its local monitor on any store still lets the loop
// complete. The bare Monitor pair is built on those bodies too:
// LoadExclusive* is a single-copy-atomic read and StoreExclusive* a
// compare-and-swap against the value it returned, so no reservation is
// ever held across a return to Go code.
type ARMMonitor struct{}

//go:nosplit
func (ARMMonitor) LoadWord32(addr *int32) int32 {
	return armLoad32(addr)
}

//go:nosplit
func (ARMMonitor) StoreWord32(addr *int32, v int32) {
	armStore32(addr, v)
}

//go:nosplit
func (ARMMonitor) LoadExclusive32(addr *int32) int32 {
	return armLoad32(addr)
}

//go:nosplit
func (ARMMonitor) StoreExclusive32(addr *int32, old, v int32) bool {
	return armCas32(addr, old, v) == old
}

//go:nosplit
func (ARMMonitor) LoadExclusive64(addr *int64) int64 {
	return armLoad64(addr)
}

//go:nosplit
func (ARMMonitor) StoreExclusive64(addr *int64, old, v int64) bool {
	return armCas64(addr, old, v) == old
}

//go:nosplit
func (ARMMonitor) SwapExclusive32(addr *int32, v int32) int32 {
	return armSwap32(addr, v)
}

//go:nosplit
func (ARMMonitor) CompareAndSwapExclusive32(addr *int32, cmp, v int32) int32 {
	return armCas32(addr, cmp, v)
}

//go:nosplit
func (ARMMonitor) AddExclusive32(addr *int32, delta int32) int32 {
	return armAdd32(addr, delta)
}

//go:nosplit
func (ARMMonitor) SwapExclusive64(addr *int64, v int64) int64 {
	return armSwap64(addr, v)
}

//go:nosplit
func (ARMMonitor) CompareAndSwapExclusive64(addr *int64, cmp, v int64) int64 {
	return armCas64(addr, cmp, v)
}

//go:nosplit
func (ARMMonitor) Barrier() {
	armBarrier()
}

//go:nosplit
func (ARMMonitor) InstrBarrier() {
	armInstrBarrier()
}

var _ SequenceMonitor = ARMMonitor{}

// Implemented in monitor_arm.s.

//go:noescape
func armLoad32(addr *int32) int32

//go:noescape
func armStore32(addr *int32, v int32)

//go:noescape
func armLoad64(addr *int64) int64

//go:noescape
func armSwap32(addr *int32, v int32) int32

//go:noescape
func armCas32(addr *int32, cmp, v int32) int32

//go:noescape
func armAdd32(addr *int32, delta int32) int32

//go:noescape
func armSwap64(addr *int64, v int64) int64

//go:noescape
func armCas64(addr *int64, cmp, v int64) int64

func armBarrier()

func armInstrBarrier()
