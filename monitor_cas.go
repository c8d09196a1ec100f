package atomicops

import "sync/atomic"

// CASMonitor emulates the exclusive monitor with sync/atomic. The
// reservation is the value the exclusive load returned: the exclusive
// store succeeds only if the cell still holds it. An A-B-A change in
// between goes unnoticed, which no value-returning sequence built on
// Monitor can observe.
//
// Every access it makes is already sequentially consistent, so the
// barriers have nothing left to order.
type CASMonitor struct{}

//go:nosplit
func (CASMonitor) LoadWord32(addr *int32) int32 {
	return atomic.LoadInt32(addr)
}

//go:nosplit
func (CASMonitor) StoreWord32(addr *int32, v int32) {
	atomic.StoreInt32(addr, v)
}

//go:nosplit
func (CASMonitor) LoadExclusive32(addr *int32) int32 {
	return atomic.LoadInt32(addr)
}

//go:nosplit
func (CASMonitor) StoreExclusive32(addr *int32, old, v int32) bool {
	return atomic.CompareAndSwapInt32(addr, old, v)
}

//go:nosplit
func (CASMonitor) LoadExclusive64(addr *int64) int64 {
	return atomic.LoadInt64(addr)
}

//go:nosplit
func (CASMonitor) StoreExclusive64(addr *int64, old, v int64) bool {
	return atomic.CompareAndSwapInt64(addr, old, v)
}

func (CASMonitor) Barrier()      {}
func (CASMonitor) InstrBarrier() {}
