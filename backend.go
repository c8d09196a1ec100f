package atomicops

// Primitives is the minimal set of atomic operations a backend supplies
// for the 32-bit and 64-bit cells. Everything else in this package is
// derived from it by Ops.
//
// Unless stated otherwise every operation is sequentially consistent.
// Implementations are stateless values; cells are owned by the caller and
// must be naturally aligned, which is assumed and never checked.
type Primitives interface {
	// GetInt returns the value of c.
	GetInt(c *Int) int32
	// GetIntAcquire returns the value of c with acquire ordering: no
	// later memory operation of the caller is reordered before it.
	GetIntAcquire(c *Int) int32
	// SetInt sets c to v.
	SetInt(c *Int, v int32)
	// SetIntRelease sets c to v with release ordering: no earlier memory
	// operation of the caller is reordered after it.
	SetIntRelease(c *Int, v int32)
	// SwapInt sets c to v and returns the previous value.
	SwapInt(c *Int, v int32) int32
	// TestAndSwapInt sets c to swap if it holds cmp. It returns the value
	// observed at the attempt, which equals cmp exactly when the swap
	// happened.
	TestAndSwapInt(c *Int, cmp, swap int32) int32
	// AddIntNv adds delta to c and returns the new value.
	AddIntNv(c *Int, delta int32) int32

	// GetInt64 returns the value of c.
	GetInt64(c *Int64) int64
	// SetInt64 sets c to v.
	SetInt64(c *Int64, v int64)
	// SwapInt64 sets c to v and returns the previous value.
	SwapInt64(c *Int64, v int64) int64
	// TestAndSwapInt64 is the 64-bit counterpart of TestAndSwapInt.
	TestAndSwapInt64(c *Int64, cmp, swap int64) int64
	// AddInt64Nv adds delta to c and returns the new value.
	AddInt64Nv(c *Int64, delta int64) int64
}

var (
	_ Primitives = Intrinsics{}
	_ Primitives = Exclusive[CASMonitor]{}
)
