//go:build atomicops_opt_cachelinesize_32

package atomicops

// CacheLineSize is fixed at build time to 32 bytes.
const CacheLineSize = 32
