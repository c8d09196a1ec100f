//go:build atomicops_opt_cachelinesize_64

package atomicops

// CacheLineSize is fixed at build time to 64 bytes.
const CacheLineSize = 64
