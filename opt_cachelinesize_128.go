//go:build atomicops_opt_cachelinesize_128

package atomicops

// CacheLineSize is fixed at build time to 128 bytes.
const CacheLineSize = 128
