//go:build atomicops_opt_cachelinesize_256

package atomicops

// CacheLineSize is fixed at build time to 256 bytes.
const CacheLineSize = 256
