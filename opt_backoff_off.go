//go:build !atomicops_opt_backoff

package atomicops

// backoffSpins is the number of consecutive failed exclusive stores
// after which a retry loop yields the processor. Zero disables it:
// loops retry immediately and without bound.
const backoffSpins = 0

//go:nosplit
func backoff(int) {}
