//go:build atomicops_opt_backoff

package atomicops

import "runtime"

// backoffSpins is the number of consecutive failed exclusive stores
// after which a retry loop yields the processor. Loops still never give
// up; yielding only lets a preempted competitor finish its sequence.
const backoffSpins = 64

var yield = runtime.Gosched

func backoff(fails int) {
	if fails%backoffSpins == 0 {
		yield()
	}
}
