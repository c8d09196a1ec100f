//go:build !atomicops_opt_backoff

package atomicops

const wantBackoffSpins = 0
