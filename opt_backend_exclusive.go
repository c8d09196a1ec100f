//go:build atomicops_exclusive

package atomicops

// defaultBackend is the backend behind the package-level functions.
// The `atomicops_exclusive` tag selects the load-exclusive/store-exclusive
// loops over the host's monitor.
type defaultBackend = Exclusive[hostMonitor]

const backendName = "exclusive"
