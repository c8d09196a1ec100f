//go:build !arm || race

package atomicops

// hostMonitor is the monitor the exclusive backend uses on this target.
// Assembly is invisible to the race detector, so race builds on ARM
// fall back to the sync/atomic emulation as well.
type hostMonitor = CASMonitor

const monitorName = "cas"
