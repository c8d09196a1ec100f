//go:build arm && !race

package atomicops

// hostMonitor is the monitor the exclusive backend uses on this target.
type hostMonitor = ARMMonitor

const monitorName = "arm"
