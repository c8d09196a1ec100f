//go:build !atomicops_opt_cachelinesize_32 && !atomicops_opt_cachelinesize_64 && !atomicops_opt_cachelinesize_128 && !atomicops_opt_cachelinesize_256

package atomicops

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is the line PaddedInt64 fills, taken from the build
// target's cpu.CacheLinePad. The atomicops_opt_cachelinesize_* tags pin
// it for cores whose line differs from the GOARCH default, such as
// 32-byte ARM11 parts.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
