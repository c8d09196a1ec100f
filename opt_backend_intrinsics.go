//go:build !atomicops_exclusive

package atomicops

// defaultBackend is the backend behind the package-level functions.
// By default the toolchain intrinsics are used; build with the
// `atomicops_exclusive` tag to force the load-exclusive/store-exclusive
// loops instead.
type defaultBackend = Intrinsics

const backendName = "intrinsics"
