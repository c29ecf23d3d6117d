// Package native registers the OS input backend: robotgo for injection and
// gohook (libuiohook) for global hooks. Both need cgo; without it the
// package compiles empty and platform.NewProvider reports ErrUnsupported.
//
// Import it for side effects:
//
//	import _ "github.com/mj1618/keymacro/internal/platform/native"
package native
