package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the input backends for the current OS.
type Provider struct {
	Inputter Inputter
	Hooker   Hooker
}

// ErrUnsupported is returned when no native backend was compiled in.
var ErrUnsupported = fmt.Errorf("keymacro has no input backend for %s/%s (build with cgo enabled)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by the native backend via init().
// See internal/platform/native/init.go.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
