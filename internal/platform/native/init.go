//go:build cgo

package native

import "github.com/mj1618/keymacro/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Inputter: NewInputter(),
			Hooker:   NewHooker(),
		}, nil
	}
}
