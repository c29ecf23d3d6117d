//go:build cgo

package native

import (
	"fmt"
	"math"

	"github.com/go-vgo/robotgo"

	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform"
)

// Inputter implements platform.Inputter with robotgo.
type Inputter struct{}

// NewInputter creates a robotgo-backed inputter.
func NewInputter() *Inputter {
	return &Inputter{}
}

func (inp *Inputter) KeyDown(key string) error {
	if err := robotgo.KeyToggle(platform.NormalizeKey(key), "down"); err != nil {
		return fmt.Errorf("key down %q: %w", key, err)
	}
	return nil
}

func (inp *Inputter) KeyUp(key string) error {
	if err := robotgo.KeyToggle(platform.NormalizeKey(key), "up"); err != nil {
		return fmt.Errorf("key up %q: %w", key, err)
	}
	return nil
}

func (inp *Inputter) MouseDown(b model.Button) error {
	if err := robotgo.Toggle(buttonName(b)); err != nil {
		return fmt.Errorf("mouse down %s: %w", b, err)
	}
	return nil
}

func (inp *Inputter) MouseUp(b model.Button) error {
	if err := robotgo.Toggle(buttonName(b), "up"); err != nil {
		return fmt.Errorf("mouse up %s: %w", b, err)
	}
	return nil
}

func (inp *Inputter) MoveMouse(dx, dy float64) error {
	robotgo.MoveRelative(int(math.Round(dx)), int(math.Round(dy)))
	return nil
}

func (inp *Inputter) Scroll(delta float64) error {
	robotgo.Scroll(0, int(math.Round(delta)))
	return nil
}

// robotgo names the middle button "center".
func buttonName(b model.Button) string {
	switch b {
	case model.ButtonRight:
		return "right"
	case model.ButtonMiddle:
		return "center"
	default:
		return "left"
	}
}
