package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform"
)

func TestInputter_RecordsCalls(t *testing.T) {
	in := NewInputter()
	require.NoError(t, in.KeyDown("a"))
	require.NoError(t, in.MouseUp(model.ButtonRight))
	require.NoError(t, in.MoveMouse(1, -2))
	require.NoError(t, in.Scroll(3))
	assert.Equal(t, []string{"key-down a", "mouse-up right", "move 1,-2", "scroll 3"}, in.Ops())
}

func TestInputter_Fail(t *testing.T) {
	boom := errors.New("boom")
	in := NewInputter()
	in.Fail = func(c Call) error {
		if c.Op == "key-up" {
			return boom
		}
		return nil
	}
	require.NoError(t, in.KeyDown("a"))
	assert.ErrorIs(t, in.KeyUp("a"), boom)
	assert.Equal(t, 1, in.Len())
}

func TestHooker_EmitRespectsCategories(t *testing.T) {
	h := NewHooker(0, 0)
	var got []platform.RawEvent
	require.NoError(t, h.Hook(platform.HookOptions{Mouse: true}, func(ev platform.RawEvent) {
		got = append(got, ev)
	}))

	assert.False(t, h.Emit(platform.RawEvent{Kind: platform.RawKeyDown, Key: "a"}))
	assert.True(t, h.Emit(platform.RawEvent{Kind: platform.RawMouseMove, X: 5, Y: 6}))
	require.Len(t, got, 1)

	x, y := h.CursorPosition()
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 6.0, y)

	require.NoError(t, h.Unhook(platform.HookOptions{Mouse: true}))
	assert.False(t, h.Emit(platform.RawEvent{Kind: platform.RawMouseWheel, Delta: 1}))
	assert.False(t, h.Hooked().Any())
}

func TestHooker_WaitKey(t *testing.T) {
	h := NewHooker(0, 0)
	done := make(chan error, 1)
	go func() { done <- h.WaitKey(context.Background(), "esc") }()

	require.Eventually(t, func() bool { return h.Waiting("esc") == 1 }, time.Second, time.Millisecond)
	h.Press("esc")

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitKey did not return after Press")
	}
}

func TestHooker_WaitKeyCancelled(t *testing.T) {
	h := NewHooker(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.WaitKey(ctx, "esc"), context.Canceled)
	assert.Equal(t, 0, h.Waiting("esc"))
}
