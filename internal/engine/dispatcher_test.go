package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform/mock"
)

func TestInputDispatcher_Mapping(t *testing.T) {
	tests := []struct {
		event model.Event
		want  string
	}{
		{model.Key{Name: "a", Action: model.ActionDown}, "key-down a"},
		{model.Key{Name: "a", Action: model.ActionUp}, "key-up a"},
		{model.MouseButton{Button: model.ButtonLeft, Action: model.ActionDown}, "mouse-down left"},
		{model.MouseButton{Button: model.ButtonRight, Action: model.ActionUp}, "mouse-up right"},
		{model.MouseButton{Button: model.ButtonMiddle, Action: model.ActionDouble}, "mouse-down middle"},
		{model.MouseMove{DX: 10, DY: -20}, "move 10,-20"},
		{model.MouseWheel{Delta: -1}, "scroll -1"},
	}
	for _, tt := range tests {
		in := mock.NewInputter()
		d := NewInputDispatcher(in)
		require.NoError(t, d.Dispatch(tt.event), "Dispatch(%v)", tt.event)
		assert.Equal(t, []string{tt.want}, in.Ops(), "Dispatch(%v)", tt.event)
	}
}

func TestInputDispatcher_DoubleMatchesDown(t *testing.T) {
	down := mock.NewInputter()
	double := mock.NewInputter()
	require.NoError(t, NewInputDispatcher(down).Dispatch(model.MouseButton{Button: model.ButtonLeft, Action: model.ActionDown}))
	require.NoError(t, NewInputDispatcher(double).Dispatch(model.MouseButton{Button: model.ButtonLeft, Action: model.ActionDouble}))
	assert.Equal(t, down.Ops(), double.Ops())
}

func TestInputDispatcher_UnknownAction(t *testing.T) {
	in := mock.NewInputter()
	d := NewInputDispatcher(in)
	assert.Error(t, d.Dispatch(model.Key{Name: "a", Action: model.ActionWheel}))
	assert.Error(t, d.Dispatch(model.MouseButton{Button: model.ButtonLeft, Action: model.ActionMove}))
	assert.Equal(t, 0, in.Len())
}

func TestInputDispatcher_PropagatesErrors(t *testing.T) {
	boom := errors.New("injection refused")
	in := mock.NewInputter()
	in.Fail = func(mock.Call) error { return boom }
	err := NewInputDispatcher(in).Dispatch(model.Key{Name: "a", Action: model.ActionDown})
	assert.ErrorIs(t, err, boom)
}

func TestDispatcherFunc(t *testing.T) {
	var got []model.Event
	d := DispatcherFunc(func(e model.Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, d.Dispatch(model.MouseWheel{Delta: 1}))
	assert.Len(t, got, 1)
}
