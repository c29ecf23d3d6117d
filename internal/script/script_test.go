package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/keymacro/internal/model"
)

func TestEncode(t *testing.T) {
	events := []model.Event{
		model.Key{Name: "a", Action: model.ActionDown, Timestamp: 10.0},
		model.Key{Name: "a", Action: model.ActionUp, Timestamp: 10.12},
		model.MouseButton{Button: model.ButtonLeft, Action: model.ActionDouble, Timestamp: 10.16},
		model.MouseMove{DX: 10, DY: 20, Timestamp: 10.176},
		model.MouseWheel{Delta: -1, Timestamp: 10.476},
	}
	want := "0000\na: down\n" +
		"0120\na: up\n" +
		"0040\nmouse left: double\n" +
		"0016\nmove: [10,20]\n" +
		"0300\nwheel: -1\n"
	assert.Equal(t, want, Encode(events))
}

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
}

func TestEncode_FractionalOffsets(t *testing.T) {
	got := Encode([]model.Event{model.MouseMove{DX: 1.5, DY: -0.25}})
	assert.Equal(t, "0000\nmove: [1.5,-0.25]\n", got)
}

func TestDecode_Example(t *testing.T) {
	events, err := Decode("0100\nmouse left: down\n0050\nmove: [10,20]\n")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.MouseButton{Button: model.ButtonLeft, Action: model.ActionDown, Timestamp: 0.1}, events[0])
	assert.Equal(t, model.MouseMove{DX: 10, DY: 20, Timestamp: 0.15}, events[1])
}

func TestDecode_KeysWithColon(t *testing.T) {
	events, err := Decode(":: down\n")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.Key{Name: ":", Action: model.ActionDown}, events[0])
}

func TestDecode_SkipsBlankLines(t *testing.T) {
	events, err := Decode("\n\n0010\n  shift: down  \n\n")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.Key{Name: "shift", Action: model.ActionDown, Timestamp: 0.01}, events[0])
}

func TestDecode_HashIsAKeyName(t *testing.T) {
	events, err := Decode("0000\n#: down\n0050\n#: up\n")
	require.NoError(t, err)
	assert.Equal(t, []model.Event{
		model.Key{Name: "#", Action: model.ActionDown},
		model.Key{Name: "#", Action: model.ActionUp, Timestamp: 0.05},
	}, events)
}

func TestDecode_UnknownMouseNameIsAKey(t *testing.T) {
	events, err := Decode("0000\nmouse x: down\n")
	require.NoError(t, err)
	assert.Equal(t, []model.Event{model.Key{Name: "mouse x", Action: model.ActionDown}}, events)
}

func TestDecode_WheelAndBareOffset(t *testing.T) {
	events, err := Decode("wheel: 2.5\nmove: 3,-4\n")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.MouseWheel{Delta: 2.5}, events[0])
	assert.Equal(t, model.MouseMove{DX: 3, DY: -4}, events[1])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"no colon", "0000\nhello\n", 2},
		{"bad key action", "a: double\n", 1},
		{"comment line", "# header\n", 1},
		{"bad key action after blank", "0010\n\nmouse thumb: double\n", 3},
		{"bad button action", "mouse left: move\n", 1},
		{"bad offset", "move: [1]\n", 1},
		{"bad wheel", "a: down\nwheel: lots\n", 2},
		{"negative delay", "-5\n", 1},
		{"empty key", ": down\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			require.Error(t, err)
			var syn *SyntaxError
			require.True(t, errors.As(err, &syn), "expected *SyntaxError, got %T", err)
			assert.Equal(t, tt.line, syn.Line)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	events := []model.Event{
		model.Key{Name: "ctrl", Action: model.ActionDown, Timestamp: 0},
		model.Key{Name: "c", Action: model.ActionDown, Timestamp: 0.25},
		model.Key{Name: "c", Action: model.ActionUp, Timestamp: 0.3},
		model.Key{Name: "#", Action: model.ActionDown, Timestamp: 0.3},
		model.Key{Name: "#", Action: model.ActionUp, Timestamp: 0.35},
		model.Key{Name: "mouse x", Action: model.ActionDown, Timestamp: 0.4},
		model.Key{Name: ":", Action: model.ActionUp, Timestamp: 0.41},
		model.MouseButton{Button: model.ButtonRight, Action: model.ActionUp, Timestamp: 1.5},
		model.MouseButton{Button: model.ButtonMiddle, Action: model.ActionDouble, Timestamp: 1.516},
		model.MouseMove{DX: 1.5, DY: -0.25, Timestamp: 1.6},
		model.MouseMove{DX: -40, DY: 12, Timestamp: 1.616},
		model.MouseWheel{Delta: 3, Timestamp: 2},
		model.MouseWheel{Delta: -0.5, Timestamp: 2.001},
	}
	text := Encode(events)
	decoded, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, events, decoded)
	assert.Equal(t, text, Encode(decoded))
}

func TestRoundTrip_RoundsDelays(t *testing.T) {
	events := []model.Event{
		model.Key{Name: "a", Action: model.ActionDown, Timestamp: 10},
		model.Key{Name: "a", Action: model.ActionUp, Timestamp: 10.1234},
	}
	decoded, err := Decode(Encode(events))
	require.NoError(t, err)
	assert.Equal(t, []model.Event{
		model.Key{Name: "a", Action: model.ActionDown, Timestamp: 0},
		model.Key{Name: "a", Action: model.ActionUp, Timestamp: 0.123},
	}, decoded)
}

func TestParseOffset(t *testing.T) {
	x, y, err := ParseOffset(" [ -1 , 2.5 ] ")
	require.NoError(t, err)
	assert.Equal(t, -1.0, x)
	assert.Equal(t, 2.5, y)

	for _, s := range []string{"", "[1,2,3]", "a,b", "[1,]"} {
		_, _, err := ParseOffset(s)
		assert.Error(t, err, "ParseOffset(%q)", s)
	}
}
