package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/keymacro/internal/model"
)

func TestLoad_MissingFile(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, "mem://")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, "mem://")
	require.NoError(t, err)
	defer s.Close()

	records := map[string]model.MacroRecord{
		"1": {
			ID:    "1",
			Title: model.TitleScript,
			Name:  "login",
			Delay: 500,
			Record: model.NewEventLog(
				model.Key{Name: "a", Action: model.ActionDown, Timestamp: 1},
				model.MouseMove{DX: 3, DY: 4, Timestamp: 1.5},
			),
		},
		"2": {ID: "2", Title: model.TitleNew, Name: model.DefaultName},
	}
	require.NoError(t, s.Save(ctx, records))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "login", got["1"].Name)
	assert.Equal(t, 500, got["1"].Delay)
	assert.Equal(t, records["1"].Record.Snapshot(), got["1"].Record.Snapshot())
	require.NotNil(t, got["2"].Record)
	assert.Equal(t, 0, got["2"].Record.Len())
	assert.Nil(t, records["2"].Record, "Save should not modify its input")
}

func TestSave_WritesEveryField(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := Open(ctx, dir)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(ctx, map[string]model.MacroRecord{
		"1": {ID: "1", Title: model.TitleNew, Name: model.DefaultName},
	}))

	data, err := os.ReadFile(filepath.Join(dir, Key))
	require.NoError(t, err)
	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `""`, string(raw["1"]["hotkey"]))
	assert.JSONEq(t, `[]`, string(raw["1"]["record"]))
}

func TestLoad_FillsMissingIDs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	data := `{"1700000000000000000": {"title": "Script", "name": "x", "delay": 0,
		"record": [{"key": {"key": "a", "type": "down", "time": 0}}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, Key), []byte(data), 0o644))

	s, err := Open(ctx, dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	rec := got["1700000000000000000"]
	assert.Equal(t, "1700000000000000000", rec.ID)
	assert.Equal(t, 1, rec.Record.Len())
}

func TestLoad_Malformed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Key), []byte(`{"1": {"record": [{}]}}`), 0o644))

	s, err := Open(ctx, dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "store")

	s, err := Open(ctx, dir)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Save(ctx, nil))

	_, err = os.Stat(filepath.Join(dir, Key))
	assert.NoError(t, err)
	assert.Equal(t, dir, s.Location())
}

func TestOpen_EmptyLocation(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}
