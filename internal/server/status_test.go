package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/keymacro/internal/metrics"
	"github.com/mj1618/keymacro/internal/model"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestStatusRouter(t *testing.T) {
	f := newFixture(t)
	id := f.create(t, "status")
	m := metrics.New()
	m.RecordingFinished()
	r := f.srv.StatusRouter(m)

	code, body := get(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)

	code, body = get(t, r, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "keymacro_recordings_total 1")

	code, body = get(t, r, "/macros")
	assert.Equal(t, http.StatusOK, code)
	var list []model.MacroSummary
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	code, body = get(t, r, "/macros/"+id)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Contains(body, `"name":"status"`), body)

	code, _ = get(t, r, "/macros/missing")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStatusRouter_NoMetrics(t *testing.T) {
	f := newFixture(t)
	code, _ := get(t, f.srv.StatusRouter(nil), "/metrics")
	assert.Equal(t, http.StatusNotFound, code)
}
