package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/keymacro/internal/model"
)

func capture(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func sampleDetail() MacroDetail {
	return MacroDetail{
		MacroSummary: model.MacroSummary{ID: "abc", Title: "Script", Name: "login", Delay: 100, Events: 2, State: "idle"},
		Record: model.NewEventLog(
			model.Key{Name: "a", Action: model.ActionDown, Timestamp: 1},
			model.MouseWheel{Delta: -1, Timestamp: 2},
		),
	}
}

func TestPrintYAML(t *testing.T) {
	out := capture(t, func() error { return PrintYAML(sampleDetail()) })

	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["name"] != "login" {
		t.Errorf("summary fields should be inlined, got:\n%s", out)
	}
	if !strings.Contains(out, "delta: -1") {
		t.Errorf("record should render event envelopes, got:\n%s", out)
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	out := capture(t, func() error { return PrintJSON(sampleDetail()) })

	if bytes.Count([]byte(out), []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded struct {
		ID     string                       `json:"id"`
		Record []map[string]json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != "abc" {
		t.Errorf("id: got %q, want abc", decoded.ID)
	}
	if len(decoded.Record) != 2 {
		t.Errorf("record: got %d events, want 2", len(decoded.Record))
	}
}

func TestPrintPrettyJSON(t *testing.T) {
	out := capture(t, func() error { return PrintPrettyJSON(ActionResult{OK: true, Action: "play"}) })
	if !strings.Contains(out, "\n  \"ok\": true") {
		t.Errorf("pretty output should be indented, got:\n%s", out)
	}
}

func TestActionResult_OmitEmpty(t *testing.T) {
	out := capture(t, func() error { return PrintJSON(ActionResult{OK: true, Action: "delete", ID: "x"}) })
	for _, field := range []string{"events", "passes", "message"} {
		if strings.Contains(out, field) {
			t.Errorf("empty %s should be omitted, got: %s", field, out)
		}
	}
	out = capture(t, func() error { return PrintJSON(ActionResult{OK: true, Action: "record", Events: Count(0)}) })
	if !strings.Contains(out, `"events":0`) {
		t.Errorf("explicit zero count should be kept, got: %s", out)
	}
}

func TestPrint_UsesFormat(t *testing.T) {
	defer func(f Format) { OutputFormat = f }(OutputFormat)

	OutputFormat = FormatJSON
	out := capture(t, func() error { return Print(ActionResult{OK: true, Action: "new"}) })
	if !strings.HasPrefix(out, "{") {
		t.Errorf("json format should print JSON, got: %s", out)
	}

	OutputFormat = FormatYAML
	out = capture(t, func() error { return Print(ActionResult{OK: true, Action: "new"}) })
	if !strings.HasPrefix(out, "ok: true") {
		t.Errorf("yaml format should print YAML, got: %s", out)
	}

	OutputFormat = "xml"
	if err := Print(ActionResult{}); err == nil {
		t.Error("unsupported format should fail")
	}
}
