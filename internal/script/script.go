// Package script converts event logs to and from the editable text form
// shown to users: a delay line in milliseconds before each event line.
//
//	0000
//	a: down
//	0120
//	a: up
//	0040
//	mouse left: double
//	0016
//	move: [10,20]
//	0300
//	wheel: -1
package script

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mj1618/keymacro/internal/model"
)

// SyntaxError reports a script line that could not be parsed.
type SyntaxError struct {
	Line int // 1-based
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Encode renders events as script text. The first delay is always 0000.
func Encode(events []model.Event) string {
	var b strings.Builder
	var last float64
	for i, e := range events {
		var ms float64
		if i > 0 {
			ms = math.Max(0, math.Round((e.Time()-last)*1000))
		}
		last = e.Time()
		fmt.Fprintf(&b, "%04d\n%s\n", int64(ms), Line(e))
	}
	return b.String()
}

// Line renders the event part of a script entry, without the delay.
func Line(e model.Event) string {
	switch ev := e.(type) {
	case model.Key:
		return ev.Name + ": " + ev.Action.String()
	case model.MouseButton:
		return "mouse " + ev.Button.String() + ": " + ev.Action.String()
	case model.MouseMove:
		return "move: [" + formatNumber(ev.DX) + "," + formatNumber(ev.DY) + "]"
	case model.MouseWheel:
		return "wheel: " + formatNumber(ev.Delta)
	default:
		return fmt.Sprintf("# unsupported event %T", e)
	}
}

// Decode parses script text. Blank lines are ignored. Timestamps start at 0
// and advance by each delay line.
func Decode(text string) ([]model.Event, error) {
	var (
		events []model.Event
		clock  int64 // ms
	)
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if ms, err := strconv.ParseInt(line, 10, 64); err == nil {
			if ms < 0 {
				return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("negative delay %d", ms)}
			}
			clock += ms
			continue
		}
		e, err := parseEvent(line, float64(clock)/1000)
		if err != nil {
			return nil, &SyntaxError{Line: lineNo, Msg: err.Error()}
		}
		events = append(events, e)
	}
	return events, nil
}

func parseEvent(line string, t float64) (model.Event, error) {
	idx := strings.LastIndex(line, ":")
	if idx < 0 {
		return nil, fmt.Errorf("expected '<key>: <action>' or a delay, got %q", line)
	}
	target := strings.TrimSpace(line[:idx])
	arg := strings.TrimSpace(line[idx+1:])
	if target == "" {
		return nil, fmt.Errorf("missing key before ':'")
	}

	switch {
	case target == "move":
		dx, dy, err := ParseOffset(arg)
		if err != nil {
			return nil, err
		}
		return model.MouseMove{DX: dx, DY: dy, Timestamp: t}, nil
	case target == "wheel":
		delta, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid wheel delta %q", arg)
		}
		return model.MouseWheel{Delta: delta, Timestamp: t}, nil
	case strings.HasPrefix(target, "mouse ") && model.IsButtonName(strings.TrimPrefix(target, "mouse ")):
		button, err := model.ParseButton(strings.TrimPrefix(target, "mouse "))
		if err != nil {
			return nil, err
		}
		action, err := model.ParseAction(arg)
		if err != nil {
			return nil, err
		}
		e := model.MouseButton{Button: button, Action: action, Timestamp: t}
		return e, model.Validate(e)
	default:
		action, err := model.ParseAction(arg)
		if err != nil {
			return nil, err
		}
		e := model.Key{Name: target, Action: action, Timestamp: t}
		return e, model.Validate(e)
	}
}

// ParseOffset parses "[x,y]" or "x,y" into a relative pointer offset.
func ParseOffset(s string) (float64, float64, error) {
	inner := strings.TrimSpace(s)
	if strings.HasPrefix(inner, "[") && strings.HasSuffix(inner, "]") {
		inner = inner[1 : len(inner)-1]
	}
	parts := strings.Split(inner, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid offset %q (expected [x,y])", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset x %q", parts[0])
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid offset y %q", parts[1])
	}
	return x, y, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
