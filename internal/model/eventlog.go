package model

import (
	"encoding/json"
	"fmt"
	"sync"
)

// EventLog is an ordered, timestamped sequence of events. Insertion order is
// replay order and timestamps never decrease. It is safe for concurrent use:
// hook callbacks append from OS threads while other goroutines take snapshots.
type EventLog struct {
	mu     sync.RWMutex
	events []Event
}

// NewEventLog returns a log holding events, in order.
func NewEventLog(events ...Event) *EventLog {
	l := &EventLog{}
	for _, e := range events {
		l.Append(e)
	}
	return l
}

// Append stores e at the end of the log and returns the stored value. A
// timestamp earlier than the last stored one is raised to it.
func (l *EventLog) Append(e Event) Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n := len(l.events); n > 0 {
		if last := l.events[n-1].Time(); e.Time() < last {
			e = e.withTime(last)
		}
	}
	l.events = append(l.events, e)
	return e
}

// Len returns the number of stored events.
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// LastTime returns the timestamp of the last event, or 0 for an empty log.
func (l *EventLog) LastTime() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.events) == 0 {
		return 0
	}
	return l.events[len(l.events)-1].Time()
}

// Snapshot returns a copy of the current sequence. Later appends or
// replacements do not affect the returned slice.
func (l *EventLog) Snapshot() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Clear removes all events.
func (l *EventLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

// Replace swaps the whole sequence for events in one step. Timestamps that
// go backwards are raised to keep the ordering invariant.
func (l *EventLog) Replace(events []Event) {
	next := make([]Event, 0, len(events))
	for _, e := range events {
		if n := len(next); n > 0 && e.Time() < next[n-1].Time() {
			e = e.withTime(next[n-1].Time())
		}
		next = append(next, e)
	}
	l.mu.Lock()
	l.events = next
	l.mu.Unlock()
}

// keyRecord and mouseRecord are the persisted shapes of an event; exactly
// one is set per envelope.
type keyRecord struct {
	Key  string  `json:"key"  yaml:"key"`
	Type string  `json:"type" yaml:"type"`
	Time float64 `json:"time" yaml:"time"`
}

type mouseRecord struct {
	Key    *string     `json:"key,omitempty"    yaml:"key,omitempty"`
	Offset *[2]float64 `json:"offset,omitempty" yaml:"offset,omitempty,flow"`
	Delta  *float64    `json:"delta,omitempty"  yaml:"delta,omitempty"`
	Type   string      `json:"type"             yaml:"type"`
	Time   float64     `json:"time"             yaml:"time"`
}

type envelope struct {
	Key   *keyRecord   `json:"key,omitempty"   yaml:"key,omitempty"`
	Mouse *mouseRecord `json:"mouse,omitempty" yaml:"mouse,omitempty"`
}

func toEnvelope(e Event) envelope {
	switch ev := e.(type) {
	case Key:
		return envelope{Key: &keyRecord{Key: ev.Name, Type: ev.Action.String(), Time: ev.Timestamp}}
	case MouseButton:
		name := ev.Button.String()
		return envelope{Mouse: &mouseRecord{Key: &name, Type: ev.Action.String(), Time: ev.Timestamp}}
	case MouseMove:
		return envelope{Mouse: &mouseRecord{Offset: &[2]float64{ev.DX, ev.DY}, Type: ActionMove.String(), Time: ev.Timestamp}}
	case MouseWheel:
		delta := ev.Delta
		return envelope{Mouse: &mouseRecord{Delta: &delta, Type: ActionWheel.String(), Time: ev.Timestamp}}
	}
	return envelope{}
}

func (env envelope) event() (Event, error) {
	switch {
	case env.Key != nil && env.Mouse != nil:
		return nil, fmt.Errorf("event has both key and mouse records")
	case env.Key != nil:
		action, err := ParseAction(env.Key.Type)
		if err != nil {
			return nil, err
		}
		e := Key{Name: env.Key.Key, Action: action, Timestamp: env.Key.Time}
		return e, Validate(e)
	case env.Mouse != nil:
		return env.Mouse.event()
	default:
		return nil, fmt.Errorf("event has neither key nor mouse record")
	}
}

func (m *mouseRecord) event() (Event, error) {
	present := 0
	for _, set := range []bool{m.Key != nil, m.Offset != nil, m.Delta != nil} {
		if set {
			present++
		}
	}
	if present != 1 {
		return nil, fmt.Errorf("mouse record must carry exactly one of key, offset, delta (got %d)", present)
	}
	action, err := ParseAction(m.Type)
	if err != nil {
		return nil, err
	}
	switch {
	case m.Key != nil:
		button, err := ParseButton(*m.Key)
		if err != nil {
			return nil, err
		}
		e := MouseButton{Button: button, Action: action, Timestamp: m.Time}
		return e, Validate(e)
	case m.Offset != nil:
		if action != ActionMove {
			return nil, fmt.Errorf("offset record has type %q, expected move", m.Type)
		}
		return MouseMove{DX: m.Offset[0], DY: m.Offset[1], Timestamp: m.Time}, nil
	default:
		if action != ActionWheel {
			return nil, fmt.Errorf("delta record has type %q, expected wheel", m.Type)
		}
		return MouseWheel{Delta: *m.Delta, Timestamp: m.Time}, nil
	}
}

func envelopes(events []Event) []envelope {
	out := make([]envelope, len(events))
	for i, e := range events {
		out[i] = toEnvelope(e)
	}
	return out
}

// MarshalJSON encodes the log as an array of {"key": ...} / {"mouse": ...}
// envelopes.
func (l *EventLog) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelopes(l.Snapshot()))
}

// UnmarshalJSON decodes an envelope array and replaces the log contents.
// Nothing is replaced when any entry is malformed.
func (l *EventLog) UnmarshalJSON(data []byte) error {
	var raw []envelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode events: %w", err)
	}
	events := make([]Event, 0, len(raw))
	for i, env := range raw {
		e, err := env.event()
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}
	l.Replace(events)
	return nil
}

// MarshalYAML renders the same envelopes as MarshalJSON.
func (l *EventLog) MarshalYAML() (interface{}, error) {
	return envelopes(l.Snapshot()), nil
}
