package model

import "time"

// Titles shown for a macro before and after its first recording.
const (
	TitleNew    = "New"
	TitleScript = "Script"
)

// DefaultName is the name given to a freshly created macro.
const DefaultName = "New script"

// MacroRecord is the persisted form of one macro: its metadata, loop delay
// and event log. A store file maps record IDs to records.
type MacroRecord struct {
	ID     string    `json:"id"               yaml:"id"`
	Title  string    `json:"title"            yaml:"title"`
	Name   string    `json:"name"             yaml:"name"`
	Delay  int       `json:"delay"            yaml:"delay"` // loop interval in ms
	Hotkey string    `json:"hotkey"           yaml:"hotkey,omitempty"`
	Record *EventLog `json:"record"           yaml:"record,omitempty"`
}

// Events returns the record's log, creating an empty one if needed.
func (r *MacroRecord) Events() *EventLog {
	if r.Record == nil {
		r.Record = NewEventLog()
	}
	return r.Record
}

// LoopDelay returns the pause between looped playback passes.
func (r *MacroRecord) LoopDelay() time.Duration {
	if r.Delay <= 0 {
		return 0
	}
	return time.Duration(r.Delay) * time.Millisecond
}

// MacroSummary is the listing view of a record.
type MacroSummary struct {
	ID     string `yaml:"id"               json:"id"`
	Title  string `yaml:"title"            json:"title"`
	Name   string `yaml:"name"             json:"name"`
	Delay  int    `yaml:"delay"            json:"delay"`
	Hotkey string `yaml:"hotkey,omitempty" json:"hotkey,omitempty"`
	Events int    `yaml:"events"           json:"events"`
	State  string `yaml:"state,omitempty"  json:"state,omitempty"`
}

// Summary returns the listing view of r.
func (r *MacroRecord) Summary() MacroSummary {
	n := 0
	if r.Record != nil {
		n = r.Record.Len()
	}
	return MacroSummary{
		ID:     r.ID,
		Title:  r.Title,
		Name:   r.Name,
		Delay:  r.Delay,
		Hotkey: r.Hotkey,
		Events: n,
	}
}
