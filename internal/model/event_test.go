package model

import "testing"

func TestParseAction_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Action
	}{
		{"down", ActionDown},
		{"Down", ActionDown},
		{"up", ActionUp},
		{"double", ActionDouble},
		{" move ", ActionMove},
		{"WHEEL", ActionWheel},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.input)
		if err != nil {
			t.Errorf("ParseAction(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAction(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseAction_Invalid(t *testing.T) {
	for _, s := range []string{"", "press", "click"} {
		if _, err := ParseAction(s); err == nil {
			t.Errorf("ParseAction(%q) should fail", s)
		}
	}
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		input string
		want  Button
	}{
		{"left", ButtonLeft},
		{"Left", ButtonLeft},
		{"right", ButtonRight},
		{"MIDDLE", ButtonMiddle},
	}
	for _, tt := range tests {
		got, err := ParseButton(tt.input)
		if err != nil {
			t.Errorf("ParseButton(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseButton(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
	if _, err := ParseButton("x1"); err == nil {
		t.Error("ParseButton(\"x1\") should fail")
	}
}

func TestCategoryString(t *testing.T) {
	if CategoryKey.String() != "key" {
		t.Errorf("CategoryKey = %q", CategoryKey.String())
	}
	for _, c := range []Category{CategoryMouseButton, CategoryMouseMove, CategoryMouseWheel} {
		if c.String() != "mouse" {
			t.Errorf("category %d = %q, want mouse", c, c.String())
		}
	}
}

func TestActionOf(t *testing.T) {
	tests := []struct {
		event Event
		want  Action
	}{
		{Key{Name: "a", Action: ActionUp}, ActionUp},
		{MouseButton{Button: ButtonRight, Action: ActionDouble}, ActionDouble},
		{MouseMove{DX: 1}, ActionMove},
		{MouseWheel{Delta: 1}, ActionWheel},
	}
	for _, tt := range tests {
		if got := ActionOf(tt.event); got != tt.want {
			t.Errorf("ActionOf(%v) = %s, want %s", tt.event, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []Event{
		Key{Name: "a", Action: ActionDown},
		Key{Name: "shift", Action: ActionUp},
		MouseButton{Button: ButtonMiddle, Action: ActionDouble},
		MouseMove{DX: -3, DY: 4},
		MouseWheel{Delta: -1},
	}
	for _, e := range valid {
		if err := Validate(e); err != nil {
			t.Errorf("Validate(%v): %v", e, err)
		}
	}

	invalid := []Event{
		Key{Action: ActionDown},
		Key{Name: "a", Action: ActionDouble},
		Key{Name: "a", Action: ActionMove},
		MouseButton{Button: ButtonLeft, Action: ActionWheel},
		MouseButton{Button: Button(9), Action: ActionDown},
		nil,
	}
	for _, e := range invalid {
		if err := Validate(e); err == nil {
			t.Errorf("Validate(%#v) should fail", e)
		}
	}
}

func TestEventStrings(t *testing.T) {
	tests := []struct {
		event interface{ String() string }
		want  string
	}{
		{Key{Name: "a", Action: ActionDown}, "a: down"},
		{MouseButton{Button: ButtonLeft, Action: ActionUp}, "mouse left: up"},
		{MouseMove{DX: 10, DY: -2.5}, "move: [10,-2.5]"},
		{MouseWheel{Delta: 3}, "wheel: 3"},
	}
	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
