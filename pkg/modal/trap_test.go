package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeContainer []FocusableInfo

func (c fakeContainer) ContainerID() string      { return "box" }
func (c fakeContainer) Targets() []FocusableInfo { return c }

func ids(fs []FocusableInfo) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.ID
	}
	return out
}

func TestFocusablesExclusionsAndOrder(t *testing.T) {
	c := fakeContainer{
		{ID: "a"},
		{ID: "disabled", Disabled: true},
		{ID: "b", TabIndex: 2},
		{ID: "hidden", Hidden: true},
		{ID: "skip", TabIndex: -1},
		{ID: "c"},
		{ID: "clipped", Clipped: true},
		{ID: "d", TabIndex: 1},
		{ID: ""},
	}
	got := ids(Focusables(c))
	want := []string{"d", "b", "a", "c", "clipped"}
	if len(got) != len(want) {
		t.Fatalf("Focusables() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Focusables() = %v, want %v", got, want)
		}
	}
}

func TestTrapCycle(t *testing.T) {
	three := fakeContainer{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	tests := []struct {
		name    string
		c       fakeContainer
		current string
		key     tea.KeyMsg
		want    string
	}{
		{"tab forward", three, "a", keyTab, "b"},
		{"tab wraps at last", three, "c", keyTab, "a"},
		{"shift-tab back", three, "b", keyShiftTab, "a"},
		{"shift-tab wraps at first", three, "a", keyShiftTab, "c"},
		{"tab from container", three, "box", keyTab, "a"},
		{"shift-tab from container", three, "box", keyShiftTab, "c"},
		{"tab from lost focus", three, "gone", keyTab, "a"},
		{"single element stays", fakeContainer{{ID: "only"}}, "only", keyTab, "only"},
		{"empty pins container", nil, "box", keyTab, "box"},
		{"empty pins container backwards", nil, "box", keyShiftTab, "box"},
		{"only disabled pins container", fakeContainer{{ID: "x", Disabled: true}}, "box", keyTab, "box"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Trap(tt.c, tt.current, tt.key)
			if !d.Handled || d.Dismiss {
				t.Fatalf("Trap() = %+v, want handled focus move", d)
			}
			if d.Focus != tt.want {
				t.Errorf("Focus = %q, want %q", d.Focus, tt.want)
			}
		})
	}
}

func TestTrapEscapeDismisses(t *testing.T) {
	d := Trap(fakeContainer{{ID: "a"}}, "a", keyEsc)
	if !d.Handled || !d.Dismiss {
		t.Errorf("Trap(esc) = %+v, want dismiss", d)
	}
}

func TestTrapIgnoresOtherKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		keyEnter,
		{Type: tea.KeyRunes, Runes: []rune("x")},
		{Type: tea.KeyDown},
	} {
		if d := Trap(fakeContainer{{ID: "a"}}, "a", key); d.Handled {
			t.Errorf("Trap(%q) handled, want pass through", key.String())
		}
	}
}

func TestTrapReevaluatesContent(t *testing.T) {
	disabled := true
	var c fakeContainer
	build := func() fakeContainer {
		return fakeContainer{{ID: "a"}, {ID: "b", Disabled: disabled}}
	}

	c = build()
	if got := Trap(c, "a", keyTab).Focus; got != "a" {
		t.Fatalf("with b disabled, Focus = %q, want a", got)
	}

	disabled = false
	c = build()
	if got := Trap(c, "a", keyTab).Focus; got != "b" {
		t.Errorf("with b enabled, Focus = %q, want b", got)
	}
}

func TestIsFocusable(t *testing.T) {
	c := fakeContainer{{ID: "a"}, {ID: "b", Hidden: true}}
	if !IsFocusable(c, "a") {
		t.Error("a should be focusable")
	}
	if IsFocusable(c, "b") || IsFocusable(c, "missing") {
		t.Error("hidden and unknown IDs should not be focusable")
	}
}
