package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestLikertStartsNeutral(t *testing.T) {
	l := NewLikert()
	if got := l.Options[l.Selected].Score; got != 3 {
		t.Errorf("expected cursor on 3, got %d", got)
	}
}

func TestLikertChoose(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyPressMsg
		want int
	}{
		{"enter on neutral", []tea.KeyPressMsg{{Code: tea.KeyEnter}}, 3},
		{"up then space", []tea.KeyPressMsg{{Code: tea.KeyUp}, {Code: tea.KeySpace}}, 4},
		{"clamped at top", []tea.KeyPressMsg{{Code: tea.KeyUp}, {Code: tea.KeyUp}, {Code: tea.KeyUp}, {Code: tea.KeyEnter}}, 5},
		{"clamped at bottom", []tea.KeyPressMsg{{Code: tea.KeyDown}, {Code: tea.KeyDown}, {Code: tea.KeyDown}, {Code: tea.KeyEnter}}, 1},
		{"digit", []tea.KeyPressMsg{{Code: '2', Text: "2"}}, 2},
		{"out of scale digit", []tea.KeyPressMsg{{Code: '7', Text: "7"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLikert()
			var got int
			for _, k := range tt.keys {
				l, got = l.Update(k)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestLikertReset(t *testing.T) {
	l := NewLikert()
	l, _ = l.Update(tea.KeyPressMsg{Code: '5', Text: "5"})
	l.Reset()
	if got := l.Options[l.Selected].Score; got != 3 {
		t.Errorf("expected cursor back on 3, got %d", got)
	}
	if !strings.Contains(l.View(), "▸ [3]") {
		t.Errorf("expected neutral highlighted:\n%s", l.View())
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var picked string
	pick := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			picked = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "A", Action: pick("a")},
		{Label: "B", Action: pick("b"), Disabled: true},
		{Label: "C", Action: pick("c")},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("expected disabled item skipped, got %d", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "c" {
		t.Errorf("expected c, got %q", picked)
	}

	picked = ""
	m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if picked != "" {
		t.Errorf("expected disabled shortcut ignored, got %q", picked)
	}
	m.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if picked != "a" {
		t.Errorf("expected a, got %q", picked)
	}
}

func TestScoreBar(t *testing.T) {
	out := ScoreBar("Science", "science", 15, 15, 40)
	if !strings.Contains(out, "Science") || !strings.Contains(out, "15") {
		t.Errorf("unexpected bar %q", out)
	}
	// Zero max must not divide by zero.
	_ = ScoreBar("Arts", "arts", 0, 0, 40)
}
