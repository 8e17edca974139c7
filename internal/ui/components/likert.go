package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/ui/theme"
)

// Likert is a single-choice selector over the answer scale. Options are
// shown strongest agreement first; digits 1-5 choose a score directly.
type Likert struct {
	Options  []aptitude.ScaleOption
	Selected int
	chosen   int
}

// NewLikert creates a chooser over the standard scale with the cursor on
// the neutral option.
func NewLikert() Likert {
	opts := aptitude.Scale()
	l := Likert{Options: opts}
	l.Selected = len(opts) / 2
	return l
}

// Update handles navigation. It returns the chosen score once the user
// confirms, or 0 while no choice has been made.
func (l Likert) Update(msg tea.Msg) (Likert, int) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, 0
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Options)-1 {
			l.Selected++
		}
	case "enter", "space":
		l.chosen = l.Options[l.Selected].Score
		return l, l.chosen
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			score := int(key[0] - '0')
			for i, opt := range l.Options {
				if opt.Score == score {
					l.Selected = i
					l.chosen = score
					return l, score
				}
			}
		}
	}
	return l, 0
}

// Reset clears the last choice and recenters the cursor.
func (l *Likert) Reset() {
	l.Selected = len(l.Options) / 2
	l.chosen = 0
}

// View renders the options.
func (l Likert) View() string {
	var s string
	for i, opt := range l.Options {
		prefix := "  "
		if i == l.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s[%d]  %-18s", prefix, opt.Score, opt.Label)

		if i == l.Selected {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(opt.Hint)
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line)
		}
		s += "\n"
	}
	return s
}
