// Package streams lets the user browse every stream the bank knows about.
package streams

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// StreamsScreen shows the stream catalog with a detail card for the
// selected entry.
type StreamsScreen struct {
	infos    []aptitude.Info
	selected int
}

var _ screen.Screen = (*StreamsScreen)(nil)
var _ screen.KeyHintProvider = (*StreamsScreen)(nil)

// New creates a StreamsScreen over the bank's categories.
func New(bank *aptitude.Bank) *StreamsScreen {
	return &StreamsScreen{infos: bank.Infos()}
}

func (s *StreamsScreen) Init() tea.Cmd { return nil }

func (s *StreamsScreen) Title() string { return "Streams" }

func (s *StreamsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the info currently shown.
func (s *StreamsScreen) Selected() aptitude.Info {
	return s.infos[s.selected]
}

func (s *StreamsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(s.infos) == 0 {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "up", "k":
		s.selected = (s.selected + len(s.infos) - 1) % len(s.infos)
	case "right", "l", "down", "j", "tab":
		s.selected = (s.selected + 1) % len(s.infos)
	}
	return s, nil
}

func (s *StreamsScreen) View(width, height int) string {
	if len(s.infos) == 0 {
		return ""
	}
	cw := components.ContentWidth(width)

	tabs := make([]string, len(s.infos))
	for i, info := range s.infos {
		style := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
		if i == s.selected {
			style = style.Foreground(theme.BgDark).Background(theme.StreamColor(string(info.Category))).Bold(true)
		}
		tabs[i] = style.Render(string(info.Category))
	}

	info := s.infos[s.selected]
	stream := string(info.Category)

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.StreamColor(stream)).Bold(true).Render(info.Title))
	card.WriteString("\n\n")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(info.Description))
	card.WriteString("\n\n")
	card.WriteString(section("Subjects", info.Subjects))
	card.WriteString("\n")
	card.WriteString(section("Careers", info.Careers))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(strings.Join(tabs, " "), width))
	b.WriteString("\n\n")
	b.WriteString(layout.CenterLine(components.StreamCard(card.String(), stream, cw), width))
	return b.String()
}

func section(heading string, items []string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(heading))
	for _, it := range items {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  • " + it))
	}
	return b.String()
}
