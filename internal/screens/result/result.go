// Package result shows the recommended stream after an assessment.
package result

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

const (
	actionRetake = iota
	actionHome
)

var actionLabels = []string{"Retake Quiz", "Home"}

// ResultScreen displays a completed assessment's recommendation.
type ResultScreen struct {
	env     *screen.Env
	result  aptitude.Result
	retake  func(*screen.Env) screen.Screen
	focused int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. retake builds the screen for a new attempt.
func New[S screen.Screen](env *screen.Env, res aptitude.Result, retake func(*screen.Env) S) *ResultScreen {
	return &ResultScreen{
		env:    env,
		result: res,
		retake: func(e *screen.Env) screen.Screen { return retake(e) },
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	stream := string(s.result.Category)
	return func() tea.Msg { return screen.StreamMsg{Stream: stream} }
}

func (s *ResultScreen) Title() string {
	return "Your Recommendation"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		s.focused = (s.focused + len(actionLabels) - 1) % len(actionLabels)
	case "right", "l", "tab":
		s.focused = (s.focused + 1) % len(actionLabels)
	case "r":
		return s, s.retakeCmd()
	case "enter":
		if s.focused == actionRetake {
			return s, s.retakeCmd()
		}
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *ResultScreen) retakeCmd() tea.Cmd {
	next := s.retake(s.env)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ResultScreen) View(width, height int) string {
	info := s.result.Info
	stream := string(s.result.Category)
	cw := components.ContentWidth(width)
	accent := theme.StreamColor(stream)

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recommended stream"))
	card.WriteString("\n")
	card.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(info.Title))
	card.WriteString("\n\n")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(info.Description))
	card.WriteString("\n\n")
	card.WriteString(renderList("Subjects", info.Subjects, cw))
	card.WriteString("\n")
	card.WriteString(renderList("Careers", info.Careers, cw))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(components.StreamCard(card.String(), stream, cw), width))
	b.WriteString("\n\n")

	b.WriteString(layout.CenterLine(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Scores"), width))
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(layout.Divider(width), width))
	b.WriteString("\n")
	top := s.result.Tally.Max()
	for _, cs := range s.result.Tally {
		label := string(cs.Category)
		if bi, ok := s.env.Bank.Info(cs.Category); ok && bi.Title != "" {
			label = strings.Fields(bi.Title)[0]
		}
		b.WriteString(layout.CenterLine(components.ScoreBar(label, string(cs.Category), cs.Score, top, cw), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(components.ButtonRow(actionLabels, s.focused), width))
	return b.String()
}

func renderList(heading string, items []string, cw int) string {
	if len(items) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().Foreground(theme.TextDim).Render(heading + ": ")
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6 - lipgloss.Width(head)).
		Render(strings.Join(items, ", "))
	return lipgloss.JoinHorizontal(lipgloss.Top, head, body)
}

// Result returns the assessment outcome being shown.
func (s *ResultScreen) Result() aptitude.Result {
	return s.result
}
