// Package quiz is the assessment screen: one Likert question at a time.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/guidance"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/result"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// QuizScreen drives one assessment run.
type QuizScreen struct {
	env    *screen.Env
	runner *guidance.Runner
	likert components.Likert
	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen with a fresh session.
func New(env *screen.Env) *QuizScreen {
	return &QuizScreen{
		env:    env,
		runner: guidance.NewRunner(env.Bank, env.UserID, env.Recorder(), env.Log()),
		likert: components.NewLikert(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return recordCmd(s.runner.Begin())
}

// recordCmd runs a recording step off the update loop.
func recordCmd(record guidance.RecordFunc) tea.Cmd {
	if record == nil {
		return nil
	}
	return func() tea.Msg {
		record(context.Background())
		return nil
	}
}

func (s *QuizScreen) Title() string {
	return "Aptitude Assessment"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-5", Description: "Answer"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Ctrl+R", Description: "Restart"},
		{Key: "Esc", Description: "Quit test"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if kmsg.String() == "ctrl+r" {
		record := s.runner.Restart()
		s.likert.Reset()
		s.errMsg = ""
		return s, recordCmd(record)
	}

	var score int
	s.likert, score = s.likert.Update(kmsg)
	if score == 0 {
		return s, nil
	}
	return s.submit(score)
}

func (s *QuizScreen) submit(score int) (screen.Screen, tea.Cmd) {
	done, record, err := s.runner.Answer(score)
	if err != nil {
		switch {
		case errors.Is(err, aptitude.ErrInvalidScore):
			s.errMsg = fmt.Sprintf("Choose a score between %d and %d.", aptitude.MinScore, aptitude.MaxScore)
		default:
			s.env.Log().Error("submit answer", zap.Error(err))
			s.errMsg = err.Error()
		}
		return s, nil
	}
	s.errMsg = ""
	s.likert.Reset()

	if !done {
		return s, nil
	}
	res, _ := s.runner.Session().Result()
	next := result.New(s.env, res, New)
	return s, func() tea.Msg {
		record(context.Background())
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *QuizScreen) View(width, height int) string {
	sess := s.runner.Session()
	q, err := sess.CurrentQuestion()
	if err != nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	counter := fmt.Sprintf("Question %d of %d", sess.Index()+1, sess.Bank().Count())
	b.WriteString(layout.CenterLine(lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter), width))
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(components.NewProgressBar("", sess.Progress(), true, cw).View(), width))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw - 6).
		Align(lipgloss.Center).
		Render(q.Text)
	b.WriteString(layout.CenterLine(
		components.Card(question, cw, lipgloss.NewStyle().BorderForeground(theme.Border)), width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.likert.View()))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.CenterLine(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), width))
	}
	return b.String()
}
