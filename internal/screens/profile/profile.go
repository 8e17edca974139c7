// Package profile edits the student's profile.
package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

const (
	fieldName = iota
	fieldClass
	fieldLocation
	fieldGoals
	fieldInterests
	fieldCount
)

type loadedMsg struct {
	profile *store.Profile
	err     error
}

type savedMsg struct {
	profile store.Profile
	err     error
}

// ProfileScreen shows and edits the current user's profile. The stream is
// read-only; it is set by completed assessments.
type ProfileScreen struct {
	env     *screen.Env
	inputs  []components.TextInput
	focus   int
	current store.Profile
	loaded  bool
	status  string
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen for env.UserID.
func New(env *screen.Env) *ProfileScreen {
	s := &ProfileScreen{
		env:     env,
		current: store.Profile{UserID: env.UserID},
	}
	s.setInputs(s.current)
	return s
}

func (s *ProfileScreen) setInputs(p store.Profile) {
	s.inputs = []components.TextInput{
		fieldName:      components.NewTextInput("Name", "Your name", p.Name, 64),
		fieldClass:     components.NewTextInput("Class", "e.g. 10th", p.Class, 16),
		fieldLocation:  components.NewTextInput("Location", "City, State", p.Location, 64),
		fieldGoals:     components.NewTextInput("Career goals", "What do you want to become?", p.CareerGoals, 160),
		fieldInterests: components.NewTextInput("Interests", "comma separated", strings.Join(p.Interests, ", "), 160),
	}
	s.focus = fieldName
	s.inputs[s.focus].Focus()
}

func (s *ProfileScreen) Init() tea.Cmd {
	repo, userID := s.env.Profiles, s.env.UserID
	if repo == nil {
		s.loaded = true
		s.errMsg = "profiles are unavailable without a database"
		return nil
	}
	return func() tea.Msg {
		p, err := repo.Get(context.Background(), userID)
		return loadedMsg{profile: p, err: err}
	}
}

func (s *ProfileScreen) Title() string { return "Profile" }

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

// Profile returns the profile as currently edited.
func (s *ProfileScreen) Profile() store.Profile {
	p := s.current
	p.Name = strings.TrimSpace(s.inputs[fieldName].Value())
	p.Class = strings.TrimSpace(s.inputs[fieldClass].Value())
	p.Location = strings.TrimSpace(s.inputs[fieldLocation].Value())
	p.CareerGoals = strings.TrimSpace(s.inputs[fieldGoals].Value())
	p.Interests = splitInterests(s.inputs[fieldInterests].Value())
	return p
}

func splitInterests(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.env.Log().Warn("load profile", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
			return s, nil
		}
		if msg.profile != nil {
			s.current = *msg.profile
			s.setInputs(s.current)
		}
		return s, nil

	case savedMsg:
		if msg.err != nil {
			s.env.Log().Error("save profile", zap.Error(msg.err))
			s.errMsg = msg.err.Error()
			s.status = ""
			return s, nil
		}
		s.current = msg.profile
		s.errMsg = ""
		s.status = "Saved."
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.move(1)
		case "shift+tab", "up":
			return s, s.move(-1)
		case "ctrl+s", "enter":
			return s, s.save()
		}
		s.status = ""
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *ProfileScreen) move(delta int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = (s.focus + delta + fieldCount) % fieldCount
	return s.inputs[s.focus].Focus()
}

func (s *ProfileScreen) save() tea.Cmd {
	repo := s.env.Profiles
	if repo == nil {
		return nil
	}
	p := s.Profile()
	return func() tea.Msg {
		err := repo.Upsert(context.Background(), p)
		return savedMsg{profile: p, err: err}
	}
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var form strings.Builder
	for i, in := range s.inputs {
		if i > 0 {
			form.WriteString("\n")
		}
		form.WriteString(in.View())
	}
	form.WriteString("\n\n")
	form.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(14).Render("Stream"))
	form.WriteString(s.streamLabel())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Signed in as %s", s.env.UserID)), width))
	b.WriteString("\n\n")
	b.WriteString(layout.CenterLine(components.StreamCard(form.String(), s.current.Stream, cw), width))
	b.WriteString("\n")

	switch {
	case s.errMsg != "":
		b.WriteString(layout.CenterLine(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg), width))
	case s.status != "":
		b.WriteString(layout.CenterLine(lipgloss.NewStyle().Foreground(theme.Success).Render(s.status), width))
	case !s.loaded:
		b.WriteString(layout.CenterLine(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading..."), width))
	}
	return b.String()
}

func (s *ProfileScreen) streamLabel() string {
	if s.current.Stream == "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("take the assessment to find out")
	}
	label := s.current.Stream
	if info, ok := s.env.Bank.Info(aptitude.Category(label)); ok {
		label = info.Title
	}
	return lipgloss.NewStyle().Foreground(theme.StreamColor(s.current.Stream)).Bold(true).Render(label)
}
