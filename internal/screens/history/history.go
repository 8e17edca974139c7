// Package history lists past assessment results.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// pageSize caps how many results the screen loads.
const pageSize = 50

type historyLoadedMsg struct {
	Results []store.ResultRecord
	Counts  map[string]int
	Err     error
}

// HistoryScreen displays past results and how often each stream came up.
type HistoryScreen struct {
	env      *screen.Env
	results  []store.ResultRecord
	counts   map[string]int
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events, userID := s.env.Events, s.env.UserID
	return func() tea.Msg {
		if events == nil {
			return historyLoadedMsg{Err: fmt.Errorf("history is unavailable without a database")}
		}
		ctx := context.Background()

		results, err := events.QueryResults(ctx, userID, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		counts, err := events.StreamCounts(ctx, userID)
		if err != nil {
			return historyLoadedMsg{Results: results, Counts: map[string]int{}}
		}
		return historyLoadedMsg{Results: results, Counts: counts}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Scores"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
			s.counts = msg.Counts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Take the assessment!")
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(s.renderCounts(), width))
	b.WriteString("\n")
	b.WriteString(layout.CenterLine(layout.Divider(width), width))
	b.WriteString("\n")

	for i, rec := range s.results {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s", prefix,
			rec.Timestamp.Local().Format("Jan 02, 2006 15:04"), s.title(rec.Stream))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.StreamColor(rec.Stream)).Bold(true)
		}
		b.WriteString(layout.CenterLine(style.Render(line), width))
		b.WriteString("\n")

		if s.expanded[i] {
			top := 0
			for _, sc := range rec.Tally {
				top = max(top, sc.Score)
			}
			for _, sc := range rec.Tally {
				b.WriteString(layout.CenterLine(components.ScoreBar(sc.Stream, sc.Stream, sc.Score, top, cw), width))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// renderCounts renders one "stream ×n" badge per stream in bank order.
func (s *HistoryScreen) renderCounts() string {
	var parts []string
	for _, c := range s.env.Bank.Categories() {
		n := s.counts[string(c)]
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if n > 0 {
			style = lipgloss.NewStyle().Foreground(theme.StreamColor(string(c))).Bold(true)
		}
		parts = append(parts, style.Render(fmt.Sprintf("%s ×%d", c, n)))
	}
	return strings.Join(parts, "   ")
}

func (s *HistoryScreen) title(stream string) string {
	if info, ok := s.env.Bank.Info(aptitude.Category(stream)); ok && info.Title != "" {
		return info.Title
	}
	return stream
}
