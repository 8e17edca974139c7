package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/history"
	"github.com/abhisek/disha/internal/screens/profile"
	"github.com/abhisek/disha/internal/screens/quiz"
	"github.com/abhisek/disha/internal/screens/streams"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
)

// stats summarizes the user's past assessments.
type stats struct {
	taken        int
	latestStream string
	latestTitle  string
}

// loadedMsg carries stats read from the store.
type loadedMsg struct {
	stats stats
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	env        *screen.Env
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	stats      stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	menuLabels := []string{"TAKE ASSESSMENT", "EXPLORE STREAMS", "HISTORY", "PROFILE", "EXIT"}
	disabled := map[int]bool{
		2: env.Events == nil,
		3: env.Profiles == nil,
	}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen { return quiz.New(env) })},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return streams.New(env.Bank) })},
		{Label: menuLabels[2], Disabled: disabled[2], Action: push(func() screen.Screen { return history.New(env) })},
		{Label: menuLabels[3], Disabled: disabled[3], Action: push(func() screen.Screen { return profile.New(env) })},
		{Label: menuLabels[4], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		env:        env,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		disabled:   disabled,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Refresh reloads stats when the screen becomes active again.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	env := h.env
	if env.Events == nil {
		return nil
	}
	return func() tea.Msg {
		return loadedMsg{stats: loadStats(context.Background(), env)}
	}
}

// loadStats reads the assessment count and latest recommendation. Failures
// are logged and leave the stats empty.
func loadStats(ctx context.Context, env *screen.Env) stats {
	var st stats
	counts, err := env.Events.StreamCounts(ctx, env.UserID)
	if err != nil {
		env.Log().Warn("load stream counts", zap.Error(err))
		return st
	}
	for _, n := range counts {
		st.taken += n
	}

	latest, err := env.Events.LatestResult(ctx, env.UserID)
	if err != nil {
		env.Log().Warn("load latest result", zap.Error(err))
		return st
	}
	if latest != nil {
		st.latestStream = latest.Stream
		st.latestTitle = latest.Stream
		if info, ok := env.Bank.Info(aptitude.Category(latest.Stream)); ok {
			st.latestTitle = info.Title
		}
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(loadedMsg); ok {
		h.stats = m.stats
		if m.stats.latestStream == "" {
			return h, nil
		}
		stream := m.stats.latestStream
		return h, func() tea.Msg { return screen.StreamMsg{Stream: stream} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		variant := MascotIdle
		if h.stats.latestStream != "" {
			variant = MascotGuiding
		}
		sections = append(sections, renderMascotBox(variant, h.stats.latestStream, cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if termHeight < 24 {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	if h.env.Events == nil {
		sections = append(sections, renderNotice("Results are not being saved (no database)", cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-5", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
