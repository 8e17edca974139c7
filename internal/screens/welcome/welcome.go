package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/ui/theme"
)

const tickInterval = 80 * time.Millisecond

const compassArt = `      N
      ▲
  W ◄─●─► E
      ▼
      S`

// needleFrames are the needle positions clockwise from north.
var needleFrames = []string{"▲", "◥", "►", "◢", "▼", "◣", "◄", "◤"}

// spinTicks is how long the needle spins: two full turns, ending on north.
var spinTicks = 2 * len(needleFrames)

type tickMsg time.Time

// WelcomeScreen spins a compass needle until it settles on north, then
// shows the banner. Any key moves on to the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// settled reports whether the needle has stopped on north.
func (w *WelcomeScreen) settled() bool {
	return w.ticks >= spinTicks
}

// needle returns the glyph the needle currently shows.
func (w *WelcomeScreen) needle() string {
	if w.settled() {
		return needleFrames[0]
	}
	return needleFrames[w.ticks%len(needleFrames)]
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.settled() {
			return w, nil
		}
		w.ticks++
		if w.settled() {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	needleColor := theme.Accent
	if w.settled() {
		needleColor = theme.Highlight
	}
	lines := strings.Split(compassArt, "\n")
	lines[1] = strings.Replace(lines[1], "▲",
		lipgloss.NewStyle().Foreground(needleColor).Bold(true).Render(w.needle()), 1)
	compass := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Join(lines, "\n"))

	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	sections := []string{compass, ""}

	if !w.settled() {
		sections = append(sections, dim.Render("finding your direction..."))
	} else {
		sections = append(sections,
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Find the stream that fits you."),
			"",
			dim.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
