package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/quiz"
	"github.com/abhisek/disha/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	latest *store.ResultRecord
	counts map[string]int
	err    error
}

func (m *mockEventRepo) AppendAssessmentEvent(context.Context, store.AssessmentEventData) error {
	return nil
}
func (m *mockEventRepo) QueryResults(context.Context, string, store.QueryOpts) ([]store.ResultRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) LatestResult(context.Context, string) (*store.ResultRecord, error) {
	return m.latest, m.err
}
func (m *mockEventRepo) StreamCounts(context.Context, string) (map[string]int, error) {
	return m.counts, m.err
}

func newEnv(events store.EventRepo) *screen.Env {
	return &screen.Env{Bank: aptitude.DefaultBank(), UserID: "asha", Events: events}
}

func TestHomeLoadsStats(t *testing.T) {
	events := &mockEventRepo{
		latest: &store.ResultRecord{Stream: "commerce"},
		counts: map[string]int{"commerce": 2, "arts": 1},
	}
	h := New(newEnv(events))

	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected load command")
	}
	_, cmd = h.Update(cmd())
	if h.stats.taken != 3 {
		t.Errorf("expected 3 taken, got %d", h.stats.taken)
	}
	if h.stats.latestTitle != "Commerce Stream" {
		t.Errorf("expected commerce title, got %q", h.stats.latestTitle)
	}
	if cmd == nil {
		t.Fatal("expected stream announcement")
	}
	if msg, ok := cmd().(screen.StreamMsg); !ok || msg.Stream != "commerce" {
		t.Errorf("expected StreamMsg{commerce}, got %#v", cmd())
	}

	view := h.View(120, 40)
	if !strings.Contains(view, "3 TAKEN") || !strings.Contains(view, "Commerce Stream") {
		t.Errorf("expected stats in view:\n%s", view)
	}
}

func TestHomeLoadFailureLeavesEmptyStats(t *testing.T) {
	h := New(newEnv(&mockEventRepo{err: errors.New("disk gone")}))
	_, cmd := h.Update(h.Init()())
	if cmd != nil {
		t.Error("expected no stream announcement")
	}
	if h.stats.taken != 0 || h.stats.latestStream != "" {
		t.Errorf("expected empty stats, got %+v", h.stats)
	}
}

func TestHomeWithoutStore(t *testing.T) {
	h := New(newEnv(nil))
	if h.Init() != nil {
		t.Error("expected no load without a store")
	}
	if !h.disabled[2] || !h.disabled[3] {
		t.Error("expected history and profile disabled")
	}

	// Digit 3 targets the disabled history entry.
	if _, cmd := h.Update(tea.KeyPressMsg{Code: '3', Text: "3"}); cmd != nil {
		t.Error("expected disabled item to do nothing")
	}
	if !strings.Contains(h.View(120, 40), "not being saved") {
		t.Error("expected notice about missing database")
	}
}

func TestHomeStartsQuiz(t *testing.T) {
	h := New(newEnv(nil))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("expected quiz screen, got %T", msg.Screen)
	}
}

func TestHomeRefreshReloads(t *testing.T) {
	events := &mockEventRepo{counts: map[string]int{"science": 1}}
	h := New(newEnv(events))
	h.Update(h.Init()())

	events.counts = map[string]int{"science": 2}
	h.Update(h.Refresh()())
	if h.stats.taken != 2 {
		t.Errorf("expected refreshed count 2, got %d", h.stats.taken)
	}
}
