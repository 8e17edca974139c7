package quiz

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/result"
	"github.com/abhisek/disha/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	events []store.AssessmentEventData
}

func (m *mockEventRepo) AppendAssessmentEvent(_ context.Context, data store.AssessmentEventData) error {
	m.events = append(m.events, data)
	return nil
}
func (m *mockEventRepo) QueryResults(context.Context, string, store.QueryOpts) ([]store.ResultRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) LatestResult(context.Context, string) (*store.ResultRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) StreamCounts(context.Context, string) (map[string]int, error) {
	return map[string]int{}, nil
}

func (m *mockEventRepo) actions() []store.AssessmentAction {
	out := make([]store.AssessmentAction, len(m.events))
	for i, e := range m.events {
		out[i] = e.Action
	}
	return out
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestQuiz(events store.EventRepo) *QuizScreen {
	q := New(&screen.Env{Bank: aptitude.DefaultBank(), UserID: "asha", Events: events})
	run(q.Init())
	return q
}

// run executes cmd the way the Bubble Tea runtime would and returns its
// message.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// answer sends one digit key per score and returns the last command.
func answer(t *testing.T, q *QuizScreen, scores []int) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, s := range scores {
		_, cmd = q.Update(key(rune('0' + s)))
	}
	return cmd
}

func TestQuizCompletesWithResult(t *testing.T) {
	events := &mockEventRepo{}
	q := newTestQuiz(events)

	cmd := answer(t, q, []int{1, 5, 1, 1, 1, 5, 1, 1, 1, 5})
	if cmd == nil {
		t.Fatal("expected a command after the last answer")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	rs, ok := msg.Screen.(*result.ResultScreen)
	if !ok {
		t.Fatalf("expected result screen, got %T", msg.Screen)
	}
	if got := rs.Result().Category; got != aptitude.Category("arts") {
		t.Errorf("expected arts, got %q", got)
	}

	got := events.actions()
	want := []store.AssessmentAction{store.ActionStart, store.ActionComplete}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected events %v, got %v", want, got)
	}
	if events.events[1].Stream != "arts" {
		t.Errorf("expected arts recorded, got %q", events.events[1].Stream)
	}
}

func TestQuizAdvancesWithEnter(t *testing.T) {
	q := newTestQuiz(nil)

	// The cursor starts on Neutral.
	q.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if q.runner.Session().Index() != 1 {
		t.Fatalf("expected index 1, got %d", q.runner.Session().Index())
	}
	if got := q.runner.Session().Responses(); got[0] != 3 {
		t.Errorf("expected neutral score 3, got %d", got[0])
	}

	q.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	q.Update(tea.KeyPressMsg{Code: tea.KeySpace})
	if got := q.runner.Session().Responses(); got[1] != 4 {
		t.Errorf("expected agree score 4, got %d", got[1])
	}
}

func TestQuizIgnoresOutOfScaleDigits(t *testing.T) {
	q := newTestQuiz(nil)

	for _, r := range []rune{'0', '6', '9'} {
		q.Update(key(r))
	}
	if q.runner.Session().Index() != 0 {
		t.Errorf("expected no progress, got index %d", q.runner.Session().Index())
	}
}

func TestQuizRestart(t *testing.T) {
	events := &mockEventRepo{}
	q := newTestQuiz(events)

	answer(t, q, []int{5, 4, 3})
	_, cmd := q.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	run(cmd)

	if q.runner.Session().Index() != 0 {
		t.Errorf("expected index 0 after restart, got %d", q.runner.Session().Index())
	}
	if n := len(q.runner.Session().Responses()); n != 0 {
		t.Errorf("expected no responses after restart, got %d", n)
	}
	got := events.actions()
	if len(got) != 2 || got[1] != store.ActionReset {
		t.Errorf("expected start then reset, got %v", got)
	}
}

func TestQuizView(t *testing.T) {
	q := newTestQuiz(nil)
	answer(t, q, []int{2, 2})

	view := q.View(100, 40)
	if !strings.Contains(view, "Question 3 of 10") {
		t.Errorf("expected question counter in view:\n%s", view)
	}
	third, _ := q.env.Bank.ItemAt(2)
	if !strings.Contains(view, strings.Fields(third.Text)[0]) {
		t.Errorf("expected question text in view")
	}
	if !strings.Contains(view, "Strongly Agree") {
		t.Errorf("expected scale options in view")
	}
}

func TestQuizRecordsOnlyFromCommands(t *testing.T) {
	events := &mockEventRepo{}
	q := New(&screen.Env{Bank: aptitude.DefaultBank(), UserID: "asha", Events: events})

	initCmd := q.Init()
	if len(events.events) != 0 {
		t.Fatalf("Init wrote %v before its command ran", events.actions())
	}
	run(initCmd)
	if got := events.actions(); len(got) != 1 || got[0] != store.ActionStart {
		t.Fatalf("expected start after running Init command, got %v", got)
	}

	cmd := answer(t, q, []int{5, 1, 1, 1, 5, 1, 1, 1, 5, 1})
	if len(events.events) != 1 {
		t.Fatalf("Update wrote %v before its command ran", events.actions())
	}
	if _, ok := run(cmd).(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	got := events.actions()
	if len(got) != 2 || got[1] != store.ActionComplete {
		t.Fatalf("expected complete after running the command, got %v", got)
	}
	if events.events[1].Stream != "science" {
		t.Errorf("expected science recorded, got %q", events.events[1].Stream)
	}

	_, cmd = q.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	if len(events.events) != 2 {
		t.Fatalf("restart wrote %v before its command ran", events.actions())
	}
	run(cmd)
	if got := events.actions(); got[len(got)-1] != store.ActionReset {
		t.Errorf("expected reset recorded, got %v", got)
	}
}
