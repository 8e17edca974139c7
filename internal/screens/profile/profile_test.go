package profile

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/store"
)

// mockProfileRepo implements store.ProfileRepo for testing.
type mockProfileRepo struct {
	profiles map[string]store.Profile
}

func (m *mockProfileRepo) Get(_ context.Context, userID string) (*store.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockProfileRepo) Upsert(_ context.Context, p store.Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *mockProfileRepo) SetStream(_ context.Context, userID, stream string) error {
	p := m.profiles[userID]
	p.UserID, p.Stream = userID, stream
	m.profiles[userID] = p
	return nil
}

func newTestProfile(repo store.ProfileRepo) *ProfileScreen {
	s := New(&screen.Env{Bank: aptitude.DefaultBank(), UserID: "asha", Profiles: repo})
	if cmd := s.Init(); cmd != nil {
		s.Update(cmd())
	}
	return s
}

func typeText(s *ProfileScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestProfileLoadsExisting(t *testing.T) {
	repo := &mockProfileRepo{profiles: map[string]store.Profile{
		"asha": {UserID: "asha", Name: "Asha", Class: "10th", Stream: "science", Interests: []string{"chess", "robots"}},
	}}
	s := newTestProfile(repo)

	p := s.Profile()
	if p.Name != "Asha" || p.Class != "10th" {
		t.Errorf("expected loaded fields, got %+v", p)
	}
	if got := strings.Join(p.Interests, "|"); got != "chess|robots" {
		t.Errorf("expected interests round trip, got %q", got)
	}

	view := s.View(100, 40)
	if !strings.Contains(view, "Science Stream") {
		t.Errorf("expected stream title in view")
	}
}

func TestProfileEditAndSave(t *testing.T) {
	repo := &mockProfileRepo{profiles: map[string]store.Profile{
		"asha": {UserID: "asha", Stream: "commerce"},
	}}
	s := newTestProfile(repo)

	typeText(s, "Asha")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "Pune")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "art, music ,, coding")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	s.Update(cmd())

	saved := repo.profiles["asha"]
	if saved.Name != "Asha" || saved.Location != "Pune" {
		t.Errorf("unexpected saved profile %+v", saved)
	}
	if saved.Stream != "commerce" {
		t.Errorf("expected stream to be kept, got %q", saved.Stream)
	}
	if got := strings.Join(saved.Interests, "|"); got != "art|music|coding" {
		t.Errorf("expected trimmed interests, got %q", got)
	}
	if s.status != "Saved." {
		t.Errorf("expected saved status, got %q", s.status)
	}
}

func TestProfileFocusWraps(t *testing.T) {
	s := newTestProfile(&mockProfileRepo{profiles: map[string]store.Profile{}})

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldInterests {
		t.Errorf("expected focus on interests, got %d", s.focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.focus != fieldName {
		t.Errorf("expected focus on name, got %d", s.focus)
	}
}

func TestProfileWithoutStore(t *testing.T) {
	s := newTestProfile(nil)
	if !strings.Contains(s.View(100, 40), "unavailable") {
		t.Error("expected unavailable message")
	}
	if cmd := s.save(); cmd != nil {
		t.Error("expected no save without a store")
	}
}
