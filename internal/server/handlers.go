package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/guidance"
	"github.com/abhisek/disha/internal/store"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	return nil
}

// parseScore converts a JSON number to a score. Fractional or missing
// values are invalid scores, not malformed requests.
func parseScore(n json.Number) (int, error) {
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, fmt.Errorf("score %q: %w", n.String(), aptitude.ErrInvalidScore)
	}
	return v, nil
}

func (s *Server) handleStreams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"streams": s.bank.Infos()})
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	qs := s.bank.Questions()
	out := make([]questionView, len(qs))
	for i, q := range qs {
		out[i] = questionView{Index: i, Text: q.Text, Category: q.Category}
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": out})
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"min":     aptitude.MinScore,
		"max":     aptitude.MaxScore,
		"options": aptitude.Scale(),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Responses []json.Number `json:"responses"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	responses := make([]int, len(req.Responses))
	for i, n := range req.Responses {
		v, err := parseScore(n)
		if err != nil {
			writeError(w, r, fmt.Errorf("response %d: %w", i, err))
			return
		}
		responses[i] = v
	}

	res, err := aptitude.Recommend(s.bank, responses)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newResultView(res))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	runner := guidance.NewRunner(s.bank, user, s.recorder, s.logger)
	runner.Start(r.Context())
	s.sessions.add(runner)
	writeJSON(w, http.StatusCreated, newSessionView(runner))
}

// withSession looks up the caller's session and runs fn holding its lock.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*guidance.Runner) error) {
	id := chi.URLParam(r, "sessionID")
	e, ok := s.sessions.get(id, UserFromContext(r.Context()))
	if !ok {
		writeError(w, r, fmt.Errorf("session %s: %w", id, errNotFound))
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.runner); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(e.runner))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(*guidance.Runner) error { return nil })
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score json.Number `json:"score"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.withSession(w, r, func(runner *guidance.Runner) error {
		score, err := parseScore(req.Score)
		if err != nil {
			return err
		}
		_, err = runner.Submit(r.Context(), score)
		return err
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(runner *guidance.Runner) error {
		runner.Reset(r.Context())
		return nil
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.remove(id, UserFromContext(r.Context())) {
		writeError(w, r, fmt.Errorf("session %s: %w", id, errNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeError(w, r, errUnavailable)
		return
	}
	opts := store.QueryOpts{
		Limit:  parseIntDefault(r.URL.Query().Get("limit"), 50),
		Before: int64(parseIntDefault(r.URL.Query().Get("before"), 0)),
	}
	records, err := s.events.QueryResults(r.Context(), UserFromContext(r.Context()), opts)
	if err != nil {
		s.logger.Error("query results", zap.Error(err))
		writeError(w, r, err)
		return
	}
	out := make([]resultRecordView, len(records))
	for i, rec := range records {
		out[i] = s.newResultRecordView(rec)
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (s *Server) handleLatestResult(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeError(w, r, errUnavailable)
		return
	}
	rec, err := s.events.LatestResult(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		s.logger.Error("latest result", zap.Error(err))
		writeError(w, r, err)
		return
	}
	if rec == nil {
		writeError(w, r, fmt.Errorf("no completed assessment: %w", errNotFound))
		return
	}
	writeJSON(w, http.StatusOK, s.newResultRecordView(*rec))
}

func (s *Server) handleStreamCounts(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeError(w, r, errUnavailable)
		return
	}
	counts, err := s.events.StreamCounts(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		s.logger.Error("stream counts", zap.Error(err))
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"counts": counts})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		writeError(w, r, errUnavailable)
		return
	}
	p, err := s.profiles.Get(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		s.logger.Error("get profile", zap.Error(err))
		writeError(w, r, err)
		return
	}
	if p == nil {
		writeError(w, r, fmt.Errorf("profile: %w", errNotFound))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		writeError(w, r, errUnavailable)
		return
	}
	var req struct {
		Name        string   `json:"name"`
		Class       string   `json:"class"`
		Location    string   `json:"location"`
		Stream      string   `json:"stream"`
		CareerGoals string   `json:"career_goals"`
		Interests   []string `json:"interests"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Stream != "" {
		if _, ok := s.bank.Info(aptitude.Category(req.Stream)); !ok {
			writeError(w, r, fmt.Errorf("%w: unknown stream %q", errBadRequest, req.Stream))
			return
		}
	}

	user := UserFromContext(r.Context())
	stream := req.Stream
	if stream == "" {
		// An omitted stream keeps the one recorded by past assessments.
		existing, err := s.profiles.Get(r.Context(), user)
		if err != nil {
			s.logger.Error("load profile", zap.Error(err))
			writeError(w, r, err)
			return
		}
		if existing != nil {
			stream = existing.Stream
		}
	}
	p := store.Profile{
		UserID:      user,
		Name:        strings.TrimSpace(req.Name),
		Class:       strings.TrimSpace(req.Class),
		Location:    strings.TrimSpace(req.Location),
		Stream:      stream,
		CareerGoals: strings.TrimSpace(req.CareerGoals),
		Interests:   req.Interests,
	}
	if err := s.profiles.Upsert(r.Context(), p); err != nil {
		s.logger.Error("upsert profile", zap.Error(err))
		writeError(w, r, err)
		return
	}
	saved, err := s.profiles.Get(r.Context(), user)
	if err != nil || saved == nil {
		s.logger.Error("reload profile", zap.Error(err))
		writeError(w, r, fmt.Errorf("reload profile: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
