package guidance

import (
	"context"
	"fmt"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/store"
)

// Recorder receives assessment lifecycle notifications.
type Recorder interface {
	Started(ctx context.Context, sessionID, userID string, questions int) error
	Reset(ctx context.Context, sessionID, userID string, questions int) error
	Completed(ctx context.Context, sessionID, userID string, result aptitude.Result, responses []int) error
}

// StoreRecorder writes lifecycle events to the event log and mirrors the
// recommended stream into the user's profile.
type StoreRecorder struct {
	events   store.EventRepo
	profiles store.ProfileRepo
}

// NewStoreRecorder returns a Recorder backed by the store. profiles may be
// nil, in which case profiles are not updated.
func NewStoreRecorder(events store.EventRepo, profiles store.ProfileRepo) *StoreRecorder {
	return &StoreRecorder{events: events, profiles: profiles}
}

func (r *StoreRecorder) Started(ctx context.Context, sessionID, userID string, questions int) error {
	return r.events.AppendAssessmentEvent(ctx, store.AssessmentEventData{
		SessionID:     sessionID,
		UserID:        userID,
		Action:        store.ActionStart,
		QuestionCount: questions,
	})
}

func (r *StoreRecorder) Reset(ctx context.Context, sessionID, userID string, questions int) error {
	return r.events.AppendAssessmentEvent(ctx, store.AssessmentEventData{
		SessionID:     sessionID,
		UserID:        userID,
		Action:        store.ActionReset,
		QuestionCount: questions,
	})
}

func (r *StoreRecorder) Completed(ctx context.Context, sessionID, userID string, result aptitude.Result, responses []int) error {
	err := r.events.AppendAssessmentEvent(ctx, store.AssessmentEventData{
		SessionID:     sessionID,
		UserID:        userID,
		Action:        store.ActionComplete,
		QuestionCount: len(responses),
		Stream:        string(result.Category),
		Tally:         StreamScores(result.Tally),
		Responses:     responses,
	})
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	if r.profiles == nil {
		return nil
	}
	if err := r.profiles.SetStream(ctx, userID, string(result.Category)); err != nil {
		return fmt.Errorf("update profile stream: %w", err)
	}
	return nil
}

// StreamScores converts a tally to its persisted form, keeping its order.
func StreamScores(t aptitude.Tally) []store.StreamScore {
	out := make([]store.StreamScore, len(t))
	for i, cs := range t {
		out[i] = store.StreamScore{Stream: string(cs.Category), Score: cs.Score}
	}
	return out
}

type nopRecorder struct{}

func (nopRecorder) Started(context.Context, string, string, int) error { return nil }
func (nopRecorder) Reset(context.Context, string, string, int) error   { return nil }
func (nopRecorder) Completed(context.Context, string, string, aptitude.Result, []int) error {
	return nil
}
