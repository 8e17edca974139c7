// Package guidance runs one user's assessment: it drives an
// aptitude.Session and reports lifecycle events to a Recorder.
package guidance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/aptitude"
)

// Runner owns a single assessment session for one user. It is not safe for
// concurrent use; callers that share a Runner must serialize access.
type Runner struct {
	id       string
	userID   string
	session  *aptitude.Session
	recorder Recorder
	logger   *zap.Logger
}

// NewRunner creates a Runner with a fresh session id. A nil recorder
// disables recording; a nil logger disables logging.
func NewRunner(bank *aptitude.Bank, userID string, recorder Recorder, logger *zap.Logger) *Runner {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Runner{
		id:       id,
		userID:   userID,
		session:  aptitude.NewSession(bank),
		recorder: recorder,
		logger:   logger.With(zap.String("session_id", id), zap.String("user_id", userID)),
	}
}

// ID returns the session id.
func (r *Runner) ID() string { return r.id }

// UserID returns the owning user.
func (r *Runner) UserID() string { return r.userID }

// Session exposes the underlying session for read access.
func (r *Runner) Session() *aptitude.Session { return r.session }

// RecordFunc reports one lifecycle event to the recorder. Failures are
// logged, never returned. It captures everything it needs when created, so
// it may run later or on another goroutine.
type RecordFunc func(ctx context.Context)

// Begin returns the step that records the start of the assessment.
func (r *Runner) Begin() RecordFunc {
	id, user, n := r.id, r.userID, r.session.Bank().Count()
	r.logger.Debug("assessment started", zap.Int("questions", n))
	return func(ctx context.Context) {
		if err := r.recorder.Started(ctx, id, user, n); err != nil {
			r.logger.Warn("record start failed", zap.Error(err))
		}
	}
}

// Answer applies score to the session. When the answer completes the
// assessment it also returns the step that records the result; otherwise
// record is nil. Errors come from the session unchanged.
func (r *Runner) Answer(score int) (done bool, record RecordFunc, err error) {
	if err := r.session.Submit(score); err != nil {
		r.logger.Debug("answer rejected", zap.Int("score", score), zap.Error(err))
		return false, nil, err
	}
	res, done := r.session.Result()
	if !done {
		return false, nil, nil
	}

	r.logger.Info("assessment completed",
		zap.String("stream", string(res.Category)),
		zap.Any("tally", res.Tally.Map()),
	)
	id, user, responses := r.id, r.userID, r.session.Responses()
	return true, func(ctx context.Context) {
		if err := r.recorder.Completed(ctx, id, user, res, responses); err != nil {
			r.logger.Warn("record result failed", zap.Error(err))
		}
	}, nil
}

// Restart discards all answers and returns the step that records the reset.
func (r *Runner) Restart() RecordFunc {
	r.session.Reset()
	r.logger.Debug("assessment reset")
	id, user, n := r.id, r.userID, r.session.Bank().Count()
	return func(ctx context.Context) {
		if err := r.recorder.Reset(ctx, id, user, n); err != nil {
			r.logger.Warn("record reset failed", zap.Error(err))
		}
	}
}

// Start records the beginning of the assessment.
func (r *Runner) Start(ctx context.Context) {
	r.Begin()(ctx)
}

// Submit answers the current question and records the result when the
// answer completes the assessment. It reports whether it did.
func (r *Runner) Submit(ctx context.Context, score int) (bool, error) {
	done, record, err := r.Answer(score)
	if record != nil {
		record(ctx)
	}
	return done, err
}

// Reset discards all answers and records the reset.
func (r *Runner) Reset(ctx context.Context) {
	r.Restart()(ctx)
}
