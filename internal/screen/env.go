package screen

import (
	"go.uber.org/zap"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/guidance"
	"github.com/abhisek/disha/internal/store"
)

// Env carries the collaborators shared by all screens. Events and Profiles
// may be nil when persistence is unavailable.
type Env struct {
	Bank     *aptitude.Bank
	UserID   string
	Events   store.EventRepo
	Profiles store.ProfileRepo
	Logger   *zap.Logger
}

// Recorder returns the recorder assessments should report to, or nil.
func (e *Env) Recorder() guidance.Recorder {
	if e.Events == nil {
		return nil
	}
	return guidance.NewStoreRecorder(e.Events, e.Profiles)
}

// Log returns the logger, never nil.
func (e *Env) Log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// StreamMsg announces the user's latest recommended stream so the frame
// can show it.
type StreamMsg struct {
	Stream string
}
