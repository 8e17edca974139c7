package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AssessmentAction is the lifecycle step an assessment event records.
type AssessmentAction string

const (
	ActionStart    AssessmentAction = "start"
	ActionReset    AssessmentAction = "reset"
	ActionComplete AssessmentAction = "complete"
)

// StreamScore is one entry of a persisted tally, kept in canonical order.
type StreamScore struct {
	Stream string `json:"stream"`
	Score  int    `json:"score"`
}

// AssessmentEventData captures one assessment lifecycle event. Stream,
// Tally and Responses are only set for ActionComplete.
type AssessmentEventData struct {
	SessionID     string
	UserID        string
	Action        AssessmentAction
	QuestionCount int
	Stream        string
	Tally         []StreamScore
	Responses     []int
}

// ResultRecord is a completed assessment read back from the event log.
type ResultRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionID string
	UserID    string
	Stream    string
	Tally     []StreamScore
	Responses []int
}

// EventRepo provides append and query access to assessment events.
type EventRepo interface {
	// AppendAssessmentEvent records a session lifecycle event.
	AppendAssessmentEvent(ctx context.Context, data AssessmentEventData) error

	// QueryResults returns completed assessments for userID, newest first.
	QueryResults(ctx context.Context, userID string, opts QueryOpts) ([]ResultRecord, error)

	// LatestResult returns the most recent completed assessment, or nil.
	LatestResult(ctx context.Context, userID string) (*ResultRecord, error)

	// StreamCounts returns how many completed assessments recommended each
	// stream for userID.
	StreamCounts(ctx context.Context, userID string) (map[string]int, error)
}

// Profile is a student's profile.
type Profile struct {
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Class       string    `json:"class"`
	Location    string    `json:"location"`
	Stream      string    `json:"stream"`
	CareerGoals string    `json:"career_goals"`
	Interests   []string  `json:"interests"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileRepo manages student profiles keyed by user identity.
type ProfileRepo interface {
	// Get returns the profile for userID, or nil if none exists.
	Get(ctx context.Context, userID string) (*Profile, error)

	// Upsert creates or replaces a profile.
	Upsert(ctx context.Context, p Profile) error

	// SetStream records the recommended stream, creating the profile if
	// needed and leaving other fields untouched.
	SetStream(ctx context.Context, userID, stream string) error
}
