package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	db  *sql.DB
	sb  *entsql.DialectBuilder
	seq *sequenceCounter
}

var resultColumns = []string{
	"sequence", "created_at", "session_id", "user_id", "stream", "tally", "responses",
}

func (r *eventRepo) AppendAssessmentEvent(ctx context.Context, data AssessmentEventData) error {
	if data.SessionID == "" || data.UserID == "" {
		return fmt.Errorf("append assessment event: session and user required")
	}
	switch data.Action {
	case ActionStart, ActionReset, ActionComplete:
	default:
		return fmt.Errorf("append assessment event: unknown action %q", data.Action)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var tally, responses any
	if data.Action == ActionComplete {
		if tally, err = encodeJSON(data.Tally); err != nil {
			return fmt.Errorf("encode tally: %w", err)
		}
		if responses, err = encodeJSON(data.Responses); err != nil {
			return fmt.Errorf("encode responses: %w", err)
		}
	}

	query, args := r.sb.Insert(assessmentEventsTable.Name).
		Columns("sequence", "created_at", "session_id", "user_id", "action",
			"question_count", "stream", "tally", "responses").
		Values(seqNum, time.Now().UTC().UnixMilli(), data.SessionID, data.UserID, string(data.Action),
			data.QuestionCount, data.Stream, tally, responses).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryResults(ctx context.Context, userID string, opts QueryOpts) ([]ResultRecord, error) {
	preds := []*entsql.Predicate{
		entsql.EQ("action", string(ActionComplete)),
	}
	if userID != "" {
		preds = append(preds, entsql.EQ("user_id", userID))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UTC().UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UTC().UnixMilli()))
	}

	sel := r.sb.Select(resultColumns...).
		From(r.sb.Table(assessmentEventsTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return records, nil
}

func (r *eventRepo) LatestResult(ctx context.Context, userID string) (*ResultRecord, error) {
	records, err := r.QueryResults(ctx, userID, QueryOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (r *eventRepo) StreamCounts(ctx context.Context, userID string) (map[string]int, error) {
	preds := []*entsql.Predicate{entsql.EQ("action", string(ActionComplete))}
	if userID != "" {
		preds = append(preds, entsql.EQ("user_id", userID))
	}
	query, args := r.sb.Select("stream", entsql.Count("*")).
		From(r.sb.Table(assessmentEventsTable.Name)).
		Where(entsql.And(preds...)).
		GroupBy("stream").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stream counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var stream string
		var n int
		if err := rows.Scan(&stream, &n); err != nil {
			return nil, fmt.Errorf("scan stream count: %w", err)
		}
		counts[stream] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stream counts: %w", err)
	}
	return counts, nil
}

func scanResult(rows *sql.Rows) (ResultRecord, error) {
	var (
		rec        ResultRecord
		createdAt  int64
		rawTally   []byte
		rawAnswers []byte
	)
	if err := rows.Scan(&rec.Sequence, &createdAt, &rec.SessionID, &rec.UserID,
		&rec.Stream, &rawTally, &rawAnswers); err != nil {
		return ResultRecord{}, fmt.Errorf("scan result: %w", err)
	}
	rec.Timestamp = time.UnixMilli(createdAt).UTC()
	if len(rawTally) > 0 {
		if err := json.Unmarshal(rawTally, &rec.Tally); err != nil {
			return ResultRecord{}, fmt.Errorf("decode tally for sequence %d: %w", rec.Sequence, err)
		}
	}
	if len(rawAnswers) > 0 {
		if err := json.Unmarshal(rawAnswers, &rec.Responses); err != nil {
			return ResultRecord{}, fmt.Errorf("decode responses for sequence %d: %w", rec.Sequence, err)
		}
	}
	return rec, nil
}

// encodeJSON marshals v to a JSON string for a JSON column.
func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
