package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type profileRepo struct {
	db *sql.DB
	sb *entsql.DialectBuilder
}

func (r *profileRepo) Get(ctx context.Context, userID string) (*Profile, error) {
	query, args := r.sb.Select("user_id", "name", "class", "location", "stream",
		"career_goals", "interests", "updated_at").
		From(r.sb.Table(profilesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	var (
		p         Profile
		interests []byte
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.UserID, &p.Name, &p.Class,
		&p.Location, &p.Stream, &p.CareerGoals, &interests, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &p.Interests); err != nil {
			return nil, fmt.Errorf("decode interests: %w", err)
		}
	}
	p.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &p, nil
}

func (r *profileRepo) Upsert(ctx context.Context, p Profile) error {
	if p.UserID == "" {
		return fmt.Errorf("upsert profile: user id required")
	}
	interests, err := encodeJSON(p.Interests)
	if err != nil {
		return fmt.Errorf("encode interests: %w", err)
	}

	query, args := r.sb.Insert(profilesTable.Name).
		Columns("user_id", "name", "class", "location", "stream", "career_goals", "interests", "updated_at").
		Values(p.UserID, p.Name, p.Class, p.Location, p.Stream, p.CareerGoals, interests, time.Now().UTC().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *profileRepo) SetStream(ctx context.Context, userID, stream string) error {
	if userID == "" {
		return fmt.Errorf("set stream: user id required")
	}
	now := time.Now().UTC().UnixMilli()

	query, args := r.sb.Insert(profilesTable.Name).
		Columns("user_id", "stream", "updated_at").
		Values(userID, stream, now).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("stream")
				u.SetExcluded("updated_at")
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set profile stream: %w", err)
	}
	return nil
}
