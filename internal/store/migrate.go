package store

import (
	"context"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	assessmentEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "question_count", Type: field.TypeInt, Default: 0},
		{Name: "stream", Type: field.TypeString, Default: ""},
		{Name: "tally", Type: field.TypeJSON, Nullable: true},
		{Name: "responses", Type: field.TypeJSON, Nullable: true},
	}
	// assessmentEventsTable is the append-only log of session lifecycle
	// events. Completed assessments are the rows with action "complete".
	assessmentEventsTable = &schema.Table{
		Name:       "assessment_events",
		Columns:    assessmentEventsColumns,
		PrimaryKey: []*schema.Column{assessmentEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "assessmentevent_created_at", Columns: []*schema.Column{assessmentEventsColumns[2]}},
			{Name: "assessmentevent_session_id", Columns: []*schema.Column{assessmentEventsColumns[3]}},
			{Name: "assessmentevent_user_id_action", Columns: []*schema.Column{assessmentEventsColumns[4], assessmentEventsColumns[5]}},
		},
	}

	profilesColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString, Default: ""},
		{Name: "class", Type: field.TypeString, Default: ""},
		{Name: "location", Type: field.TypeString, Default: ""},
		{Name: "stream", Type: field.TypeString, Default: ""},
		{Name: "career_goals", Type: field.TypeString, Default: ""},
		{Name: "interests", Type: field.TypeJSON, Nullable: true},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// profilesTable holds one row per user.
	profilesTable = &schema.Table{
		Name:       "profiles",
		Columns:    profilesColumns,
		PrimaryKey: []*schema.Column{profilesColumns[0]},
	}

	tables = []*schema.Table{
		assessmentEventsTable,
		profilesTable,
	}
)

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
