package models

import (
	"database/sql"
	"time"
)

// Suggestion represents a row in the suggestions table.
type Suggestion struct {
	SuggestionID   string         `db:"suggestion_id"`
	PracticeID     string         `db:"practice_id"`
	ProfileID      string         `db:"profile_id"`
	SubmitterID    string         `db:"submitter_id"`
	TargetTable    string         `db:"target_table"`
	TargetField    string         `db:"target_field"`
	FieldLabel     string         `db:"field_label"`
	CurrentValue   string         `db:"current_value"`
	SuggestedValue string         `db:"suggested_value"`
	Comment        string         `db:"comment"`
	Status         string         `db:"status"`
	ReviewerID     sql.NullString `db:"reviewer_id"`
	AppliedValue   sql.NullString `db:"applied_value"`
	ReviewNote     sql.NullString `db:"review_note"`
	CreatedAt      time.Time      `db:"created_at"`
	ReviewedAt     sql.NullTime   `db:"reviewed_at"`
}
