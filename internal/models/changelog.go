package models

import "time"

// ChangeEntry represents a row in the change_entries table.
// Rows are append-only; there is no update or delete path.
type ChangeEntry struct {
	EntryID       string    `db:"entry_id"`
	OwnerUserID   string    `db:"owner_user_id"`
	ProfileID     string    `db:"profile_id"`
	Category      string    `db:"category"`
	FieldLabel    string    `db:"field_label"`
	PreviousValue string    `db:"previous_value"`
	NewValue      string    `db:"new_value"`
	Metadata      []byte    `db:"metadata"` // JSONB
	ActorID       string    `db:"actor_id"`
	CreatedAt     time.Time `db:"created_at"`
}
