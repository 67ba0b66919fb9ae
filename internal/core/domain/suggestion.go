package domain

import "time"

// SuggestionStatus is the review state of a client-submitted suggestion.
// PENDING transitions to exactly one of the terminal states, once.
type SuggestionStatus string

const (
	SuggestionPending           SuggestionStatus = "PENDING"
	SuggestionAccepted          SuggestionStatus = "ACCEPTED"
	SuggestionAcceptedWithModif SuggestionStatus = "ACCEPTED_WITH_MODIFICATION"
	SuggestionRejected          SuggestionStatus = "REJECTED"
)

// IsTerminal reports whether s is a final review state.
func (s SuggestionStatus) IsTerminal() bool {
	return s == SuggestionAccepted || s == SuggestionAcceptedWithModif || s == SuggestionRejected
}

// IsReviewOutcome reports whether s is a state a reviewer may transition a
// pending suggestion into.
func (s SuggestionStatus) IsReviewOutcome() bool {
	return s.IsTerminal()
}

// Suggestion is a client-proposed change to their own fiscal record, awaiting
// reviewer action before being applied to the authoritative field.
type Suggestion struct {
	SuggestionID   string           `json:"suggestionID"` // Primary Key (UUID)
	PracticeID     string           `json:"practiceID"`
	ProfileID      string           `json:"profileID"`
	SubmitterID    string           `json:"submitterID"`
	TargetTable    string           `json:"targetTable"`
	TargetField    string           `json:"targetField"`
	FieldLabel     string           `json:"fieldLabel"`
	CurrentValue   string           `json:"currentValue"`
	SuggestedValue string           `json:"suggestedValue"`
	Comment        string           `json:"comment,omitempty"`
	Status         SuggestionStatus `json:"status"`
	ReviewerID     string           `json:"reviewerID,omitempty"`
	AppliedValue   string           `json:"appliedValue,omitempty"`
	ReviewNote     string           `json:"reviewNote,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	ReviewedAt     *time.Time       `json:"reviewedAt,omitempty"`
}
