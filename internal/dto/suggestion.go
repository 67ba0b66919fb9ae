package dto

import (
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// CreateSuggestionRequest is the payload a client submits to propose a change to
// their own fiscal record.
type CreateSuggestionRequest struct {
	ProfileID      string `json:"profileID" binding:"required"`
	TargetTable    string `json:"targetTable" binding:"required"`
	TargetField    string `json:"targetField" binding:"required"`
	FieldLabel     string `json:"fieldLabel" binding:"required"`
	CurrentValue   string `json:"currentValue"`
	SuggestedValue string `json:"suggestedValue" binding:"required"`
	Comment        string `json:"comment"`
}

// ReviewSuggestionRequest is a reviewer's decision on a pending suggestion.
// AppliedValue is only meaningful for ACCEPTED_WITH_MODIFICATION; when empty on an
// accepting outcome the suggested value is applied as-is.
type ReviewSuggestionRequest struct {
	Outcome      domain.SuggestionStatus `json:"outcome" binding:"required,oneof=ACCEPTED ACCEPTED_WITH_MODIFICATION REJECTED"`
	AppliedValue string                  `json:"appliedValue"`
	Note         string                  `json:"note"`
}

// SuggestionResponse is the wire form of a suggestion.
type SuggestionResponse struct {
	SuggestionID   string                  `json:"suggestionID"`
	PracticeID     string                  `json:"practiceID"`
	ProfileID      string                  `json:"profileID"`
	SubmitterID    string                  `json:"submitterID"`
	TargetTable    string                  `json:"targetTable"`
	TargetField    string                  `json:"targetField"`
	FieldLabel     string                  `json:"fieldLabel"`
	CurrentValue   string                  `json:"currentValue"`
	SuggestedValue string                  `json:"suggestedValue"`
	Comment        string                  `json:"comment,omitempty"`
	Status         domain.SuggestionStatus `json:"status"`
	ReviewerID     string                  `json:"reviewerID,omitempty"`
	AppliedValue   string                  `json:"appliedValue,omitempty"`
	ReviewNote     string                  `json:"reviewNote,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	ReviewedAt     *time.Time              `json:"reviewedAt,omitempty"`
}

// ToSuggestionResponse converts a domain.Suggestion to its response DTO.
func ToSuggestionResponse(s *domain.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		SuggestionID:   s.SuggestionID,
		PracticeID:     s.PracticeID,
		ProfileID:      s.ProfileID,
		SubmitterID:    s.SubmitterID,
		TargetTable:    s.TargetTable,
		TargetField:    s.TargetField,
		FieldLabel:     s.FieldLabel,
		CurrentValue:   s.CurrentValue,
		SuggestedValue: s.SuggestedValue,
		Comment:        s.Comment,
		Status:         s.Status,
		ReviewerID:     s.ReviewerID,
		AppliedValue:   s.AppliedValue,
		ReviewNote:     s.ReviewNote,
		CreatedAt:      s.CreatedAt,
		ReviewedAt:     s.ReviewedAt,
	}
}

// ListSuggestionsResponse wraps a list of suggestions.
type ListSuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// ToListSuggestionsResponse converts domain suggestions to the list response.
func ToListSuggestionsResponse(ss []domain.Suggestion) ListSuggestionsResponse {
	res := make([]SuggestionResponse, len(ss))
	for i := range ss {
		res[i] = ToSuggestionResponse(&ss[i])
	}
	return ListSuggestionsResponse{Suggestions: res}
}
