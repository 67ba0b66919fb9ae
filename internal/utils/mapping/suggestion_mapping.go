package mapping

import (
	"database/sql"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/estudiolink/estudio_backend/internal/models"
)

// ToModelSuggestion converts a domain.Suggestion to models.Suggestion
func ToModelSuggestion(d domain.Suggestion) models.Suggestion {
	m := models.Suggestion{
		SuggestionID:   d.SuggestionID,
		PracticeID:     d.PracticeID,
		ProfileID:      d.ProfileID,
		SubmitterID:    d.SubmitterID,
		TargetTable:    d.TargetTable,
		TargetField:    d.TargetField,
		FieldLabel:     d.FieldLabel,
		CurrentValue:   d.CurrentValue,
		SuggestedValue: d.SuggestedValue,
		Comment:        d.Comment,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
	}
	if d.ReviewerID != "" {
		m.ReviewerID = sql.NullString{String: d.ReviewerID, Valid: true}
	}
	if d.AppliedValue != "" {
		m.AppliedValue = sql.NullString{String: d.AppliedValue, Valid: true}
	}
	if d.ReviewNote != "" {
		m.ReviewNote = sql.NullString{String: d.ReviewNote, Valid: true}
	}
	if d.ReviewedAt != nil {
		m.ReviewedAt = sql.NullTime{Time: *d.ReviewedAt, Valid: true}
	}
	return m
}

// ToDomainSuggestion converts a models.Suggestion to domain.Suggestion
func ToDomainSuggestion(m models.Suggestion) domain.Suggestion {
	d := domain.Suggestion{
		SuggestionID:   m.SuggestionID,
		PracticeID:     m.PracticeID,
		ProfileID:      m.ProfileID,
		SubmitterID:    m.SubmitterID,
		TargetTable:    m.TargetTable,
		TargetField:    m.TargetField,
		FieldLabel:     m.FieldLabel,
		CurrentValue:   m.CurrentValue,
		SuggestedValue: m.SuggestedValue,
		Comment:        m.Comment,
		Status:         domain.SuggestionStatus(m.Status),
		CreatedAt:      m.CreatedAt,
	}
	if m.ReviewerID.Valid {
		d.ReviewerID = m.ReviewerID.String
	}
	if m.AppliedValue.Valid {
		d.AppliedValue = m.AppliedValue.String
	}
	if m.ReviewNote.Valid {
		d.ReviewNote = m.ReviewNote.String
	}
	if m.ReviewedAt.Valid {
		t := m.ReviewedAt.Time
		d.ReviewedAt = &t
	}
	return d
}

// ToDomainSuggestionSlice converts a slice of models.Suggestion to domain suggestions
func ToDomainSuggestionSlice(ms []models.Suggestion) []domain.Suggestion {
	ds := make([]domain.Suggestion, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSuggestion(m)
	}
	return ds
}
