package dto

import (
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// ChangeEntryResponse is the wire form of one change-history entry.
type ChangeEntryResponse struct {
	EntryID       string                `json:"entryID"`
	Category      domain.ChangeCategory `json:"category"`
	FieldLabel    string                `json:"fieldLabel"`
	PreviousValue string                `json:"previousValue"`
	NewValue      string                `json:"newValue"`
	Metadata      map[string]string     `json:"metadata,omitempty"`
	ActorID       string                `json:"actorID"`
	ActorName     string                `json:"actorName"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// ListHistoryParams defines query parameters for the change-history listing.
type ListHistoryParams struct {
	Limit     int    `form:"limit,default=50"`
	Category  string `form:"category"`
	NextToken string `form:"nextToken"`
}

// ListHistoryResponse wraps one newest-first page of a profile's change history.
// NextToken is present while older pages remain.
type ListHistoryResponse struct {
	Entries   []ChangeEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToListHistoryResponse converts domain entries plus the follow-up page token.
func ToListHistoryResponse(entries []domain.ChangeEntry, nextToken *string) ListHistoryResponse {
	res := make([]ChangeEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ChangeEntryResponse{
			EntryID:       e.EntryID,
			Category:      e.Category,
			FieldLabel:    e.FieldLabel,
			PreviousValue: e.PreviousValue,
			NewValue:      e.NewValue,
			Metadata:      e.Metadata,
			ActorID:       e.ActorID,
			ActorName:     e.ActorName,
			CreatedAt:     e.CreatedAt,
		}
	}
	return ListHistoryResponse{Entries: res, NextToken: nextToken}
}
