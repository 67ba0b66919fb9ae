package mapping

import (
	"encoding/json"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/estudiolink/estudio_backend/internal/models"
)

// ToModelChangeEntry converts a domain.ChangeEntry to models.ChangeEntry.
// Metadata is serialized to JSON for the jsonb column; a nil map becomes SQL NULL.
func ToModelChangeEntry(d domain.ChangeEntry) (models.ChangeEntry, error) {
	m := models.ChangeEntry{
		EntryID:       d.EntryID,
		OwnerUserID:   d.OwnerUserID,
		ProfileID:     d.ProfileID,
		Category:      string(d.Category),
		FieldLabel:    d.FieldLabel,
		PreviousValue: d.PreviousValue,
		NewValue:      d.NewValue,
		ActorID:       d.ActorID,
		CreatedAt:     d.CreatedAt,
	}
	if len(d.Metadata) > 0 {
		raw, err := json.Marshal(d.Metadata)
		if err != nil {
			return models.ChangeEntry{}, err
		}
		m.Metadata = raw
	}
	return m, nil
}

// ToDomainChangeEntry converts a models.ChangeEntry to domain.ChangeEntry.
func ToDomainChangeEntry(m models.ChangeEntry) (domain.ChangeEntry, error) {
	d := domain.ChangeEntry{
		EntryID:       m.EntryID,
		OwnerUserID:   m.OwnerUserID,
		ProfileID:     m.ProfileID,
		Category:      domain.ChangeCategory(m.Category),
		FieldLabel:    m.FieldLabel,
		PreviousValue: m.PreviousValue,
		NewValue:      m.NewValue,
		ActorID:       m.ActorID,
		CreatedAt:     m.CreatedAt,
	}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &d.Metadata); err != nil {
			return domain.ChangeEntry{}, err
		}
	}
	return d, nil
}
