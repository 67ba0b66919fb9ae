package dto

import (
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JurisdictionEntry is the wire form of one jurisdiction row in the allocation editor.
type JurisdictionEntry struct {
	Region            domain.Region   `json:"region" binding:"required"`
	InscriptionNumber string          `json:"inscriptionNumber"`
	Coefficient       decimal.Decimal `json:"coefficient"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	IsHome            bool            `json:"isHome"`
	Notes             string          `json:"notes"`
	VigencyYear       int             `json:"vigencyYear"`
}

// SaveJurisdictionsRequest carries the full replacement set of a client's jurisdictions.
// The whole set is persisted wholesale; Version guards against concurrent editors.
type SaveJurisdictionsRequest struct {
	Entries []JurisdictionEntry `json:"entries" binding:"required,dive"`
	Version int64               `json:"version" binding:"required"`
}

// JurisdictionSetResponse returns a profile's jurisdiction set together with the
// profile version required for a subsequent save.
type JurisdictionSetResponse struct {
	Entries []JurisdictionEntry `json:"entries"`
	Version int64               `json:"version"`
}

// ToDomainJurisdictions converts request entries to domain entries for a profile.
func (r SaveJurisdictionsRequest) ToDomainJurisdictions(profileID string) []domain.Jurisdiction {
	entries := make([]domain.Jurisdiction, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = domain.Jurisdiction{
			ProfileID:         profileID,
			Region:            e.Region,
			InscriptionNumber: e.InscriptionNumber,
			Coefficient:       e.Coefficient,
			TaxRate:           e.TaxRate,
			IsHome:            e.IsHome,
			Notes:             e.Notes,
			VigencyYear:       e.VigencyYear,
		}
	}
	return entries
}

// ToJurisdictionSetResponse converts domain entries plus the profile version.
func ToJurisdictionSetResponse(entries []domain.Jurisdiction, version int64) JurisdictionSetResponse {
	res := make([]JurisdictionEntry, len(entries))
	for i, e := range entries {
		res[i] = JurisdictionEntry{
			Region:            e.Region,
			InscriptionNumber: e.InscriptionNumber,
			Coefficient:       e.Coefficient,
			TaxRate:           e.TaxRate,
			IsHome:            e.IsHome,
			Notes:             e.Notes,
			VigencyYear:       e.VigencyYear,
		}
	}
	return JurisdictionSetResponse{Entries: res, Version: version}
}
