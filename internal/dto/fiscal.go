package dto

import (
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// CreateFiscalProfileRequest defines the data needed to register a client's fiscal record.
type CreateFiscalProfileRequest struct {
	PracticeID        string               `json:"practiceID" binding:"required"`
	ClientUserID      string               `json:"clientUserID" binding:"required"`
	DisplayName       string               `json:"displayName" binding:"required"`
	CUIT              string               `json:"cuit" binding:"required,cuit"`
	Regime            domain.IIBBRegime    `json:"regime" binding:"required,oneof=MONOTRIBUTO EXENTO NO_INSCRIPTO LOCAL CONVENIO_MULTILATERAL"`
	IIBBNumber        string               `json:"iibbNumber"`
	PaymentMethod     domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=DIRECT_DEBIT VEP IN_PERSON OTHER"`
	AssignedAdvisorID string               `json:"assignedAdvisorID"`
}

// UpdateFiscalProfileRequest defines the scalar fields a reviewer or advisor may update.
// Pointers distinguish "not provided" from a zero value. Every applied change lands in
// the change history.
type UpdateFiscalProfileRequest struct {
	DisplayName       *string               `json:"displayName"`
	CUIT              *string               `json:"cuit" binding:"omitempty,cuit"`
	IIBBNumber        *string               `json:"iibbNumber"`
	PaymentMethod     *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=DIRECT_DEBIT VEP IN_PERSON OTHER"`
	AssignedAdvisorID *string               `json:"assignedAdvisorID"`
	Reason            string                `json:"reason"`
}

// ChangeRegimeRequest defines the payload for switching a client's IIBB regime.
type ChangeRegimeRequest struct {
	NewRegime domain.IIBBRegime `json:"newRegime" binding:"required,oneof=MONOTRIBUTO EXENTO NO_INSCRIPTO LOCAL CONVENIO_MULTILATERAL"`
	Confirmed bool              `json:"confirmed"`
	Version   int64             `json:"version" binding:"required"`
}

// ChangeRegimeResponse reports the outcome of a regime switch attempt.
type ChangeRegimeResponse struct {
	RequiresConfirmation bool                   `json:"requiresConfirmation"`
	Profile              *FiscalProfileResponse `json:"profile,omitempty"`
}

// FiscalProfileResponse defines the data returned for a fiscal profile.
type FiscalProfileResponse struct {
	ProfileID         string               `json:"profileID"`
	PracticeID        string               `json:"practiceID"`
	ClientUserID      string               `json:"clientUserID"`
	DisplayName       string               `json:"displayName"`
	CUIT              string               `json:"cuit"`
	Regime            domain.IIBBRegime    `json:"regime"`
	IIBBNumber        string               `json:"iibbNumber"`
	PaymentMethod     domain.PaymentMethod `json:"paymentMethod"`
	AssignedAdvisorID string               `json:"assignedAdvisorID"`
	Version           int64                `json:"version"`
	CreatedAt         time.Time            `json:"createdAt"`
	LastUpdatedAt     time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy     string               `json:"lastUpdatedBy"`
}

// ToFiscalProfileResponse converts a domain.FiscalProfile to its response DTO.
func ToFiscalProfileResponse(p *domain.FiscalProfile) FiscalProfileResponse {
	return FiscalProfileResponse{
		ProfileID:         p.ProfileID,
		PracticeID:        p.PracticeID,
		ClientUserID:      p.ClientUserID,
		DisplayName:       p.DisplayName,
		CUIT:              p.CUIT,
		Regime:            p.Regime,
		IIBBNumber:        p.IIBBNumber,
		PaymentMethod:     p.PaymentMethod,
		AssignedAdvisorID: p.AssignedAdvisorID,
		Version:           p.Version,
		CreatedAt:         p.CreatedAt,
		LastUpdatedAt:     p.LastUpdatedAt,
		LastUpdatedBy:     p.LastUpdatedBy,
	}
}

// ListFiscalProfilesResponse wraps the list of profiles.
type ListFiscalProfilesResponse struct {
	Profiles []FiscalProfileResponse `json:"profiles"`
}

// ToListFiscalProfilesResponse converts domain profiles to the list response.
func ToListFiscalProfilesResponse(ps []domain.FiscalProfile) ListFiscalProfilesResponse {
	res := make([]FiscalProfileResponse, len(ps))
	for i := range ps {
		res[i] = ToFiscalProfileResponse(&ps[i])
	}
	return ListFiscalProfilesResponse{Profiles: res}
}

// ListProfilesParams defines query parameters for listing profiles.
type ListProfilesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
