package mapping

import (
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/estudiolink/estudio_backend/internal/models"
)

// ToModelFiscalProfile converts a domain.FiscalProfile to models.FiscalProfile
func ToModelFiscalProfile(d domain.FiscalProfile) models.FiscalProfile {
	return models.FiscalProfile{
		ProfileID:         d.ProfileID,
		PracticeID:        d.PracticeID,
		ClientUserID:      d.ClientUserID,
		DisplayName:       d.DisplayName,
		CUIT:              d.CUIT,
		Regime:            string(d.Regime),
		IIBBNumber:        d.IIBBNumber,
		PaymentMethod:     string(d.PaymentMethod),
		AssignedAdvisorID: d.AssignedAdvisorID,
		Version:           d.Version,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		DeletedAt:         d.DeletedAt,
	}
}

// ToDomainFiscalProfile converts a models.FiscalProfile to domain.FiscalProfile
func ToDomainFiscalProfile(m models.FiscalProfile) domain.FiscalProfile {
	return domain.FiscalProfile{
		ProfileID:         m.ProfileID,
		PracticeID:        m.PracticeID,
		ClientUserID:      m.ClientUserID,
		DisplayName:       m.DisplayName,
		CUIT:              m.CUIT,
		Regime:            domain.IIBBRegime(m.Regime),
		IIBBNumber:        m.IIBBNumber,
		PaymentMethod:     domain.PaymentMethod(m.PaymentMethod),
		AssignedAdvisorID: m.AssignedAdvisorID,
		Version:           m.Version,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
		DeletedAt:         m.DeletedAt,
	}
}

// ToModelJurisdiction converts a domain.Jurisdiction to models.Jurisdiction
func ToModelJurisdiction(d domain.Jurisdiction) models.Jurisdiction {
	return models.Jurisdiction{
		JurisdictionID:    d.JurisdictionID,
		ProfileID:         d.ProfileID,
		Region:            string(d.Region),
		InscriptionNumber: d.InscriptionNumber,
		Coefficient:       d.Coefficient,
		TaxRate:           d.TaxRate,
		IsHome:            d.IsHome,
		Notes:             d.Notes,
		VigencyYear:       d.VigencyYear,
	}
}

// ToDomainJurisdiction converts a models.Jurisdiction to domain.Jurisdiction
func ToDomainJurisdiction(m models.Jurisdiction) domain.Jurisdiction {
	return domain.Jurisdiction{
		JurisdictionID:    m.JurisdictionID,
		ProfileID:         m.ProfileID,
		Region:            domain.Region(m.Region),
		InscriptionNumber: m.InscriptionNumber,
		Coefficient:       m.Coefficient,
		TaxRate:           m.TaxRate,
		IsHome:            m.IsHome,
		Notes:             m.Notes,
		VigencyYear:       m.VigencyYear,
	}
}

// ToDomainJurisdictionSlice converts a slice of models.Jurisdiction to domain entries
func ToDomainJurisdictionSlice(ms []models.Jurisdiction) []domain.Jurisdiction {
	ds := make([]domain.Jurisdiction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJurisdiction(m)
	}
	return ds
}
