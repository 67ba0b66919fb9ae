package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IIBBRegime enumerates the gross-receipts tax regimes a client can be registered under.
type IIBBRegime string

const (
	RegimeMonotributo  IIBBRegime = "MONOTRIBUTO"           // Simplified single-tax regime
	RegimeExempt       IIBBRegime = "EXENTO"                // Exempt from IIBB
	RegimeUnregistered IIBBRegime = "NO_INSCRIPTO"          // Not registered
	RegimeLocal        IIBBRegime = "LOCAL"                 // Single jurisdiction
	RegimeConvenio     IIBBRegime = "CONVENIO_MULTILATERAL" // Multiple jurisdictions with coefficients
)

// UsesJurisdictions reports whether the regime carries jurisdiction rows.
// A profile's jurisdiction list must be empty under every other regime.
func (r IIBBRegime) UsesJurisdictions() bool {
	return r == RegimeLocal || r == RegimeConvenio
}

// IsValid reports whether r is one of the known regimes.
func (r IIBBRegime) IsValid() bool {
	switch r {
	case RegimeMonotributo, RegimeExempt, RegimeUnregistered, RegimeLocal, RegimeConvenio:
		return true
	}
	return false
}

// Region identifies one of the Argentine IIBB jurisdictions.
type Region string

// The fixed jurisdiction set under Convenio Multilateral: the 23 provinces plus CABA.
const (
	RegionCABA              Region = "Ciudad Autónoma de Buenos Aires"
	RegionBuenosAires       Region = "Buenos Aires"
	RegionCatamarca         Region = "Catamarca"
	RegionChaco             Region = "Chaco"
	RegionChubut            Region = "Chubut"
	RegionCordoba           Region = "Córdoba"
	RegionCorrientes        Region = "Corrientes"
	RegionEntreRios         Region = "Entre Ríos"
	RegionFormosa           Region = "Formosa"
	RegionJujuy             Region = "Jujuy"
	RegionLaPampa           Region = "La Pampa"
	RegionLaRioja           Region = "La Rioja"
	RegionMendoza           Region = "Mendoza"
	RegionMisiones          Region = "Misiones"
	RegionNeuquen           Region = "Neuquén"
	RegionRioNegro          Region = "Río Negro"
	RegionSalta             Region = "Salta"
	RegionSanJuan           Region = "San Juan"
	RegionSanLuis           Region = "San Luis"
	RegionSantaCruz         Region = "Santa Cruz"
	RegionSantaFe           Region = "Santa Fe"
	RegionSantiagoDelEstero Region = "Santiago del Estero"
	RegionTierraDelFuego    Region = "Tierra del Fuego"
	RegionTucuman           Region = "Tucumán"
)

// AllRegions returns the full jurisdiction set in a stable order.
func AllRegions() []Region {
	return []Region{
		RegionCABA, RegionBuenosAires, RegionCatamarca, RegionChaco, RegionChubut,
		RegionCordoba, RegionCorrientes, RegionEntreRios, RegionFormosa, RegionJujuy,
		RegionLaPampa, RegionLaRioja, RegionMendoza, RegionMisiones, RegionNeuquen,
		RegionRioNegro, RegionSalta, RegionSanJuan, RegionSanLuis, RegionSantaCruz,
		RegionSantaFe, RegionSantiagoDelEstero, RegionTierraDelFuego, RegionTucuman,
	}
}

// IsValid reports whether r is one of the known jurisdictions.
func (r Region) IsValid() bool {
	for _, known := range AllRegions() {
		if r == known {
			return true
		}
	}
	return false
}

// PaymentMethod enumerates how a client settles their IIBB obligations.
type PaymentMethod string

const (
	PaymentDirectDebit PaymentMethod = "DIRECT_DEBIT"
	PaymentVEP         PaymentMethod = "VEP"
	PaymentInPerson    PaymentMethod = "IN_PERSON"
	PaymentOther       PaymentMethod = "OTHER"
)

// FiscalProfile is the authoritative fiscal record of one client of a practice.
type FiscalProfile struct {
	ProfileID         string        `json:"profileID"`  // Primary Key (UUID)
	PracticeID        string        `json:"practiceID"` // FK -> practices
	ClientUserID      string        `json:"clientUserID"`
	DisplayName       string        `json:"displayName"`
	CUIT              string        `json:"cuit"`
	Regime            IIBBRegime    `json:"regime"`
	IIBBNumber        string        `json:"iibbNumber"` // Registration number under the regime
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	AssignedAdvisorID string        `json:"assignedAdvisorID"`
	Version           int64         `json:"version"` // Optimistic concurrency counter
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Jurisdiction is one tax jurisdiction assigned to a fiscal profile.
// The whole set for a profile is replaced wholesale on every allocation save.
type Jurisdiction struct {
	JurisdictionID    string          `json:"jurisdictionID"` // Primary Key (UUID)
	ProfileID         string          `json:"profileID"`      // FK -> fiscal_profiles
	Region            Region          `json:"region"`
	InscriptionNumber string          `json:"inscriptionNumber"`
	Coefficient       decimal.Decimal `json:"coefficient"` // Percentage; meaningful under CONVENIO_MULTILATERAL only
	TaxRate           decimal.Decimal `json:"taxRate"`     // Percentage
	IsHome            bool            `json:"isHome"`      // At most one per profile
	Notes             string          `json:"notes"`
	VigencyYear       int             `json:"vigencyYear"` // Year the coefficient applies to
}

// JurisdictionDraft is the edit-time working copy of a profile's jurisdiction set.
// It is mutated in memory and persisted atomically on commit.
type JurisdictionDraft struct {
	Entries           []Jurisdiction `json:"entries"`
	VigencyYear       int            `json:"vigencyYear"`
	InscriptionNumber string         `json:"inscriptionNumber"` // Inherited default for new entries
}

// HasRegion reports whether the draft already contains an entry for region.
func (d *JurisdictionDraft) HasRegion(region Region) bool {
	for _, e := range d.Entries {
		if e.Region == region {
			return true
		}
	}
	return false
}

// AvailableRegions returns the jurisdictions not yet present in the draft.
func (d *JurisdictionDraft) AvailableRegions() []Region {
	var free []Region
	for _, r := range AllRegions() {
		if !d.HasRegion(r) {
			free = append(free, r)
		}
	}
	return free
}

// CoefficientSum returns the sum of coefficients over all draft entries.
func (d *JurisdictionDraft) CoefficientSum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range d.Entries {
		sum = sum.Add(e.Coefficient)
	}
	return sum
}
