package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalProfile represents a row in the fiscal_profiles table.
type FiscalProfile struct {
	ProfileID         string `db:"profile_id"`
	PracticeID        string `db:"practice_id"`
	ClientUserID      string `db:"client_user_id"`
	DisplayName       string `db:"display_name"`
	CUIT              string `db:"cuit"`
	Regime            string `db:"regime"`
	IIBBNumber        string `db:"iibb_number"`
	PaymentMethod     string `db:"payment_method"`
	AssignedAdvisorID string `db:"assigned_advisor_id"`
	Version           int64  `db:"version"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Jurisdiction represents a row in the jurisdictions table.
// The set for a profile is replaced wholesale on every allocation save.
type Jurisdiction struct {
	JurisdictionID    string          `db:"jurisdiction_id"`
	ProfileID         string          `db:"profile_id"`
	Region            string          `db:"region"`
	InscriptionNumber string          `db:"inscription_number"`
	Coefficient       decimal.Decimal `db:"coefficient"`
	TaxRate           decimal.Decimal `db:"tax_rate"`
	IsHome            bool            `db:"is_home"`
	Notes             string          `db:"notes"`
	VigencyYear       int             `db:"vigency_year"`
}
