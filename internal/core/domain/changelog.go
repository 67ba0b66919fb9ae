package domain

import "time"

// ChangeCategory classifies a change-history entry by the kind of field it touched.
type ChangeCategory string

const (
	CategoryCategory         ChangeCategory = "CATEGORY"
	CategoryActivityType     ChangeCategory = "ACTIVITY_TYPE"
	CategoryJurisdiction     ChangeCategory = "JURISDICTION_REGIME"
	CategoryPayment          ChangeCategory = "PAYMENT"
	CategoryAddress          ChangeCategory = "ADDRESS"
	CategoryHealthCoverage   ChangeCategory = "HEALTH_COVERAGE"
	CategoryLocations        ChangeCategory = "LOCATIONS"
	CategoryFamilyGroup      ChangeCategory = "FAMILY_GROUP"
	CategoryTaxAuthority     ChangeCategory = "TAX_AUTHORITY"
	CategoryEmploymentStatus ChangeCategory = "EMPLOYMENT_STATUS"
	CategoryContact          ChangeCategory = "CONTACT"
	CategoryPassword         ChangeCategory = "PASSWORD"
	CategoryName             ChangeCategory = "NAME"
	CategoryTaxID            ChangeCategory = "TAX_ID"
	CategoryAccountStatus    ChangeCategory = "ACCOUNT_STATUS"
	CategoryAssignedAdvisor  ChangeCategory = "ASSIGNED_ADVISOR"
	CategoryOther            ChangeCategory = "OTHER"
)

// IsValid reports whether c is one of the known categories.
func (c ChangeCategory) IsValid() bool {
	switch c {
	case CategoryCategory, CategoryActivityType, CategoryJurisdiction, CategoryPayment,
		CategoryAddress, CategoryHealthCoverage, CategoryLocations, CategoryFamilyGroup,
		CategoryTaxAuthority, CategoryEmploymentStatus, CategoryContact, CategoryPassword,
		CategoryName, CategoryTaxID, CategoryAccountStatus, CategoryAssignedAdvisor, CategoryOther:
		return true
	}
	return false
}

// ChangeEntry is one immutable record of a single field's before/after change.
// Entries are append-only: never updated or deleted once written.
type ChangeEntry struct {
	EntryID       string            `json:"entryID"`     // Primary Key (UUID)
	OwnerUserID   string            `json:"ownerUserID"` // The client the record belongs to
	ProfileID     string            `json:"profileID"`   // FK -> fiscal_profiles
	Category      ChangeCategory    `json:"category"`
	FieldLabel    string            `json:"fieldLabel"` // Human-readable field name
	PreviousValue string            `json:"previousValue"`
	NewValue      string            `json:"newValue"`
	Metadata      map[string]string `json:"metadata,omitempty"` // Free-form: reason, origin
	ActorID       string            `json:"actorID"`
	ActorName     string            `json:"actorName,omitempty"` // Resolved at read time, not stored
	CreatedAt     time.Time         `json:"createdAt"`
}
