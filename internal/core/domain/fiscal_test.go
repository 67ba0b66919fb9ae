package domain_test

import (
	"testing"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIIBBRegime_UsesJurisdictions(t *testing.T) {
	assert.True(t, domain.RegimeLocal.UsesJurisdictions())
	assert.True(t, domain.RegimeConvenio.UsesJurisdictions())
	assert.False(t, domain.RegimeMonotributo.UsesJurisdictions())
	assert.False(t, domain.RegimeExempt.UsesJurisdictions())
	assert.False(t, domain.RegimeUnregistered.UsesJurisdictions())
}

func TestIIBBRegime_IsValid(t *testing.T) {
	for _, r := range []domain.IIBBRegime{
		domain.RegimeMonotributo, domain.RegimeExempt, domain.RegimeUnregistered,
		domain.RegimeLocal, domain.RegimeConvenio,
	} {
		assert.True(t, r.IsValid(), string(r))
	}
	assert.False(t, domain.IIBBRegime("RESPONSABLE_INSCRIPTO").IsValid())
	assert.False(t, domain.IIBBRegime("").IsValid())
}

func TestAllRegions_CoversProvincesAndCABA(t *testing.T) {
	regions := domain.AllRegions()

	assert.Len(t, regions, 24)

	seen := make(map[domain.Region]struct{}, len(regions))
	for _, r := range regions {
		_, dup := seen[r]
		assert.False(t, dup, string(r))
		seen[r] = struct{}{}
		assert.True(t, r.IsValid())
	}
}

func TestRegion_IsValid(t *testing.T) {
	assert.True(t, domain.RegionCABA.IsValid())
	assert.True(t, domain.RegionTierraDelFuego.IsValid())
	assert.False(t, domain.Region("Montevideo").IsValid())
	assert.False(t, domain.Region("").IsValid())
}

func TestJurisdictionDraft_AvailableRegions(t *testing.T) {
	draft := domain.JurisdictionDraft{Entries: []domain.Jurisdiction{
		{Region: domain.RegionCABA},
		{Region: domain.RegionBuenosAires},
	}}

	free := draft.AvailableRegions()

	assert.Len(t, free, 22)
	assert.True(t, draft.HasRegion(domain.RegionCABA))
	assert.False(t, draft.HasRegion(domain.RegionCordoba))
	for _, r := range free {
		assert.False(t, draft.HasRegion(r), string(r))
	}
}

func TestJurisdictionDraft_CoefficientSum(t *testing.T) {
	draft := domain.JurisdictionDraft{Entries: []domain.Jurisdiction{
		{Region: domain.RegionCABA, Coefficient: decimal.RequireFromString("33.333")},
		{Region: domain.RegionCordoba, Coefficient: decimal.RequireFromString("66.667")},
	}}

	assert.True(t, draft.CoefficientSum().Equal(decimal.NewFromInt(100)))
	assert.True(t, (&domain.JurisdictionDraft{}).CoefficientSum().IsZero())
}
