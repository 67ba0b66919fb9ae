package domain_test

import (
	"testing"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSuggestionStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.SuggestionPending.IsTerminal())
	assert.True(t, domain.SuggestionAccepted.IsTerminal())
	assert.True(t, domain.SuggestionAcceptedWithModif.IsTerminal())
	assert.True(t, domain.SuggestionRejected.IsTerminal())
}

func TestSuggestionStatus_IsReviewOutcome(t *testing.T) {
	assert.False(t, domain.SuggestionPending.IsReviewOutcome())
	assert.False(t, domain.SuggestionStatus("ESCALATED").IsReviewOutcome())
	assert.True(t, domain.SuggestionRejected.IsReviewOutcome())
}
