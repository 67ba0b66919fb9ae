package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCUIT(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid with hyphens", "20-12345678-6", true},
		{"valid bare digits", "20123456786", true},
		{"valid company prefix", "30-71234567-1", true},
		{"wrong check digit", "20-12345678-7", false},
		{"too short", "20-1234567-6", false},
		{"too long", "20-123456789-6", false},
		{"letters", "20-1234567a-6", false},
		{"empty", "", false},
		{"unassignable check digit", "20-00000001-0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCUIT(tt.value))
		})
	}
}
