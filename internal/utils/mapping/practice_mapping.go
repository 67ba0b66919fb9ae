package mapping

import (
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	"github.com/estudiolink/estudio_backend/internal/models"
)

// ToModelPractice converts a domain.Practice to models.Practice
func ToModelPractice(d domain.Practice) models.Practice {
	return models.Practice{
		PracticeID:  d.PracticeID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPractice converts a models.Practice to domain.Practice
func ToDomainPractice(m models.Practice) domain.Practice {
	return domain.Practice{
		PracticeID:  m.PracticeID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPracticeSlice converts a slice of models.Practice to domain practices
func ToDomainPracticeSlice(ms []models.Practice) []domain.Practice {
	ds := make([]domain.Practice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPractice(m)
	}
	return ds
}
