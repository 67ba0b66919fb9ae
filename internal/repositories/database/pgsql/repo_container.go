package pgsql

import (
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		PracticeRepo:   newPgxPracticeRepository(dbPool),
		FiscalRepo:     newPgxFiscalRepository(dbPool),
		ChangeLogRepo:  newPgxChangeLogRepository(dbPool),
		SuggestionRepo: newPgxSuggestionRepository(dbPool),
		APITokenRepo:   newPgxAPITokenRepository(dbPool),
	}
}
