package repositories

// RepositoryProvider bundles all repository implementations for service wiring.
type RepositoryProvider struct {
	UserRepo       UserRepositoryFacade
	PracticeRepo   PracticeRepositoryFacade
	FiscalRepo     FiscalRepositoryFacade
	ChangeLogRepo  ChangeLogRepository
	SuggestionRepo SuggestionRepository
	APITokenRepo   APITokenRepository
}
