package services

import (
	portsrepo "github.com/estudiolink/estudio_backend/internal/core/ports/repositories"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/estudiolink/estudio_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)

	// Practice service first since most other services authorize through it
	container.Practice = NewPracticeService(repos.PracticeRepo, repos.UserRepo)

	container.ChangeLog = NewChangeLogService(repos.ChangeLogRepo, repos.FiscalRepo, repos.PracticeRepo, repos.UserRepo)

	fiscalSvc := NewFiscalProfileService(repos.FiscalRepo, repos.PracticeRepo, repos.UserRepo, container.ChangeLog)
	if impl, ok := fiscalSvc.(*fiscalProfileService); ok {
		impl.PracticeAuthorizer = container.Practice
	}
	container.FiscalProfile = fiscalSvc

	container.Allocation = NewAllocationService(repos.FiscalRepo, repos.PracticeRepo, container.ChangeLog)

	suggestionSvc := NewSuggestionService(repos.SuggestionRepo, repos.FiscalRepo, repos.PracticeRepo, container.ChangeLog)
	if impl, ok := suggestionSvc.(*suggestionService); ok {
		impl.PracticeAuthorizer = container.Practice
	}
	container.Suggestion = suggestionSvc

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.APIToken = NewAPITokenService(repos.APITokenRepo, container.User)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PracticeSvcFacade      = (*practiceService)(nil)
	_ portssvc.FiscalProfileSvcFacade = (*fiscalProfileService)(nil)
	_ portssvc.AllocationSvcFacade    = (*allocationService)(nil)
	_ portssvc.ChangeLogSvcFacade     = (*changeLogService)(nil)
	_ portssvc.SuggestionSvcFacade    = (*suggestionService)(nil)
)
