package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/estudiolink/estudio_backend/internal/dto"
	"github.com/estudiolink/estudio_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// fiscalProfileHandler handles HTTP requests for client fiscal records.
type fiscalProfileHandler struct {
	fiscalService     portssvc.FiscalProfileSvcFacade
	allocationService portssvc.AllocationSvcFacade
}

// newFiscalProfileHandler creates a new fiscalProfileHandler.
func newFiscalProfileHandler(fs portssvc.FiscalProfileSvcFacade, as portssvc.AllocationSvcFacade) *fiscalProfileHandler {
	return &fiscalProfileHandler{
		fiscalService:     fs,
		allocationService: as,
	}
}

// registerFiscalProfileRoutes registers the per-client routes inside a practice.
func registerFiscalProfileRoutes(practiceGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newFiscalProfileHandler(services.FiscalProfile, services.Allocation)

	clients := practiceGroup.Group("/clients")
	{
		clients.POST("", h.createProfile)
		clients.GET("", h.listProfiles)
	}

	clientSpecific := practiceGroup.Group("/clients/:profileID")
	{
		clientSpecific.GET("", h.getProfile)
		clientSpecific.PUT("", h.updateProfile)
		clientSpecific.PUT("/regime", h.changeRegime)

		registerJurisdictionRoutes(clientSpecific, services)
		registerChangeLogRoutes(clientSpecific, services)
		registerSuggestionClientRoutes(clientSpecific, services)
	}
}

// createProfile godoc
// @Summary Create a client fiscal profile
// @Description Registers a new client fiscal record in a practice (advisor or admin only).
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profile body dto.CreateFiscalProfileRequest true "Profile details"
// @Success 201 {object} dto.FiscalProfileResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Duplicate CUIT in practice"
// @Failure 500 {object} map[string]string "Failed to create profile"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients [post]
func (h *fiscalProfileHandler) createProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFiscalProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.PracticeID = c.Param("practiceID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.fiscalService.CreateProfile(c.Request.Context(), requestingUserID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Practice or client user not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "A profile with this CUIT already exists in the practice"})
		default:
			logger.Error("Failed to create fiscal profile in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		}
		return
	}

	logger.Info("Fiscal profile created", slog.String("profile_id", profile.ProfileID))
	c.JSON(http.StatusCreated, dto.ToFiscalProfileResponse(profile))
}

// listProfiles godoc
// @Summary List client fiscal profiles of a practice
// @Description Retrieves a paginated list of a practice's client fiscal records.
// @Tags clients
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListFiscalProfilesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list profiles"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients [get]
func (h *fiscalProfileHandler) listProfiles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListProfilesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	profiles, err := h.fiscalService.ListProfilesByPractice(c.Request.Context(), requestingUserID, practiceID, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to list fiscal profiles", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list profiles"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFiscalProfilesResponse(profiles))
}

// getProfile godoc
// @Summary Get a client fiscal profile
// @Description Retrieves one client fiscal record. Client-role members only see their own.
// @Tags clients
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Success 200 {object} dto.FiscalProfileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to retrieve profile"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID} [get]
func (h *fiscalProfileHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	profileID := c.Param("profileID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.fiscalService.GetProfileByID(c.Request.Context(), requestingUserID, practiceID, profileID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to retrieve fiscal profile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalProfileResponse(profile))
}

// updateProfile godoc
// @Summary Update a client fiscal profile
// @Description Applies scalar field changes to a client record. Every applied change lands in the change history.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Param   profile body dto.UpdateFiscalProfileRequest true "Fields to update"
// @Success 200 {object} dto.FiscalProfileResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to update profile"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID} [put]
func (h *fiscalProfileHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	profileID := c.Param("profileID")

	var req dto.UpdateFiscalProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.fiscalService.UpdateProfile(c.Request.Context(), requestingUserID, practiceID, profileID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		default:
			logger.Error("Failed to update fiscal profile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalProfileResponse(profile))
}

// changeRegime godoc
// @Summary Change a client's IIBB regime
// @Description Switches the profile's IIBB regime. Leaving a jurisdiction-bearing regime with rows present requires confirmed=true; otherwise the response only flags that confirmation is needed.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Param   regime body dto.ChangeRegimeRequest true "New regime, confirmation flag and expected version"
// @Success 200 {object} dto.ChangeRegimeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 409 {object} map[string]string "Stale version"
// @Failure 500 {object} map[string]string "Failed to change regime"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID}/regime [put]
func (h *fiscalProfileHandler) changeRegime(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	profileID := c.Param("profileID")

	var req dto.ChangeRegimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.allocationService.ChangeRegime(c.Request.Context(), requestingUserID, practiceID, profileID, req.NewRegime, req.Confirmed, req.Version)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Profile was modified concurrently, reload and retry"})
		default:
			logger.Error("Failed to change regime", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change regime"})
		}
		return
	}

	resp := dto.ChangeRegimeResponse{RequiresConfirmation: result.RequiresConfirmation}
	if result.Profile != nil {
		profileResp := dto.ToFiscalProfileResponse(result.Profile)
		resp.Profile = &profileResp
	}
	c.JSON(http.StatusOK, resp)
}
