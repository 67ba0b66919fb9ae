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

// jurisdictionHandler handles the IIBB jurisdiction allocation endpoints of a client profile.
type jurisdictionHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

// newJurisdictionHandler creates a new jurisdictionHandler.
func newJurisdictionHandler(as portssvc.AllocationSvcFacade) *jurisdictionHandler {
	return &jurisdictionHandler{
		allocationService: as,
	}
}

// registerJurisdictionRoutes registers jurisdiction routes under a specific client profile.
func registerJurisdictionRoutes(clientGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newJurisdictionHandler(services.Allocation)

	clientGroup.GET("/jurisdictions", h.loadJurisdictions)
	clientGroup.PUT("/jurisdictions", h.commitJurisdictions)
}

// loadJurisdictions godoc
// @Summary Get a client's jurisdiction set
// @Description Retrieves the profile's IIBB jurisdiction entries together with the profile version required for a subsequent save.
// @Tags jurisdictions
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Success 200 {object} dto.JurisdictionSetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to load jurisdictions"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID}/jurisdictions [get]
func (h *jurisdictionHandler) loadJurisdictions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	profileID := c.Param("profileID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	set, err := h.allocationService.LoadJurisdictions(c.Request.Context(), requestingUserID, practiceID, profileID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to load jurisdictions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load jurisdictions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJurisdictionSetResponse(set.Entries, set.Version))
}

// commitJurisdictions godoc
// @Summary Save a client's jurisdiction set
// @Description Validates and persists the full replacement jurisdiction set. The request must echo the profile version it was edited against; a stale version yields 409.
// @Tags jurisdictions
// @Accept  json
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Param   jurisdictions body dto.SaveJurisdictionsRequest true "Replacement entries and expected version"
// @Success 200 {object} dto.JurisdictionSetResponse
// @Failure 400 {object} map[string]string "Allocation rule violated"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 409 {object} map[string]string "Stale version"
// @Failure 500 {object} map[string]string "Failed to save jurisdictions"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID}/jurisdictions [put]
func (h *jurisdictionHandler) commitJurisdictions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	profileID := c.Param("profileID")

	var req dto.SaveJurisdictionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for commitJurisdictions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	set, err := h.allocationService.CommitJurisdictions(c.Request.Context(), requestingUserID, practiceID, profileID, req.ToDomainJurisdictions(profileID), req.Version)
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
			logger.Error("Failed to save jurisdictions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save jurisdictions"})
		}
		return
	}

	logger.Info("Jurisdiction set saved", slog.String("profile_id", profileID), slog.Int("entries", len(set.Entries)))
	c.JSON(http.StatusOK, dto.ToJurisdictionSetResponse(set.Entries, set.Version))
}
