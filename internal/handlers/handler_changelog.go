package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/estudiolink/estudio_backend/internal/apperrors"
	"github.com/estudiolink/estudio_backend/internal/core/domain"
	portssvc "github.com/estudiolink/estudio_backend/internal/core/ports/services"
	"github.com/estudiolink/estudio_backend/internal/dto"
	"github.com/estudiolink/estudio_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// changeLogHandler serves the read side of the change ledger.
type changeLogHandler struct {
	changeLogService portssvc.ChangeLogSvcFacade
}

// newChangeLogHandler creates a new changeLogHandler.
func newChangeLogHandler(cs portssvc.ChangeLogSvcFacade) *changeLogHandler {
	return &changeLogHandler{
		changeLogService: cs,
	}
}

// registerChangeLogRoutes registers the history route under a specific client profile.
func registerChangeLogRoutes(clientGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newChangeLogHandler(services.ChangeLog)

	clientGroup.GET("/history", h.getHistory)
}

// getHistory godoc
// @Summary Get a client's change history
// @Description Retrieves the profile's change entries newest-first, optionally filtered by category.
// @Tags history
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Param   limit query int false "Maximum entries per page" default(50)
// @Param   category query string false "Filter by change category"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListHistoryResponse
// @Failure 400 {object} map[string]string "Invalid category or pagination token"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to retrieve history"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID}/history [get]
func (h *changeLogHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	profileID := c.Param("profileID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	var category *domain.ChangeCategory
	if params.Category != "" {
		cat := domain.ChangeCategory(params.Category)
		if !cat.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown change category"})
			return
		}
		category = &cat
	}

	entries, pageToken, err := h.changeLogService.GetHistory(c.Request.Context(), requestingUserID, practiceID, profileID, params.Limit, category, params.NextToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to retrieve change history", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListHistoryResponse(entries, pageToken))
}
