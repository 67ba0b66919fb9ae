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

// suggestionHandler handles the client suggestion workflow endpoints.
type suggestionHandler struct {
	suggestionService portssvc.SuggestionSvcFacade
}

// newSuggestionHandler creates a new suggestionHandler.
func newSuggestionHandler(ss portssvc.SuggestionSvcFacade) *suggestionHandler {
	return &suggestionHandler{
		suggestionService: ss,
	}
}

// registerSuggestionClientRoutes registers the per-profile suggestion routes.
func registerSuggestionClientRoutes(clientGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newSuggestionHandler(services.Suggestion)

	suggestions := clientGroup.Group("/suggestions")
	{
		suggestions.POST("", h.submitSuggestion)
		suggestions.GET("", h.listForProfile)
		suggestions.POST("/:suggestionID/review", h.reviewSuggestion)
	}
}

// registerSuggestionPracticeRoutes registers the practice-wide review queue route.
func registerSuggestionPracticeRoutes(practiceGroup *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newSuggestionHandler(services.Suggestion)

	practiceGroup.GET("/suggestions/pending", h.listPending)
}

// submitSuggestion godoc
// @Summary Submit a change suggestion
// @Description Creates a pending suggestion on the client's own fiscal record (client role only).
// @Tags suggestions
// @Accept  json
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Param   suggestion body dto.CreateSuggestionRequest true "Suggestion details"
// @Success 201 {object} dto.SuggestionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not the client owner)"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to submit suggestion"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID}/suggestions [post]
func (h *suggestionHandler) submitSuggestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")

	var req dto.CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitSuggestion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.ProfileID = c.Param("profileID")

	submitterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Submitter user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestion, err := h.suggestionService.Submit(c.Request.Context(), submitterID, practiceID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		default:
			logger.Error("Failed to submit suggestion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit suggestion"})
		}
		return
	}

	logger.Info("Suggestion submitted", slog.String("suggestion_id", suggestion.SuggestionID))
	c.JSON(http.StatusCreated, dto.ToSuggestionResponse(suggestion))
}

// listForProfile godoc
// @Summary List a profile's suggestions
// @Description Retrieves a profile's suggestions newest-first. Client-role callers only see their own submissions.
// @Tags suggestions
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Success 200 {object} dto.ListSuggestionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Failure 500 {object} map[string]string "Failed to list suggestions"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID}/suggestions [get]
func (h *suggestionHandler) listForProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	profileID := c.Param("profileID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestions, err := h.suggestionService.ListForProfile(c.Request.Context(), requestingUserID, practiceID, profileID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to list suggestions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list suggestions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListSuggestionsResponse(suggestions))
}

// reviewSuggestion godoc
// @Summary Review a pending suggestion
// @Description Applies a reviewer's terminal decision to a pending suggestion. A suggestion that was already reviewed yields 409.
// @Tags suggestions
// @Accept  json
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   profileID path string true "Profile ID"
// @Param   suggestionID path string true "Suggestion ID"
// @Param   review body dto.ReviewSuggestionRequest true "Review outcome"
// @Success 200 {object} dto.SuggestionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Suggestion not found"
// @Failure 409 {object} map[string]string "Suggestion already reviewed"
// @Failure 500 {object} map[string]string "Failed to review suggestion"
// @Security BearerAuth
// @Router /practices/{practiceID}/clients/{profileID}/suggestions/{suggestionID}/review [post]
func (h *suggestionHandler) reviewSuggestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	suggestionID := c.Param("suggestionID")

	var req dto.ReviewSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reviewSuggestion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	reviewerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Reviewer user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestion, err := h.suggestionService.Review(c.Request.Context(), reviewerID, practiceID, suggestionID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Suggestion was already reviewed"})
		default:
			logger.Error("Failed to review suggestion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review suggestion"})
		}
		return
	}

	logger.Info("Suggestion reviewed", slog.String("suggestion_id", suggestionID), slog.String("outcome", string(suggestion.Status)))
	c.JSON(http.StatusOK, dto.ToSuggestionResponse(suggestion))
}

// listPending godoc
// @Summary List pending suggestions of a practice
// @Description Retrieves all pending suggestions across a practice for review (advisor or admin only).
// @Tags suggestions
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Success 200 {object} dto.ListSuggestionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list pending suggestions"
// @Security BearerAuth
// @Router /practices/{practiceID}/suggestions/pending [get]
func (h *suggestionHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	suggestions, err := h.suggestionService.ListPending(c.Request.Context(), requestingUserID, practiceID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		default:
			logger.Error("Failed to list pending suggestions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending suggestions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListSuggestionsResponse(suggestions))
}
