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

// practiceHandler handles HTTP requests related to accounting practices.
type practiceHandler struct {
	practiceService portssvc.PracticeSvcFacade
}

// newPracticeHandler creates a new practiceHandler.
func newPracticeHandler(ps portssvc.PracticeSvcFacade) *practiceHandler {
	return &practiceHandler{
		practiceService: ps,
	}
}

// registerPracticeRoutes registers routes for practices and their members, and
// nests the per-client routes (fiscal profiles, jurisdictions, history,
// suggestions) under a specific practice.
func registerPracticeRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPracticeHandler(services.Practice)

	practicesTopLevel := rg.Group("/practices")
	{
		practicesTopLevel.POST("", h.createPractice)
		practicesTopLevel.GET("", h.listUserPractices)
	}

	practiceSpecific := rg.Group("/practices/:practiceID")
	{
		practiceSpecific.GET("", h.getPractice)
		practiceSpecific.POST("/activate", h.activatePractice)
		practiceSpecific.POST("/deactivate", h.deactivatePractice)

		practiceUsers := practiceSpecific.Group("/users")
		{
			practiceUsers.GET("", h.listPracticeUsers)
			practiceUsers.POST("", h.addUserToPractice)
			practiceUsers.PUT("/:userID", h.updateUserRole)
			practiceUsers.DELETE("/:userID", h.removeUserFromPractice)
		}

		registerFiscalProfileRoutes(practiceSpecific, services)
		registerSuggestionPracticeRoutes(practiceSpecific, services)
	}
}

// createPractice godoc
// @Summary Create a new practice
// @Description Creates a new accounting practice and assigns the creator as admin.
// @Tags practices
// @Accept  json
// @Produce  json
// @Param   practice body dto.CreatePracticeRequest true "Practice details"
// @Success 201 {object} dto.PracticeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create practice"
// @Security BearerAuth
// @Router /practices [post]
func (h *practiceHandler) createPractice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPractice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	newPractice, err := h.practiceService.CreatePractice(c.Request.Context(), req.Name, req.Description, creatorUserID)
	if err != nil {
		logger.Error("Failed to create practice in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create practice"})
		return
	}

	logger.Info("Practice created successfully", slog.String("practice_id", newPractice.PracticeID))
	c.JSON(http.StatusCreated, dto.ToPracticeResponse(newPractice))
}

// listUserPractices godoc
// @Summary List practices for current user
// @Description Retrieves the practices the authenticated user belongs to.
// @Tags practices
// @Produce  json
// @Param   includeDisabled query bool false "Include deactivated practices"
// @Success 200 {object} dto.ListPracticesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list practices"
// @Security BearerAuth
// @Router /practices [get]
func (h *practiceHandler) listUserPractices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeDisabled := c.Query("includeDisabled") == "true"

	practices, err := h.practiceService.ListUserPractices(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		logger.Error("Failed to list practices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list practices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPracticesResponse(practices))
}

// getPractice godoc
// @Summary Get a practice
// @Description Retrieves a single practice by ID.
// @Tags practices
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Success 200 {object} dto.PracticeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Practice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve practice"
// @Security BearerAuth
// @Router /practices/{practiceID} [get]
func (h *practiceHandler) getPractice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")

	practice, err := h.practiceService.FindPracticeByID(c.Request.Context(), practiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Practice not found"})
			return
		}
		logger.Error("Failed to retrieve practice", slog.String("error", err.Error()), slog.String("practice_id", practiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve practice"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPracticeResponse(practice))
}

// activatePractice godoc
// @Summary Activate a practice
// @Description Marks a practice as active (admin only).
// @Tags practices
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Practice not found"
// @Failure 500 {object} map[string]string "Failed to activate practice"
// @Security BearerAuth
// @Router /practices/{practiceID}/activate [post]
func (h *practiceHandler) activatePractice(c *gin.Context) {
	h.setPracticeActive(c, true)
}

// deactivatePractice godoc
// @Summary Deactivate a practice
// @Description Marks a practice as inactive (admin only).
// @Tags practices
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Practice not found"
// @Failure 500 {object} map[string]string "Failed to deactivate practice"
// @Security BearerAuth
// @Router /practices/{practiceID}/deactivate [post]
func (h *practiceHandler) deactivatePractice(c *gin.Context) {
	h.setPracticeActive(c, false)
}

func (h *practiceHandler) setPracticeActive(c *gin.Context, active bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var err error
	if active {
		err = h.practiceService.ActivatePractice(c.Request.Context(), practiceID, requestingUserID)
	} else {
		err = h.practiceService.DeactivatePractice(c.Request.Context(), practiceID, requestingUserID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Practice not found"})
			return
		}
		logger.Error("Failed to change practice active state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update practice"})
		return
	}

	c.Status(http.StatusNoContent)
}

// listPracticeUsers godoc
// @Summary List members of a practice
// @Description Retrieves all users and their roles for a practice (members only).
// @Tags practices
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Security BearerAuth
// @Router /practices/{practiceID}/users [get]
func (h *practiceHandler) listPracticeUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	members, err := h.practiceService.ListPracticeUsers(c.Request.Context(), practiceID, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		logger.Error("Failed to list practice members", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list members"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponses(members))
}

// addUserToPractice godoc
// @Summary Add a user to a practice
// @Description Adds a user to a practice with a given role (requires admin permission).
// @Tags practices
// @Accept  json
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   member body dto.AddMemberRequest true "User ID and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Practice or user not found"
// @Failure 500 {object} map[string]string "Failed to add user"
// @Security BearerAuth
// @Router /practices/{practiceID}/users [post]
func (h *practiceHandler) addUserToPractice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addUserToPractice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Adding user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.practiceService.AddUserToPractice(c.Request.Context(), addingUserID, req.UserID, practiceID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Practice or user not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to add user to practice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to practice"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Updates a member's role within a practice (requires admin permission).
// @Tags practices
// @Accept  json
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   userID path string true "Target user ID"
// @Param   role body dto.UpdateMemberRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Failed to update role"
// @Security BearerAuth
// @Router /practices/{practiceID}/users/{userID} [put]
func (h *practiceHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	targetUserID := c.Param("userID")

	var req dto.UpdateMemberRoleRequest
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

	err := h.practiceService.UpdateUserPracticeRole(c.Request.Context(), requestingUserID, targetUserID, practiceID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to update member role in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// removeUserFromPractice godoc
// @Summary Remove a user from a practice
// @Description Removes a member from a practice (requires admin permission).
// @Tags practices
// @Produce  json
// @Param   practiceID path string true "Practice ID"
// @Param   userID path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden (caller is not admin)"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Failed to remove user"
// @Security BearerAuth
// @Router /practices/{practiceID}/users/{userID} [delete]
func (h *practiceHandler) removeUserFromPractice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	practiceID := c.Param("practiceID")
	targetUserID := c.Param("userID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Requesting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.practiceService.RemoveUserFromPractice(c.Request.Context(), requestingUserID, targetUserID, practiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			logger.Error("Failed to remove user from practice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
