package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
	"github.com/opsledger/purchase_mgmt_app/internal/middleware"
)

// workflowHandler handles HTTP requests for the workflow configuration.
type workflowHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

func newWorkflowHandler(ws portssvc.WorkflowSvcFacade) *workflowHandler {
	return &workflowHandler{workflowService: ws}
}

// registerWorkflowRoutes registers routes for the routing definition.
func registerWorkflowRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := newWorkflowHandler(workflowService)

	rg.GET("/workflow-config", h.getConfig)
	rg.PUT("/workflow-config", h.replaceConfig)
}

// getConfig godoc
// @Summary Get the workflow configuration
// @Description Returns the active routing definition
// @Tags workflow
// @Produce json
// @Success 200 {object} dto.WorkflowConfigResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workflow-config [get]
func (h *workflowHandler) getConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	config, err := h.workflowService.ActiveConfig(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load workflow config", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load workflow configuration"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkflowConfigResponse(config))
}

// replaceConfig godoc
// @Summary Replace the workflow configuration
// @Description Validates and stores a full replacement routing definition. Requires the workflow:manage capability.
// @Tags workflow
// @Accept json
// @Produce json
// @Param config body dto.ReplaceWorkflowConfigRequest true "Replacement configuration"
// @Success 200 {object} dto.WorkflowConfigResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Configuration version changed concurrently"
// @Failure 422 {object} ErrorResponse "Definition failed validation"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /workflow-config [put]
func (h *workflowHandler) replaceConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReplaceWorkflowConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.workflowService.ReplaceConfig(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Workflow config change forbidden", slog.String("actor_id", actorID))
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConfiguration):
			logger.Warn("Workflow config rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to replace workflow config", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to replace workflow configuration"})
		}
		return
	}

	logger.Info("Workflow config replaced", slog.String("actor_id", actorID), slog.Int64("version", updated.Version))
	c.JSON(http.StatusOK, dto.ToWorkflowConfigResponse(updated))
}
