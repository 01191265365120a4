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

// requestHandler handles HTTP requests for purchase requests.
type requestHandler struct {
	requestService portssvc.RequestSvcFacade
	auditService   portssvc.AuditSvcFacade
}

func newRequestHandler(rs portssvc.RequestSvcFacade, as portssvc.AuditSvcFacade) *requestHandler {
	return &requestHandler{
		requestService: rs,
		auditService:   as,
	}
}

// registerRequestRoutes registers routes related to purchase requests.
func registerRequestRoutes(rg *gin.RouterGroup, requestService portssvc.RequestSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newRequestHandler(requestService, auditService)

	requests := rg.Group("/requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:requestID", h.getRequest)
		requests.POST("/:requestID/actions", h.applyAction)
		requests.POST("/:requestID/duplicate", h.duplicateRequest)
		requests.GET("/:requestID/logs", h.listLogs)
		requests.GET("/:requestID/timeline", h.timeline)
	}
}

// createRequest godoc
// @Summary Create a purchase request draft
// @Description Creates a new draft purchase request owned by the caller
// @Tags requests
// @Accept json
// @Produce json
// @Param request body dto.CreateRequestRequest true "Request details"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests [post]
func (h *requestHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	created, err := h.requestService.CreateRequest(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create request"})
		return
	}

	logger.Info("Purchase request created", slog.String("request_id", created.RequestID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(created))
}

// getRequest godoc
// @Summary Get a purchase request
// @Description Retrieves a purchase request by its ID
// @Tags requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	request, err := h.requestService.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Request not found"})
			return
		}
		logger.Error("Failed to get request", slog.String("request_id", requestID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve request"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

// listRequests godoc
// @Summary List purchase requests
// @Description Lists purchase requests with optional status filter and paging
// @Tags requests
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	requests, err := h.requestService.ListRequests(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, dto.ListRequestsResponse{
		Requests: dto.ToRequestResponses(requests),
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
}

// applyAction godoc
// @Summary Apply a workflow action
// @Description Applies one workflow action (submit, approve, reject, transfer, withdraw, pay, ...) to a request
// @Tags requests
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param action body dto.ActionRequest true "Action payload"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} dto.RequestResponse "State conflict; for submit with no applicable approver the committed request is returned"
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/actions [post]
func (h *requestHandler) applyAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	var payload dto.ActionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("request_id", requestID),
		slog.String("action", string(payload.Action)),
		slog.String("actor_id", actorID),
	)

	updated, err := h.requestService.ApplyAction(c.Request.Context(), requestID, actorID, payload)
	if err != nil {
		// The transition committed with nobody assigned; report the conflict
		// but return the committed state so callers can intervene.
		if errors.Is(err, apperrors.ErrNoApplicableApprover) && updated != nil {
			logger.Warn("Request submitted with no applicable approver")
			c.JSON(http.StatusConflict, dto.ToRequestResponse(updated))
			return
		}
		h.respondActionError(c, logger, err)
		return
	}

	logger.Info("Action applied", slog.String("status", string(updated.Status)))
	c.JSON(http.StatusOK, dto.ToRequestResponse(updated))
}

// respondActionError maps the service error taxonomy onto HTTP status codes.
func (h *requestHandler) respondActionError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Action forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Action validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Action conflicts with request state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConfiguration):
		logger.Error("Workflow configuration problem", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to apply action", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply action"})
	}
}

// duplicateRequest godoc
// @Summary Duplicate a purchase request
// @Description Creates a fresh draft copy of an existing request owned by the caller
// @Tags requests
// @Produce json
// @Param requestID path string true "Source request ID"
// @Success 201 {object} dto.RequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/duplicate [post]
func (h *requestHandler) duplicateRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	copied, err := h.requestService.DuplicateRequest(c.Request.Context(), requestID, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Request not found"})
			return
		}
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to duplicate request", slog.String("request_id", requestID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to duplicate request"})
		return
	}

	logger.Info("Request duplicated", slog.String("source_request_id", requestID), slog.String("request_id", copied.RequestID))
	c.JSON(http.StatusCreated, dto.ToRequestResponse(copied))
}

// listLogs godoc
// @Summary List a request's audit log
// @Description Returns the request's transition history, most recent first
// @Tags requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Param order query string false "asc for oldest first, desc (default) for most recent first"
// @Success 200 {object} dto.ListLogsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/logs [get]
func (h *requestHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")
	ascending := c.DefaultQuery("order", "desc") == "asc"

	entries, err := h.auditService.ListLogs(c.Request.Context(), requestID, ascending)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Request not found"})
			return
		}
		logger.Error("Failed to list logs", slog.String("request_id", requestID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list logs"})
		return
	}

	c.JSON(http.StatusOK, dto.ListLogsResponse{Entries: dto.ToAuditLogEntryResponses(entries)})
}

// timeline godoc
// @Summary Get a request's flow timeline
// @Description Returns the request's history grouped by flow step, oldest first
// @Tags requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.TimelineResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{requestID}/timeline [get]
func (h *requestHandler) timeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	groups, err := h.auditService.Timeline(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Request not found"})
			return
		}
		logger.Error("Failed to build timeline", slog.String("request_id", requestID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build timeline"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimelineResponse(groups))
}
