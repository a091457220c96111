package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/domain"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/dto"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/identity"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/service"
)

type Handler struct {
	eventService service.EventServicer
	assetService service.AssetServicer
	provider     identity.Provider
	router       *gin.Engine
	log          *zap.Logger
}

func NewHandler(eventService service.EventServicer, assetService service.AssetServicer, provider identity.Provider, log *zap.Logger) *Handler {
	h := &Handler{
		eventService: eventService,
		assetService: assetService,
		provider:     provider,
		router:       gin.Default(),
		log:          log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.Use(corsMiddleware())

	h.router.GET("/health", h.healthCheck)
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.router.GET("/events", h.listEvents)
	h.router.GET("/events/:id", h.getEvent)

	authed := h.router.Group("", identity.Middleware(h.provider, h.log))

	organizer := authed.Group("", identity.RequireRole(identity.RoleOrganizer, identity.RoleAdmin))
	organizer.POST("/events", h.createEvent)
	organizer.PATCH("/events/:id", h.updateEvent)
	organizer.DELETE("/events/:id", h.deleteEvent)
	organizer.POST("/uploads", h.issueUpload)

	admin := authed.Group("", identity.RequireRole(identity.RoleAdmin))
	admin.POST("/events/batch-status", h.batchUpdateStatus)
	admin.POST("/events/batch-delete", h.batchDelete)
	admin.GET("/statistics", h.getStatistics)
	admin.GET("/uploads", h.listUploads)
	admin.DELETE("/uploads/*key", h.deleteUpload)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	if err := h.eventService.Ping(c.Request.Context()); err != nil {
		h.log.Error("Health check failed: event store unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"events": "unreachable",
		})
		return
	}

	if !h.assetService.TestConnection(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"assets": "unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// listEvents handles GET /events
func (h *Handler) listEvents(c *gin.Context) {
	var req dto.ListEventsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid list request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	events, err := h.eventService.ListEvents(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to list events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ListEventsResponse{
		Events: events,
		Count:  len(events),
	})
}

// getEvent handles GET /events/:id
func (h *Handler) getEvent(c *gin.Context) {
	eventID := c.Param("id")

	event, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		h.respondError(c, err, "get event", eventID)
		return
	}

	c.JSON(http.StatusOK, event)
}

// createEvent handles POST /events
func (h *Handler) createEvent(c *gin.Context) {
	var req dto.CreateEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req, identity.FromContext(c))
	if err != nil {
		h.respondError(c, err, "create event", req.Title)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// updateEvent handles PATCH /events/:id
func (h *Handler) updateEvent(c *gin.Context) {
	eventID := c.Param("id")

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid update request",
			zap.Error(err),
			zap.String("event_id", eventID))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), eventID, &req)
	if err != nil {
		h.respondError(c, err, "update event", eventID)
		return
	}

	c.JSON(http.StatusOK, event)
}

// deleteEvent handles DELETE /events/:id
func (h *Handler) deleteEvent(c *gin.Context) {
	eventID := c.Param("id")

	if err := h.eventService.DeleteEvent(c.Request.Context(), eventID); err != nil {
		h.respondError(c, err, "delete event", eventID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// batchUpdateStatus handles POST /events/batch-status
func (h *Handler) batchUpdateStatus(c *gin.Context) {
	var req dto.BatchStatusRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid batch status request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.eventService.BatchUpdateStatus(c.Request.Context(), req.EventIDs, req.Status); err != nil {
		h.respondBatchError(c, err, "batch status update")
		return
	}

	c.JSON(http.StatusOK, dto.BatchResponse{Success: true})
}

// batchDelete handles POST /events/batch-delete
func (h *Handler) batchDelete(c *gin.Context) {
	var req dto.BatchDeleteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid batch delete request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.eventService.BatchDeleteEvents(c.Request.Context(), req.EventIDs); err != nil {
		h.respondBatchError(c, err, "batch delete")
		return
	}

	c.JSON(http.StatusOK, dto.BatchResponse{Success: true})
}

// getStatistics handles GET /statistics
func (h *Handler) getStatistics(c *gin.Context) {
	stats, err := h.eventService.GetStatistics(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to compute statistics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// issueUpload handles POST /uploads
func (h *Handler) issueUpload(c *gin.Context) {
	var req dto.IssueUploadRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid upload request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp := h.assetService.IssueUpload(c.Request.Context(), &req)
	if !resp.Success {
		c.JSON(http.StatusBadGateway, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listUploads handles GET /uploads
func (h *Handler) listUploads(c *gin.Context) {
	resp := h.assetService.ListAssets(c.Request.Context(), c.Query("prefix"))
	if !resp.Success {
		c.JSON(http.StatusBadGateway, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deleteUpload handles DELETE /uploads/*key
func (h *Handler) deleteUpload(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: "object key is required",
		})
		return
	}

	ok := h.assetService.DeleteAsset(c.Request.Context(), key)
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func (h *Handler) respondError(c *gin.Context, err error, op, subject string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: "event not found",
		})
	case errors.Is(err, domain.ErrValidation):
		h.log.Warn("Validation rejected request",
			zap.String("operation", op),
			zap.String("subject", subject),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	default:
		h.log.Error("Operation failed",
			zap.String("operation", op),
			zap.String("subject", subject),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func (h *Handler) respondBatchError(c *gin.Context, err error, op string) {
	if errors.Is(err, domain.ErrValidation) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Error("Batch operation failed",
		zap.String("operation", op),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.BatchResponse{
		Success: false,
		Message: "some operations may have been applied: " + err.Error(),
	})
}
