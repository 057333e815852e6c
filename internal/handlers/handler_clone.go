package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/clonewander/internal/apperrors"
	portssvc "github.com/SscSPs/clonewander/internal/core/ports/services"
	"github.com/SscSPs/clonewander/internal/dto"
	"github.com/SscSPs/clonewander/internal/middleware"
	"github.com/SscSPs/clonewander/internal/utils"
	"github.com/gin-gonic/gin"
)

// cloneHandler handles HTTP requests related to clones.
type cloneHandler struct {
	cloneService portssvc.CloneSvcFacade
	posthog      *utils.PosthogClientWrapper
}

// newCloneHandler creates a new cloneHandler.
func newCloneHandler(cs portssvc.CloneSvcFacade, posthog *utils.PosthogClientWrapper) *cloneHandler {
	return &cloneHandler{
		cloneService: cs,
		posthog:      posthog,
	}
}

// registerCloneRoutes registers routes related to clones. writeLimit guards
// the routes that create or change clones.
func registerCloneRoutes(rg *gin.RouterGroup, cloneService portssvc.CloneSvcFacade, writeLimit gin.HandlerFunc, posthog *utils.PosthogClientWrapper) {
	h := newCloneHandler(cloneService, posthog)

	clones := rg.Group("/clones")
	{
		clones.POST("", writeLimit, h.createClone)
		clones.GET("", h.listClones)
		clones.GET("/:cloneID", h.getClone)
		clones.POST("/:cloneID/dismiss", writeLimit, h.dismissClone)
		clones.DELETE("/:cloneID", writeLimit, h.deleteClone)
		clones.GET("/:cloneID/report", h.getTripReport)
	}
}

// createClone godoc
// @Summary Dispatch a new clone
// @Description Validates the trip configuration, fixes departure, arrival and activity end, and starts the clone traveling
// @Tags clones
// @Accept  json
// @Produce  json
// @Param   clone body dto.CreateCloneRequest true "Clone configuration"
// @Success 201 {object} dto.CloneResponse
// @Failure 400 {object} map[string]string "Invalid clone configuration"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to create clone"
// @Security BearerAuth
// @Router /clones [post]
func (h *cloneHandler) createClone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCloneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClone", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// Empty when auth is disabled; the service records "anonymous".
	userID, _ := middleware.GetUserIDFromContext(c)

	clone, err := h.cloneService.CreateClone(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create clone in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create clone"})
		return
	}

	middleware.PosthogEvent(c, h.posthog, "clone_created", map[string]any{
		"clone_id":      clone.CloneID,
		"destination":   clone.Destination,
		"budget":        string(clone.Budget),
		"pack":          string(clone.Pack),
		"activity_days": clone.ActivityDays,
	})
	c.JSON(http.StatusCreated, clone)
}

// listClones godoc
// @Summary List clones
// @Description Lists every clone, newest first, with its simulated trip position
// @Tags clones
// @Produce  json
// @Success 200 {object} dto.ListClonesResponse
// @Failure 500 {object} map[string]string "Failed to list clones"
// @Security BearerAuth
// @Router /clones [get]
func (h *cloneHandler) listClones(c *gin.Context) {
	resp, err := h.cloneService.ListClones(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list clones from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clones"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getClone godoc
// @Summary Get a clone
// @Description Retrieves a clone with its simulated day, time of day, progress and time remaining
// @Tags clones
// @Produce  json
// @Param   cloneID path string true "Clone ID"
// @Success 200 {object} dto.CloneResponse
// @Failure 404 {object} map[string]string "Clone not found"
// @Failure 500 {object} map[string]string "Failed to retrieve clone"
// @Security BearerAuth
// @Router /clones/{cloneID} [get]
func (h *cloneHandler) getClone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cloneID := c.Param("cloneID")

	clone, err := h.cloneService.GetClone(c.Request.Context(), cloneID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Clone not found", slog.String("clone_id", cloneID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Clone not found"})
			return
		}
		logger.Error("Failed to get clone from service", slog.String("error", err.Error()), slog.String("clone_id", cloneID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clone"})
		return
	}
	c.JSON(http.StatusOK, clone)
}

// dismissClone godoc
// @Summary Dismiss a clone
// @Description Ends a traveling or active clone early. No further journal entries are written for it.
// @Tags clones
// @Produce  json
// @Param   cloneID path string true "Clone ID"
// @Success 200 {object} dto.CloneResponse
// @Failure 400 {object} map[string]string "Clone already finished or dismissed"
// @Failure 404 {object} map[string]string "Clone not found"
// @Failure 500 {object} map[string]string "Failed to dismiss clone"
// @Security BearerAuth
// @Router /clones/{cloneID}/dismiss [post]
func (h *cloneHandler) dismissClone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cloneID := c.Param("cloneID")
	userID, _ := middleware.GetUserIDFromContext(c)

	clone, err := h.cloneService.DismissClone(c.Request.Context(), cloneID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Clone not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to dismiss clone in service", slog.String("error", err.Error()), slog.String("clone_id", cloneID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dismiss clone"})
		}
		return
	}
	c.JSON(http.StatusOK, clone)
}

// deleteClone godoc
// @Summary Delete a clone
// @Description Deletes a clone together with its journal
// @Tags clones
// @Param   cloneID path string true "Clone ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Clone not found"
// @Failure 500 {object} map[string]string "Failed to delete clone"
// @Security BearerAuth
// @Router /clones/{cloneID} [delete]
func (h *cloneHandler) deleteClone(c *gin.Context) {
	cloneID := c.Param("cloneID")

	if err := h.cloneService.DeleteClone(c.Request.Context(), cloneID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clone not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to delete clone in service", slog.String("error", err.Error()), slog.String("clone_id", cloneID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete clone"})
		return
	}
	c.Status(http.StatusNoContent)
}

// getTripReport godoc
// @Summary Get a trip report
// @Description Summarises a clone's journal: entry count, total spend, spend per simulated day and the closing summary
// @Tags clones
// @Produce  json
// @Param   cloneID path string true "Clone ID"
// @Success 200 {object} dto.TripReport
// @Failure 404 {object} map[string]string "Clone not found"
// @Failure 500 {object} map[string]string "Failed to build trip report"
// @Security BearerAuth
// @Router /clones/{cloneID}/report [get]
func (h *cloneHandler) getTripReport(c *gin.Context) {
	cloneID := c.Param("cloneID")

	report, err := h.cloneService.GetTripReport(c.Request.Context(), cloneID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Clone not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to build trip report", slog.String("error", err.Error()), slog.String("clone_id", cloneID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trip report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
