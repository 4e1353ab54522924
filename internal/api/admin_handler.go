package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/service"
	"github.com/rs/zerolog"
)

// AdminHandler composes the store, lifecycle and dispatcher into the
// operator-facing moderation workflow.
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
	// inFlight tracks records with an outstanding moderation action.
	// Repeated requests for the same record are suppressed while one is in
	// flight; other records stay independently actionable.
	inFlight sync.Map
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// ListRecords handles GET /v1/admin/:kind with optional ?status= and
// ?parent_id= filters. Counts are derived from the full list, not a
// separate aggregate query.
func (h *AdminHandler) ListRecords(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown record kind"})
		return
	}

	filter := models.Filter{ParentID: c.Query("parent_id")}
	if status := c.Query("status"); status != "" {
		if !models.ValidStatuses[models.Status(status)] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		filter.Status = models.Status(status)
	}

	ctx := c.Request.Context()
	records, err := h.services.Moderation.List(ctx, kind, filter)
	if err != nil {
		h.log.Error().Err(err).Str("kind", string(kind)).Msg("Failed to list records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}

	// Counts always reflect the unfiltered collection
	all := records
	if filter.Status != "" || filter.ParentID != "" {
		if all, err = h.services.Moderation.List(ctx, kind, models.Filter{}); err != nil {
			h.log.Error().Err(err).Str("kind", string(kind)).Msg("Failed to count records")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":    kind,
		"records": records,
		"counts":  models.CountByStatus(all),
	})
}

// GetRecord handles GET /v1/admin/:kind/:id — the full-payload drill-in
func (h *AdminHandler) GetRecord(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown record kind"})
		return
	}

	record, err := h.services.Moderation.Get(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Str("kind", string(kind)).Str("id", c.Param("id")).
			Msg("Failed to load record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load record"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// ApproveRecord handles POST /v1/admin/:kind/:id/approve
func (h *AdminHandler) ApproveRecord(c *gin.Context) {
	h.transition(c, h.services.Moderation.Approve)
}

// RejectRecord handles POST /v1/admin/:kind/:id/reject
func (h *AdminHandler) RejectRecord(c *gin.Context) {
	h.transition(c, h.services.Moderation.Reject)
}

// transitionFunc matches ModerationService.Approve and Reject
type transitionFunc func(ctx context.Context, kind models.Kind, id string) (*models.TransitionResult, error)

// transition runs one approve/reject action under the per-record in-flight
// guard. A failed action clears the guard so the operator can retry; the
// record's stored status is untouched by the failure.
func (h *AdminHandler) transition(c *gin.Context, action transitionFunc) {
	kind, ok := kindFromPath(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown record kind"})
		return
	}

	id := c.Param("id")
	key := string(kind) + "/" + id
	if _, busy := h.inFlight.LoadOrStore(key, struct{}{}); busy {
		c.JSON(http.StatusConflict, gin.H{"error": "Action already in flight for this record"})
		return
	}
	defer h.inFlight.Delete(key)

	result, err := action(c.Request.Context(), kind, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		h.log.Error().Err(err).Str("kind", string(kind)).Str("id", id).Msg("Transition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update record"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteRecord handles DELETE /v1/admin/:kind/:id. Requires the explicit
// confirm=true query parameter before anything is issued to the store.
func (h *AdminHandler) DeleteRecord(c *gin.Context) {
	kind, ok := kindFromPath(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown record kind"})
		return
	}
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion must be confirmed with confirm=true"})
		return
	}

	id := c.Param("id")
	key := string(kind) + "/" + id
	if _, busy := h.inFlight.LoadOrStore(key, struct{}{}); busy {
		c.JSON(http.StatusConflict, gin.H{"error": "Action already in flight for this record"})
		return
	}
	defer h.inFlight.Delete(key)

	if err := h.services.Moderation.Delete(c.Request.Context(), kind, id); err != nil {
		h.log.Error().Err(err).Str("kind", string(kind)).Str("id", id).Msg("Failed to delete record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id, "kind": kind})
}
