package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/service"
	"github.com/rs/zerolog"
)

// PublicHandler serves the read-only projections used by public pages.
// Everything here is filtered to approved records.
type PublicHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(services *service.Services, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		services: services,
		log:      log.With().Str("handler", "public").Logger(),
	}
}

// ListIdeas handles GET /v1/ideas
func (h *PublicHandler) ListIdeas(c *gin.Context) {
	records, err := h.services.Moderation.List(c.Request.Context(), models.KindIdea,
		models.Filter{Status: models.StatusApproved})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list ideas")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ideas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ideas": records, "count": len(records)})
}

// GetIdea handles GET /v1/ideas/:id. Pending and rejected ideas are
// indistinguishable from missing ones to the public.
func (h *PublicHandler) GetIdea(c *gin.Context) {
	record, err := h.services.Moderation.Get(c.Request.Context(), models.KindIdea, c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Str("id", c.Param("id")).Msg("Failed to load idea")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load idea"})
		return
	}
	if record == nil || record.RecordStatus() != models.StatusApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Idea no longer exists or is not yet approved"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListProjectFeatures handles GET /v1/projects/:project_id/features
func (h *PublicHandler) ListProjectFeatures(c *gin.Context) {
	h.listByProject(c, models.KindFeature, "features")
}

// ListProjectContributions handles GET /v1/projects/:project_id/contributions
func (h *PublicHandler) ListProjectContributions(c *gin.Context) {
	h.listByProject(c, models.KindContribution, "contributions")
}

func (h *PublicHandler) listByProject(c *gin.Context, kind models.Kind, field string) {
	projectID := c.Param("project_id")
	records, err := h.services.Moderation.List(c.Request.Context(), kind, models.Filter{
		Status:   models.StatusApproved,
		ParentID: projectID,
	})
	if err != nil {
		h.log.Error().Err(err).Str("project_id", projectID).Msgf("Failed to list %s", field)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load " + field})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id": projectID,
		field:        records,
		"count":      len(records),
	})
}
