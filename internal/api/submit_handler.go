package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/service"
	"github.com/project-moderation-api/internal/validation"
	"github.com/rs/zerolog"
)

// SubmitHandler handles the public submission endpoints. Field validation
// happens here, before anything reaches the store.
type SubmitHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSubmitHandler creates a new SubmitHandler
func NewSubmitHandler(services *service.Services, log zerolog.Logger) *SubmitHandler {
	return &SubmitHandler{
		services: services,
		log:      log.With().Str("handler", "submit").Logger(),
	}
}

// SubmitIdea handles POST /v1/ideas
func (h *SubmitHandler) SubmitIdea(c *gin.Context) {
	var sub models.IdeaSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	if errs := validation.ValidateIdea(&sub); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	idea, err := h.services.Moderation.SubmitIdea(c.Request.Context(), &sub)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create idea")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit idea"})
		return
	}

	c.JSON(http.StatusCreated, idea)
}

// SubmitJoinRequest handles POST /v1/ideas/:id/requests
func (h *SubmitHandler) SubmitJoinRequest(c *gin.Context) {
	var sub models.JoinRequestSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	sub.IdeaID = c.Param("id")

	if errs := validation.ValidateJoinRequest(&sub); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	req, err := h.services.Moderation.SubmitJoinRequest(c.Request.Context(), &sub)
	if err != nil {
		if errors.Is(err, models.ErrParentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Idea no longer exists or is not yet approved"})
			return
		}
		h.log.Error().Err(err).Str("idea_id", sub.IdeaID).Msg("Failed to create join request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		return
	}

	c.JSON(http.StatusCreated, req)
}

// SubmitFeature handles POST /v1/projects/:project_id/features
func (h *SubmitHandler) SubmitFeature(c *gin.Context) {
	var sub models.FeatureSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	sub.ProjectID = c.Param("project_id")

	if errs := validation.ValidateFeature(&sub); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	feature, err := h.services.Moderation.SubmitFeature(c.Request.Context(), &sub)
	if err != nil {
		h.log.Error().Err(err).Str("project_id", sub.ProjectID).Msg("Failed to create feature")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feature"})
		return
	}

	c.JSON(http.StatusCreated, feature)
}

// SubmitContribution handles POST /v1/projects/:project_id/contributions
func (h *SubmitHandler) SubmitContribution(c *gin.Context) {
	var sub models.ContributionSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	sub.ProjectID = c.Param("project_id")

	if errs := validation.ValidateContribution(&sub); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	contribution, err := h.services.Moderation.SubmitContribution(c.Request.Context(), &sub)
	if err != nil {
		h.log.Error().Err(err).Str("project_id", sub.ProjectID).Msg("Failed to create contribution")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit contribution"})
		return
	}

	c.JSON(http.StatusCreated, contribution)
}
