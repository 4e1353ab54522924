package service

import (
	"context"

	"github.com/project-moderation-api/internal/config"
	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/notify"
	"github.com/project-moderation-api/internal/repository"
	"github.com/rs/zerolog"
)

// ModerationService drives the status lifecycle for all four record kinds
type ModerationService interface {
	SubmitIdea(ctx context.Context, sub *models.IdeaSubmission) (*models.Idea, error)
	SubmitJoinRequest(ctx context.Context, sub *models.JoinRequestSubmission) (*models.IdeaJoinRequest, error)
	SubmitFeature(ctx context.Context, sub *models.FeatureSubmission) (*models.ProjectFeature, error)
	SubmitContribution(ctx context.Context, sub *models.ContributionSubmission) (*models.ProjectContribution, error)

	List(ctx context.Context, kind models.Kind, filter models.Filter) ([]models.Record, error)
	Get(ctx context.Context, kind models.Kind, id string) (models.Record, error)
	Approve(ctx context.Context, kind models.Kind, id string) (*models.TransitionResult, error)
	Reject(ctx context.Context, kind models.Kind, id string) (*models.TransitionResult, error)
	Delete(ctx context.Context, kind models.Kind, id string) error
}

// Dispatcher is the slice of notify.Dispatcher the service needs; tests
// substitute their own.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind models.Kind, event notify.Event, payload notify.Payload) error
}

// Services holds all service interfaces
type Services struct {
	Moderation ModerationService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, dispatcher Dispatcher, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Moderation: newModerationService(repos, dispatcher, cfg, log),
	}
}
