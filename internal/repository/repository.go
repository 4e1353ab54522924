package repository

import (
	"context"
	"fmt"

	"github.com/project-moderation-api/internal/database"
	"github.com/project-moderation-api/internal/models"
)

// ModerationRepository is the lifecycle surface shared by all four record
// kinds: filtered listing, point lookup, status overwrite, and permanent
// deletion. Kind-specific creation lives on the concrete repositories.
type ModerationRepository interface {
	List(ctx context.Context, filter models.Filter) ([]models.Record, error)
	GetByID(ctx context.Context, id string) (models.Record, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	Delete(ctx context.Context, id string) error
}

// IdeaRepository defines data operations for ideas
type IdeaRepository interface {
	ModerationRepository
	Create(ctx context.Context, idea *models.Idea) error
}

// JoinRequestRepository defines data operations for idea join requests
type JoinRequestRepository interface {
	ModerationRepository
	Create(ctx context.Context, req *models.IdeaJoinRequest) error
}

// FeatureRepository defines data operations for project feature proposals
type FeatureRepository interface {
	ModerationRepository
	Create(ctx context.Context, feature *models.ProjectFeature) error
}

// ContributionRepository defines data operations for project contributions
type ContributionRepository interface {
	ModerationRepository
	Create(ctx context.Context, contribution *models.ProjectContribution) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Idea         IdeaRepository
	JoinRequest  JoinRequestRepository
	Feature      FeatureRepository
	Contribution ContributionRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Idea:         NewIdeaRepo(db),
		JoinRequest:  NewJoinRequestRepo(db),
		Feature:      NewFeatureRepo(db),
		Contribution: NewContributionRepo(db),
	}
}

// ForKind returns the moderation surface for a record kind
func (r *Repositories) ForKind(kind models.Kind) (ModerationRepository, error) {
	switch kind {
	case models.KindIdea:
		return r.Idea, nil
	case models.KindJoinRequest:
		return r.JoinRequest, nil
	case models.KindFeature:
		return r.Feature, nil
	case models.KindContribution:
		return r.Contribution, nil
	default:
		return nil, fmt.Errorf("unknown record kind: %s", kind)
	}
}
