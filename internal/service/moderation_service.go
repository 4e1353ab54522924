package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/project-moderation-api/internal/config"
	"github.com/project-moderation-api/internal/models"
	"github.com/project-moderation-api/internal/notify"
	"github.com/project-moderation-api/internal/repository"
	"github.com/rs/zerolog"
)

// moderationService is the concrete implementation of ModerationService
type moderationService struct {
	repos           *repository.Repositories
	dispatcher      Dispatcher
	dispatchTimeout time.Duration
	log             zerolog.Logger
}

func newModerationService(repos *repository.Repositories, dispatcher Dispatcher, cfg *config.Config, log zerolog.Logger) *moderationService {
	return &moderationService{
		repos:           repos,
		dispatcher:      dispatcher,
		dispatchTimeout: cfg.Server.DispatchTimeout,
		log:             log.With().Str("service", "moderation").Logger(),
	}
}

// SubmitIdea creates a new idea in pending status and attempts a
// submission-received notification
func (s *moderationService) SubmitIdea(ctx context.Context, sub *models.IdeaSubmission) (*models.Idea, error) {
	idea := &models.Idea{
		Submission: models.Submission{
			SubmitterName:   sub.SubmitterName,
			SubmitterEmail:  sub.SubmitterEmail,
			SubmitterHandle: sub.SubmitterHandle,
		},
		Title:       sub.Title,
		Problem:     sub.Problem,
		Solution:    sub.Solution,
		Category:    sub.Category,
		Difficulty:  sub.Difficulty,
		LookingFor:  sub.LookingFor,
		HowYouHelp:  sub.HowYouHelp,
		LeadProject: sub.LeadProject,
	}

	if err := s.repos.Idea.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}

	s.notify(ctx, idea, notify.EventReceived)
	return idea, nil
}

// SubmitJoinRequest creates a join request against an approved idea. The
// idea title is snapshotted here and never resynchronized afterwards.
func (s *moderationService) SubmitJoinRequest(ctx context.Context, sub *models.JoinRequestSubmission) (*models.IdeaJoinRequest, error) {
	parent, err := s.repos.Idea.GetByID(ctx, sub.IdeaID)
	if err != nil {
		return nil, fmt.Errorf("look up parent idea: %w", err)
	}
	if parent == nil || parent.RecordStatus() != models.StatusApproved {
		return nil, models.ErrParentNotFound
	}
	idea := parent.(*models.Idea)

	req := &models.IdeaJoinRequest{
		Submission: models.Submission{
			SubmitterName:   sub.SubmitterName,
			SubmitterEmail:  sub.SubmitterEmail,
			SubmitterHandle: sub.SubmitterHandle,
		},
		IdeaID:    idea.ID,
		IdeaTitle: idea.Title,
		TechStack: sub.TechStack,
		Message:   sub.Message,
	}

	if err := s.repos.JoinRequest.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create join request: %w", err)
	}

	s.notify(ctx, req, notify.EventReceived)
	return req, nil
}

// SubmitFeature creates a feature proposal. The project lives in an
// external store, so the name snapshot comes from the submission payload
// and no parent existence check is made.
func (s *moderationService) SubmitFeature(ctx context.Context, sub *models.FeatureSubmission) (*models.ProjectFeature, error) {
	feature := &models.ProjectFeature{
		Submission: models.Submission{
			SubmitterName:   sub.SubmitterName,
			SubmitterEmail:  sub.SubmitterEmail,
			SubmitterHandle: sub.SubmitterHandle,
		},
		ProjectID:   sub.ProjectID,
		ProjectName: sub.ProjectName,
		Title:       sub.Title,
		Description: sub.Description,
		Category:    sub.Category,
		Difficulty:  sub.Difficulty,
		Solution:    sub.Solution,
	}

	if err := s.repos.Feature.Create(ctx, feature); err != nil {
		return nil, fmt.Errorf("create feature: %w", err)
	}

	s.notify(ctx, feature, notify.EventReceived)
	return feature, nil
}

// SubmitContribution creates a contribution record
func (s *moderationService) SubmitContribution(ctx context.Context, sub *models.ContributionSubmission) (*models.ProjectContribution, error) {
	contribution := &models.ProjectContribution{
		Submission: models.Submission{
			SubmitterName:   sub.SubmitterName,
			SubmitterEmail:  sub.SubmitterEmail,
			SubmitterHandle: sub.SubmitterHandle,
		},
		ProjectID:       sub.ProjectID,
		ProjectName:     sub.ProjectName,
		Title:           sub.Title,
		Description:     sub.Description,
		Type:            sub.Type,
		ExperienceLevel: sub.ExperienceLevel,
		Timeline:        sub.Timeline,
		HowYouHelp:      sub.HowYouHelp,
		PullRequestURL:  sub.PullRequestURL,
	}

	if err := s.repos.Contribution.Create(ctx, contribution); err != nil {
		return nil, fmt.Errorf("create contribution: %w", err)
	}

	s.notify(ctx, contribution, notify.EventReceived)
	return contribution, nil
}

// List returns records of a kind, newest first, honoring the filter
func (s *moderationService) List(ctx context.Context, kind models.Kind, filter models.Filter) ([]models.Record, error) {
	repo, err := s.repos.ForKind(kind)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, filter)
}

// Get returns one record, or (nil, nil) when it does not exist
func (s *moderationService) Get(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	repo, err := s.repos.ForKind(kind)
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

// Approve transitions a record to approved and attempts the approval
// notification
func (s *moderationService) Approve(ctx context.Context, kind models.Kind, id string) (*models.TransitionResult, error) {
	return s.transition(ctx, kind, id, models.StatusApproved, notify.EventApproved)
}

// Reject transitions a record to rejected and attempts the rejection
// notification
func (s *moderationService) Reject(ctx context.Context, kind models.Kind, id string) (*models.TransitionResult, error) {
	return s.transition(ctx, kind, id, models.StatusRejected, notify.EventRejected)
}

// transition persists the status change first, then attempts exactly one
// notification dispatch. The store write is unconditional: re-approving an
// already-approved record succeeds, and last write wins under races.
// Dispatch failure never unwinds or fails the committed mutation.
func (s *moderationService) transition(ctx context.Context, kind models.Kind, id string, status models.Status, event notify.Event) (*models.TransitionResult, error) {
	repo, err := s.repos.ForKind(kind)
	if err != nil {
		return nil, err
	}

	record, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", kind, id, err)
	}
	if record == nil {
		return nil, models.ErrRecordNotFound
	}

	if err := repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update %s %s status: %w", kind, id, err)
	}

	// Reflect the persisted change without a refetch
	record.Meta().Status = status
	record.Meta().UpdatedAt = time.Now()

	outcome := s.notify(ctx, record, event)

	s.log.Info().
		Str("kind", string(kind)).
		Str("id", id).
		Str("status", string(status)).
		Str("notification", string(outcome)).
		Msg("Record transitioned")

	return &models.TransitionResult{Record: record, Notification: outcome}, nil
}

// Delete permanently removes a record. Deleting an id that is already gone
// is not an error.
func (s *moderationService) Delete(ctx context.Context, kind models.Kind, id string) error {
	repo, err := s.repos.ForKind(kind)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	s.log.Info().Str("kind", string(kind)).Str("id", id).Msg("Record deleted")
	return nil
}

// notify attempts one best-effort dispatch for the record and event. The
// attempt runs under its own timeout so a slow channel cannot hold the
// request hostage; failures are logged and reported, never returned.
func (s *moderationService) notify(ctx context.Context, record models.Record, event notify.Event) models.NotificationOutcome {
	dispatchCtx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	payload := buildPayload(record)
	err := s.dispatcher.Dispatch(dispatchCtx, record.RecordKind(), event, payload)
	if err == nil {
		return models.NotificationSent
	}

	if errors.Is(err, notify.ErrNoRecipient) {
		s.log.Warn().
			Str("kind", string(record.RecordKind())).
			Str("id", record.RecordID()).
			Str("event", string(event)).
			Msg("Notification skipped: no usable recipient")
		return models.NotificationSkipped
	}

	s.log.Error().Err(err).
		Str("kind", string(record.RecordKind())).
		Str("id", record.RecordID()).
		Str("event", string(event)).
		Msg("Notification dispatch failed")
	return models.NotificationFailed
}

// buildPayload extracts the submitter-facing context from a record
func buildPayload(record models.Record) notify.Payload {
	meta := record.Meta()
	payload := notify.Payload{
		RecipientName:  meta.SubmitterName,
		RecipientEmail: meta.SubmitterEmail,
		Context:        map[string]string{},
	}

	switch r := record.(type) {
	case *models.Idea:
		payload.Title = r.Title
	case *models.IdeaJoinRequest:
		payload.Title = r.IdeaTitle
		payload.Context["tech_stack"] = r.TechStack
	case *models.ProjectFeature:
		payload.Title = r.Title
		payload.Context["project_name"] = r.ProjectName
	case *models.ProjectContribution:
		payload.Title = r.Title
		payload.Context["project_name"] = r.ProjectName
	}

	return payload
}
