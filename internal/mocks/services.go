package mocks

import (
	"context"

	"github.com/project-moderation-api/internal/models"
)

// MockModerationService is a mock implementation of ModerationService
type MockModerationService struct {
	Ideas          map[string]*models.Idea
	Lists          map[models.Kind][]models.Record
	Gets           map[string]models.Record
	SubmitError    error
	ListError      error
	ActionError    error
	Transitions    []string // "<kind>/<id>/<status>" in call order
	Deleted        []string
	LastResult     *models.TransitionResult
	ListFilters    []models.Filter
	BlockApproval  chan struct{} // when set, Approve waits until closed
	ApproveEntered chan struct{} // when set, receives once Approve is running
}

func NewMockModerationService() *MockModerationService {
	return &MockModerationService{
		Ideas: make(map[string]*models.Idea),
		Lists: make(map[models.Kind][]models.Record),
		Gets:  make(map[string]models.Record),
	}
}

func (m *MockModerationService) SubmitIdea(ctx context.Context, sub *models.IdeaSubmission) (*models.Idea, error) {
	if m.SubmitError != nil {
		return nil, m.SubmitError
	}
	idea := &models.Idea{
		Submission: models.Submission{
			ID:             "idea-1",
			Status:         models.StatusPending,
			SubmitterName:  sub.SubmitterName,
			SubmitterEmail: sub.SubmitterEmail,
		},
		Title: sub.Title,
	}
	m.Ideas[idea.ID] = idea
	return idea, nil
}

func (m *MockModerationService) SubmitJoinRequest(ctx context.Context, sub *models.JoinRequestSubmission) (*models.IdeaJoinRequest, error) {
	if m.SubmitError != nil {
		return nil, m.SubmitError
	}
	return &models.IdeaJoinRequest{
		Submission: models.Submission{ID: "req-1", Status: models.StatusPending},
		IdeaID:     sub.IdeaID,
		TechStack:  sub.TechStack,
	}, nil
}

func (m *MockModerationService) SubmitFeature(ctx context.Context, sub *models.FeatureSubmission) (*models.ProjectFeature, error) {
	if m.SubmitError != nil {
		return nil, m.SubmitError
	}
	return &models.ProjectFeature{
		Submission: models.Submission{ID: "feat-1", Status: models.StatusPending},
		ProjectID:  sub.ProjectID,
		Title:      sub.Title,
	}, nil
}

func (m *MockModerationService) SubmitContribution(ctx context.Context, sub *models.ContributionSubmission) (*models.ProjectContribution, error) {
	if m.SubmitError != nil {
		return nil, m.SubmitError
	}
	return &models.ProjectContribution{
		Submission: models.Submission{ID: "contrib-1", Status: models.StatusPending},
		ProjectID:  sub.ProjectID,
		Title:      sub.Title,
	}, nil
}

func (m *MockModerationService) List(ctx context.Context, kind models.Kind, filter models.Filter) ([]models.Record, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.ListFilters = append(m.ListFilters, filter)
	var matched []models.Record
	for _, record := range m.Lists[kind] {
		if filter.Status != "" && record.RecordStatus() != filter.Status {
			continue
		}
		if filter.ParentID != "" && parentID(record) != filter.ParentID {
			continue
		}
		matched = append(matched, record)
	}
	return matched, nil
}

func (m *MockModerationService) Get(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	return m.Gets[id], nil
}

func (m *MockModerationService) Approve(ctx context.Context, kind models.Kind, id string) (*models.TransitionResult, error) {
	if m.BlockApproval != nil {
		if m.ApproveEntered != nil {
			m.ApproveEntered <- struct{}{}
		}
		<-m.BlockApproval
	}
	return m.doTransition(kind, id, models.StatusApproved)
}

func (m *MockModerationService) Reject(ctx context.Context, kind models.Kind, id string) (*models.TransitionResult, error) {
	return m.doTransition(kind, id, models.StatusRejected)
}

func (m *MockModerationService) doTransition(kind models.Kind, id string, status models.Status) (*models.TransitionResult, error) {
	if m.ActionError != nil {
		return nil, m.ActionError
	}
	record := m.Gets[id]
	if record == nil {
		return nil, models.ErrRecordNotFound
	}
	record.Meta().Status = status
	m.Transitions = append(m.Transitions, string(kind)+"/"+id+"/"+string(status))
	m.LastResult = &models.TransitionResult{Record: record, Notification: models.NotificationSent}
	return m.LastResult, nil
}

func (m *MockModerationService) Delete(ctx context.Context, kind models.Kind, id string) error {
	if m.ActionError != nil {
		return m.ActionError
	}
	m.Deleted = append(m.Deleted, string(kind)+"/"+id)
	return nil
}
