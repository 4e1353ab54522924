package mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/project-moderation-api/internal/models"
)

// recordStore is the in-memory base shared by the per-kind repository
// mocks. It reproduces the store contract: pending on create, newest-first
// listing, (nil, nil) on missing ids, unconditional status overwrite and
// idempotent delete.
type recordStore struct {
	Records map[string]models.Record

	CreateError error
	ListError   error
	GetError    error
	UpdateError error
	DeleteError error

	UpdateStatusCalls int
	DeleteCalls       int

	nextID int
}

func newRecordStore() recordStore {
	return recordStore{Records: make(map[string]models.Record)}
}

func (s *recordStore) put(record models.Record) error {
	if s.CreateError != nil {
		return s.CreateError
	}
	meta := record.Meta()
	if meta.ID == "" {
		s.nextID++
		meta.ID = fmt.Sprintf("rec-%d", s.nextID)
	}
	meta.Status = models.StatusPending
	now := time.Now()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	s.Records[meta.ID] = record
	return nil
}

func parentID(record models.Record) string {
	switch r := record.(type) {
	case *models.IdeaJoinRequest:
		return r.IdeaID
	case *models.ProjectFeature:
		return r.ProjectID
	case *models.ProjectContribution:
		return r.ProjectID
	default:
		return ""
	}
}

func (s *recordStore) List(ctx context.Context, filter models.Filter) ([]models.Record, error) {
	if s.ListError != nil {
		return nil, s.ListError
	}
	var records []models.Record
	for _, record := range s.Records {
		if filter.Status != "" && record.RecordStatus() != filter.Status {
			continue
		}
		if filter.ParentID != "" && parentID(record) != filter.ParentID {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Meta().CreatedAt.After(records[j].Meta().CreatedAt)
	})
	return records, nil
}

func (s *recordStore) GetByID(ctx context.Context, id string) (models.Record, error) {
	if s.GetError != nil {
		return nil, s.GetError
	}
	return s.Records[id], nil
}

func (s *recordStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	s.UpdateStatusCalls++
	if s.UpdateError != nil {
		return s.UpdateError
	}
	if record, ok := s.Records[id]; ok {
		record.Meta().Status = status
		record.Meta().UpdatedAt = time.Now()
	}
	return nil
}

func (s *recordStore) Delete(ctx context.Context, id string) error {
	s.DeleteCalls++
	if s.DeleteError != nil {
		return s.DeleteError
	}
	delete(s.Records, id)
	return nil
}

// MockIdeaRepository is a mock implementation of IdeaRepository
type MockIdeaRepository struct {
	recordStore
}

func NewMockIdeaRepository() *MockIdeaRepository {
	return &MockIdeaRepository{recordStore: newRecordStore()}
}

func (m *MockIdeaRepository) Create(ctx context.Context, idea *models.Idea) error {
	return m.put(idea)
}

// MockJoinRequestRepository is a mock implementation of JoinRequestRepository
type MockJoinRequestRepository struct {
	recordStore
}

func NewMockJoinRequestRepository() *MockJoinRequestRepository {
	return &MockJoinRequestRepository{recordStore: newRecordStore()}
}

func (m *MockJoinRequestRepository) Create(ctx context.Context, req *models.IdeaJoinRequest) error {
	return m.put(req)
}

// MockFeatureRepository is a mock implementation of FeatureRepository
type MockFeatureRepository struct {
	recordStore
}

func NewMockFeatureRepository() *MockFeatureRepository {
	return &MockFeatureRepository{recordStore: newRecordStore()}
}

func (m *MockFeatureRepository) Create(ctx context.Context, feature *models.ProjectFeature) error {
	return m.put(feature)
}

// MockContributionRepository is a mock implementation of ContributionRepository
type MockContributionRepository struct {
	recordStore
}

func NewMockContributionRepository() *MockContributionRepository {
	return &MockContributionRepository{recordStore: newRecordStore()}
}

func (m *MockContributionRepository) Create(ctx context.Context, contribution *models.ProjectContribution) error {
	return m.put(contribution)
}
