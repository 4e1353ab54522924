package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/project-moderation-api/internal/database"
	"github.com/project-moderation-api/internal/models"
)

const joinRequestColumns = `id, status, submitter_name, submitter_email, submitter_handle,
	idea_id, idea_title, tech_stack, message, created_at, updated_at`

// joinRequestRepo is the concrete implementation of JoinRequestRepository
type joinRequestRepo struct {
	db *database.DB
}

// NewJoinRequestRepo creates a new join request repository
func NewJoinRequestRepo(db *database.DB) JoinRequestRepository {
	return &joinRequestRepo{db: db}
}

// Create inserts a new join request with status pending. The idea title is
// a snapshot taken now; it is never resynchronized.
func (r *joinRequestRepo) Create(ctx context.Context, req *models.IdeaJoinRequest) error {
	stampForCreate(&req.Submission, uuid.NewString)

	query := `
		INSERT INTO idea_join_requests (` + joinRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Status, req.SubmitterName, req.SubmitterEmail, req.SubmitterHandle,
		req.IdeaID, req.IdeaTitle, req.TechStack, req.Message,
		req.CreatedAt, req.UpdatedAt,
	)
	return err
}

func scanJoinRequest(row interface{ Scan(...interface{}) error }) (*models.IdeaJoinRequest, error) {
	var req models.IdeaJoinRequest
	err := row.Scan(
		&req.ID, &req.Status, &req.SubmitterName, &req.SubmitterEmail, &req.SubmitterHandle,
		&req.IdeaID, &req.IdeaTitle, &req.TechStack, &req.Message,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List retrieves join requests newest first, optionally filtered by status
// and/or parent idea
func (r *joinRequestRepo) List(ctx context.Context, filter models.Filter) ([]models.Record, error) {
	clause, args := listClause(filter, "idea_id")
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+joinRequestColumns+" FROM idea_join_requests WHERE 1=1"+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		req, err := scanJoinRequest(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, req)
	}
	return records, rows.Err()
}

// GetByID retrieves a join request by ID; returns (nil, nil) when absent
func (r *joinRequestRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+joinRequestColumns+" FROM idea_join_requests WHERE id = $1", id)
	req, err := scanJoinRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus overwrites the request's status and refreshes updated_at
func (r *joinRequestRepo) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return updateStatus(ctx, r.db, "idea_join_requests", id, status)
}

// Delete permanently removes a join request
func (r *joinRequestRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "idea_join_requests", id)
}
