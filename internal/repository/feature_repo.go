package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/project-moderation-api/internal/database"
	"github.com/project-moderation-api/internal/models"
)

const featureColumns = `id, status, submitter_name, submitter_email, submitter_handle,
	project_id, project_name, title, description, category, difficulty, solution,
	created_at, updated_at`

// featureRepo is the concrete implementation of FeatureRepository
type featureRepo struct {
	db *database.DB
}

// NewFeatureRepo creates a new feature repository
func NewFeatureRepo(db *database.DB) FeatureRepository {
	return &featureRepo{db: db}
}

// Create inserts a new feature proposal with status pending
func (r *featureRepo) Create(ctx context.Context, feature *models.ProjectFeature) error {
	stampForCreate(&feature.Submission, uuid.NewString)

	query := `
		INSERT INTO project_features (` + featureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		feature.ID, feature.Status, feature.SubmitterName, feature.SubmitterEmail, feature.SubmitterHandle,
		feature.ProjectID, feature.ProjectName, feature.Title, feature.Description,
		feature.Category, feature.Difficulty, feature.Solution,
		feature.CreatedAt, feature.UpdatedAt,
	)
	return err
}

func scanFeature(row interface{ Scan(...interface{}) error }) (*models.ProjectFeature, error) {
	var feature models.ProjectFeature
	err := row.Scan(
		&feature.ID, &feature.Status, &feature.SubmitterName, &feature.SubmitterEmail, &feature.SubmitterHandle,
		&feature.ProjectID, &feature.ProjectName, &feature.Title, &feature.Description,
		&feature.Category, &feature.Difficulty, &feature.Solution,
		&feature.CreatedAt, &feature.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &feature, nil
}

// List retrieves feature proposals newest first, optionally filtered by
// status and/or parent project
func (r *featureRepo) List(ctx context.Context, filter models.Filter) ([]models.Record, error) {
	clause, args := listClause(filter, "project_id")
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+featureColumns+" FROM project_features WHERE 1=1"+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		feature, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, feature)
	}
	return records, rows.Err()
}

// GetByID retrieves a feature proposal by ID; returns (nil, nil) when absent
func (r *featureRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+featureColumns+" FROM project_features WHERE id = $1", id)
	feature, err := scanFeature(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return feature, nil
}

// UpdateStatus overwrites the feature's status and refreshes updated_at
func (r *featureRepo) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return updateStatus(ctx, r.db, "project_features", id, status)
}

// Delete permanently removes a feature proposal
func (r *featureRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "project_features", id)
}
