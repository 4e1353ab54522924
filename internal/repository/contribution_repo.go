package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/project-moderation-api/internal/database"
	"github.com/project-moderation-api/internal/models"
)

const contributionColumns = `id, status, submitter_name, submitter_email, submitter_handle,
	project_id, project_name, title, description, type, experience_level, timeline,
	how_you_help, pull_request_url, created_at, updated_at`

// contributionRepo is the concrete implementation of ContributionRepository
type contributionRepo struct {
	db *database.DB
}

// NewContributionRepo creates a new contribution repository
func NewContributionRepo(db *database.DB) ContributionRepository {
	return &contributionRepo{db: db}
}

// Create inserts a new contribution with status pending
func (r *contributionRepo) Create(ctx context.Context, contribution *models.ProjectContribution) error {
	stampForCreate(&contribution.Submission, uuid.NewString)

	query := `
		INSERT INTO project_contributions (` + contributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.ExecContext(ctx, query,
		contribution.ID, contribution.Status, contribution.SubmitterName,
		contribution.SubmitterEmail, contribution.SubmitterHandle,
		contribution.ProjectID, contribution.ProjectName, contribution.Title,
		contribution.Description, contribution.Type, contribution.ExperienceLevel,
		contribution.Timeline, contribution.HowYouHelp, contribution.PullRequestURL,
		contribution.CreatedAt, contribution.UpdatedAt,
	)
	return err
}

func scanContribution(row interface{ Scan(...interface{}) error }) (*models.ProjectContribution, error) {
	var c models.ProjectContribution
	err := row.Scan(
		&c.ID, &c.Status, &c.SubmitterName, &c.SubmitterEmail, &c.SubmitterHandle,
		&c.ProjectID, &c.ProjectName, &c.Title, &c.Description, &c.Type,
		&c.ExperienceLevel, &c.Timeline, &c.HowYouHelp, &c.PullRequestURL,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves contributions newest first, optionally filtered by status
// and/or parent project
func (r *contributionRepo) List(ctx context.Context, filter models.Filter) ([]models.Record, error) {
	clause, args := listClause(filter, "project_id")
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contributionColumns+" FROM project_contributions WHERE 1=1"+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, c)
	}
	return records, rows.Err()
}

// GetByID retrieves a contribution by ID; returns (nil, nil) when absent
func (r *contributionRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+contributionColumns+" FROM project_contributions WHERE id = $1", id)
	c, err := scanContribution(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateStatus overwrites the contribution's status and refreshes updated_at
func (r *contributionRepo) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return updateStatus(ctx, r.db, "project_contributions", id, status)
}

// Delete permanently removes a contribution
func (r *contributionRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "project_contributions", id)
}
