package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/project-moderation-api/internal/database"
	"github.com/project-moderation-api/internal/models"
)

const ideaColumns = `id, status, submitter_name, submitter_email, submitter_handle,
	title, problem, solution, category, difficulty, looking_for, how_you_help, lead_project,
	created_at, updated_at`

// ideaRepo is the concrete implementation of IdeaRepository
type ideaRepo struct {
	db *database.DB
}

// NewIdeaRepo creates a new idea repository
func NewIdeaRepo(db *database.DB) IdeaRepository {
	return &ideaRepo{db: db}
}

// Create inserts a new idea with status pending
func (r *ideaRepo) Create(ctx context.Context, idea *models.Idea) error {
	stampForCreate(&idea.Submission, uuid.NewString)

	query := `
		INSERT INTO ideas (` + ideaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		idea.ID, idea.Status, idea.SubmitterName, idea.SubmitterEmail, idea.SubmitterHandle,
		idea.Title, idea.Problem, idea.Solution, idea.Category, idea.Difficulty,
		idea.LookingFor, idea.HowYouHelp, idea.LeadProject,
		idea.CreatedAt, idea.UpdatedAt,
	)
	return err
}

func scanIdea(row interface{ Scan(...interface{}) error }) (*models.Idea, error) {
	var idea models.Idea
	err := row.Scan(
		&idea.ID, &idea.Status, &idea.SubmitterName, &idea.SubmitterEmail, &idea.SubmitterHandle,
		&idea.Title, &idea.Problem, &idea.Solution, &idea.Category, &idea.Difficulty,
		&idea.LookingFor, &idea.HowYouHelp, &idea.LeadProject,
		&idea.CreatedAt, &idea.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// List retrieves ideas newest first, optionally filtered by status.
// Ideas are parentless, so a ParentID filter matches nothing.
func (r *ideaRepo) List(ctx context.Context, filter models.Filter) ([]models.Record, error) {
	clause, args := listClause(filter, "")
	rows, err := r.db.QueryContext(ctx, "SELECT "+ideaColumns+" FROM ideas WHERE 1=1"+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, idea)
	}
	return records, rows.Err()
}

// GetByID retrieves an idea by ID; returns (nil, nil) when absent
func (r *ideaRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+ideaColumns+" FROM ideas WHERE id = $1", id)
	idea, err := scanIdea(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return idea, nil
}

// UpdateStatus overwrites the idea's status and refreshes updated_at
func (r *ideaRepo) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return updateStatus(ctx, r.db, "ideas", id, status)
}

// Delete permanently removes an idea. Join requests against it are left
// orphaned, not cleaned up.
func (r *ideaRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "ideas", id)
}
