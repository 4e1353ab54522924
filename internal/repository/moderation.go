package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/project-moderation-api/internal/database"
	"github.com/project-moderation-api/internal/models"
)

// Shared SQL for the lifecycle operations every kind needs. The four tables
// differ only in payload columns, so status updates, deletes and filter
// clauses are written once, parameterized by table name.

// listClause builds the WHERE/ORDER BY tail of a list query from a filter.
// parentCol is the table's parent-reference column ("" for parentless kinds,
// which makes any ParentID filter match nothing rather than everything).
func listClause(filter models.Filter, parentCol string) (string, []interface{}) {
	clause := ""
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		clause += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ParentID != "" {
		if parentCol == "" {
			clause += " AND FALSE"
		} else {
			args = append(args, filter.ParentID)
			clause += fmt.Sprintf(" AND %s = $%d", parentCol, len(args))
		}
	}

	return clause + " ORDER BY created_at DESC", args
}

// updateStatus overwrites a record's status and refreshes updated_at.
// Unconditional: no check on the prior status, last write wins.
func updateStatus(ctx context.Context, db *database.DB, table, id string, status models.Status) error {
	query := fmt.Sprintf("UPDATE %s SET status = $1, updated_at = $2 WHERE id = $3", table)
	_, err := db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

// deleteByID permanently removes a record. Deleting a missing id is not an
// error; no cascade to child records.
func deleteByID(ctx context.Context, db *database.DB, table, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
	_, err := db.ExecContext(ctx, query, id)
	return err
}

// stampForCreate fills in store-assigned fields before an INSERT. Any
// caller-supplied status is overridden: every record starts pending.
func stampForCreate(meta *models.Submission, newID func() string) {
	if meta.ID == "" {
		meta.ID = newID()
	}
	meta.Status = models.StatusPending
	now := time.Now()
	meta.CreatedAt = now
	meta.UpdatedAt = now
}
