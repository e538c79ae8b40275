package repository

import (
	"context"

	"github.com/YangSeungWon/pdf-history/internal/model"
)

// RevisionRepository defines data access for document revisions using SQL
// queries only. No business logic here — strictly persistence operations.
//
// Every mutation is a single-row statement, so identifier allocation and
// delete/update visibility ride on the database's own atomicity; the
// repository holds no locks and no in-process counters.
type RevisionRepository interface {
	// Create inserts a new revision row. The id and created_at are assigned
	// by the database as part of the insert; the returned record carries them.
	Create(ctx context.Context, rev *model.Revision) (*model.Revision, error)

	// FindByID returns a full revision, extracted text included.
	// Returns sql.ErrNoRows when the id does not exist.
	FindByID(ctx context.Context, id int64) (*model.Revision, error)

	// List returns summaries of all revisions, most recent first.
	// The result is a finite snapshot, never a live cursor.
	List(ctx context.Context) ([]model.RevisionSummary, error)

	// UpdateMemo replaces the memo of a revision in place, touching no other
	// column. Returns sql.ErrNoRows when the id does not exist.
	UpdateMemo(ctx context.Context, id int64, memo string) error

	// Delete removes a revision row. Returns sql.ErrNoRows when the id does
	// not exist, leaving the table untouched.
	Delete(ctx context.Context, id int64) error
}
