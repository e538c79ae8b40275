package postgres

import (
	"context"
	"database/sql"

	"github.com/YangSeungWon/pdf-history/internal/model"
	"github.com/YangSeungWon/pdf-history/internal/repository"
)

// RevisionPostgres is a PostgreSQL implementation of
// repository.RevisionRepository. It uses database/sql with parameterized
// queries and contains no business logic. Identifier allocation happens
// inside the INSERT via the table's BIGSERIAL column, so concurrent creates
// can never collide on an id.
type RevisionPostgres struct {
	db *sql.DB
}

// NewRevisionPostgres creates a new RevisionPostgres repository.
func NewRevisionPostgres(db *sql.DB) *RevisionPostgres {
	return &RevisionPostgres{db: db}
}

var _ repository.RevisionRepository = (*RevisionPostgres)(nil)

// Create inserts a new revision row and returns the stored record with the
// database-assigned id and timestamp.
func (r *RevisionPostgres) Create(ctx context.Context, rev *model.Revision) (*model.Revision, error) {
	const q = `
		INSERT INTO revisions (storage_path, display_name, extracted_text, memo)
		VALUES ($1, $2, $3, $4)
		RETURNING id, storage_path, display_name, extracted_text, memo, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rev.StoragePath,
		rev.DisplayName,
		rev.ExtractedText,
		rev.Memo,
	)
	var out model.Revision
	if err := row.Scan(
		&out.ID,
		&out.StoragePath,
		&out.DisplayName,
		&out.ExtractedText,
		&out.Memo,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single revision by its id, extracted text included.
func (r *RevisionPostgres) FindByID(ctx context.Context, id int64) (*model.Revision, error) {
	const q = `
		SELECT id, storage_path, display_name, extracted_text, memo, created_at
		FROM revisions
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var rev model.Revision
	if err := row.Scan(
		&rev.ID,
		&rev.StoragePath,
		&rev.DisplayName,
		&rev.ExtractedText,
		&rev.Memo,
		&rev.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rev, nil
}

// List returns all revision summaries ordered most recent first. Ids break
// ties, though equal timestamps cannot occur for distinct rows in practice.
func (r *RevisionPostgres) List(ctx context.Context) ([]model.RevisionSummary, error) {
	const q = `
		SELECT id, display_name, memo, created_at
		FROM revisions
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RevisionSummary, 0)
	for rows.Next() {
		var s model.RevisionSummary
		if err := rows.Scan(
			&s.ID,
			&s.DisplayName,
			&s.Memo,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateMemo replaces the memo column of one row. Other columns, including
// created_at, are left untouched.
func (r *RevisionPostgres) UpdateMemo(ctx context.Context, id int64, memo string) error {
	const q = `UPDATE revisions SET memo = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, memo, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a revision row, reporting sql.ErrNoRows for a missing id so
// callers can distinguish a no-op from a successful delete.
func (r *RevisionPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM revisions WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
