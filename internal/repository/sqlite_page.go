package repository

import (
	"context"
	"fmt"

	"github.com/GIVandez/plot-twister/internal/db"
	"github.com/GIVandez/plot-twister/internal/domain"
)

// SQLitePageRepo implements PageRepo on SQLite.
type SQLitePageRepo struct {
	db db.DBTX
}

// NewSQLitePageRepo creates a new SQLitePageRepo.
func NewSQLitePageRepo(conn db.DBTX) *SQLitePageRepo {
	return &SQLitePageRepo{db: conn}
}

const pageColumns = `id, project_id, number, text, created_at, updated_at`

func (r *SQLitePageRepo) Create(ctx context.Context, p *domain.Page) error {
	query := `INSERT INTO pages (` + pageColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ProjectID, p.Number, p.Text,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return writeErr("inserting page", err)
	}
	return nil
}

func (r *SQLitePageRepo) GetByID(ctx context.Context, id string) (*domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE id = ?`
	p, err := scanPage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, readErr("page", err)
	}
	return p, nil
}

func (r *SQLitePageRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE project_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	var pages []*domain.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning page row: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

func (r *SQLitePageRepo) MaxNumber(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) FROM pages WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reading max page number: %w", err)
	}
	return n, nil
}

func (r *SQLitePageRepo) Update(ctx context.Context, p *domain.Page) error {
	query := `UPDATE pages SET number = ?, text = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, p.Number, p.Text, formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return writeErr("updating page", err)
	}
	return expectRows(res, 1, "page")
}

// Delete removes the page. Frames linked to it are unlinked by
// ON DELETE SET NULL.
func (r *SQLitePageRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	return expectRows(res, 1, "page")
}

func (r *SQLitePageRepo) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pages WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting project pages: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleted pages rows affected: %w", err)
	}
	return int(n), nil
}

func scanPage(s rowScanner) (*domain.Page, error) {
	var p domain.Page
	var createdAt, updatedAt string
	if err := s.Scan(&p.ID, &p.ProjectID, &p.Number, &p.Text, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
