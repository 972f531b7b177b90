package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/GIVandez/plot-twister/internal/db"
	"github.com/GIVandez/plot-twister/internal/domain"
)

// SQLiteFrameRepo implements FrameRepo on SQLite.
type SQLiteFrameRepo struct {
	db db.DBTX
}

// NewSQLiteFrameRepo creates a new SQLiteFrameRepo.
func NewSQLiteFrameRepo(conn db.DBTX) *SQLiteFrameRepo {
	return &SQLiteFrameRepo{db: conn}
}

const frameColumns = `id, project_id, number, start_time, end_time, description, pic_path, connected_page, created_at, updated_at`

func (r *SQLiteFrameRepo) Create(ctx context.Context, f *domain.Frame) error {
	query := `INSERT INTO frames (` + frameColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.ProjectID,
		f.Number,
		f.StartTime,
		f.EndTime,
		f.Description,
		f.PicPath,
		nullableString(f.ConnectedPage),
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
	)
	if err != nil {
		return writeErr("inserting frame", err)
	}
	return nil
}

func (r *SQLiteFrameRepo) GetByID(ctx context.Context, id string) (*domain.Frame, error) {
	query := `SELECT ` + frameColumns + ` FROM frames WHERE id = ?`
	f, err := scanFrame(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, readErr("frame", err)
	}
	return f, nil
}

func (r *SQLiteFrameRepo) GetByNumber(ctx context.Context, projectID string, number int) (*domain.Frame, error) {
	query := `SELECT ` + frameColumns + ` FROM frames WHERE project_id = ? AND number = ?`
	f, err := scanFrame(r.db.QueryRowContext(ctx, query, projectID, number))
	if err != nil {
		return nil, readErr("frame", err)
	}
	return f, nil
}

func (r *SQLiteFrameRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Frame, error) {
	query := `SELECT ` + frameColumns + ` FROM frames WHERE project_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing frames: %w", err)
	}
	defer rows.Close()

	var frames []*domain.Frame
	for rows.Next() {
		f, err := scanFrame(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning frame row: %w", err)
		}
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating frames: %w", err)
	}
	return frames, nil
}

func (r *SQLiteFrameRepo) Count(ctx context.Context, projectID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM frames WHERE project_id = ?`, projectID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting frames: %w", err)
	}
	return n, nil
}

func (r *SQLiteFrameRepo) MaxNumber(ctx context.Context, projectID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(number), 0) FROM frames WHERE project_id = ?`, projectID).Scan(&n); err != nil {
		return 0, fmt.Errorf("reading max frame number: %w", err)
	}
	return n, nil
}

// Update writes the editable fields of f. Number and times of siblings are
// untouched; placement changes go through UpdatePlacement or ApplyPlacements.
func (r *SQLiteFrameRepo) Update(ctx context.Context, f *domain.Frame) error {
	query := `UPDATE frames SET start_time = ?, end_time = ?, description = ?, pic_path = ?, connected_page = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		f.StartTime,
		f.EndTime,
		f.Description,
		f.PicPath,
		nullableString(f.ConnectedPage),
		formatTime(f.UpdatedAt),
		f.ID,
	)
	if err != nil {
		return writeErr("updating frame", err)
	}
	return expectRows(res, 1, "frame")
}

// UpdatePlacement writes number, start_time and end_time of one frame.
func (r *SQLiteFrameRepo) UpdatePlacement(ctx context.Context, f *domain.Frame) error {
	query := `UPDATE frames SET number = ?, start_time = ?, end_time = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, f.Number, f.StartTime, f.EndTime, nowUTC(), f.ID)
	if err != nil {
		return writeErr("updating frame placement", err)
	}
	return expectRows(res, 1, "frame")
}

// AssignNumbers sets the number of every frame in batch with one UPDATE.
func (r *SQLiteFrameRepo) AssignNumbers(ctx context.Context, projectID string, batch []domain.NumberAssignment) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	args := make([]any, 0, len(batch)*3+2)
	b.WriteString(`UPDATE frames SET number = CASE id`)
	for _, a := range batch {
		b.WriteString(` WHEN ? THEN ?`)
		args = append(args, a.FrameID, a.Number)
	}
	b.WriteString(` END, updated_at = ? WHERE project_id = ? AND id IN (`)
	b.WriteString(placeholders(len(batch)))
	b.WriteString(`)`)
	args = append(args, nowUTC(), projectID)
	for _, a := range batch {
		args = append(args, a.FrameID)
	}

	res, err := r.db.ExecContext(ctx, b.String(), args...)
	if err != nil {
		return writeErr("assigning frame numbers", err)
	}
	return expectRows(res, int64(len(batch)), "frames")
}

// ApplyPlacements writes number, start_time and end_time of every frame with
// one UPDATE.
func (r *SQLiteFrameRepo) ApplyPlacements(ctx context.Context, projectID string, frames []*domain.Frame) error {
	if len(frames) == 0 {
		return nil
	}

	n := len(frames)
	numbers := make([]any, 0, n*2)
	starts := make([]any, 0, n*2)
	ends := make([]any, 0, n*2)
	ids := make([]any, 0, n)
	for _, f := range frames {
		numbers = append(numbers, f.ID, f.Number)
		starts = append(starts, f.ID, f.StartTime)
		ends = append(ends, f.ID, f.EndTime)
		ids = append(ids, f.ID)
	}
	whens := strings.Repeat(` WHEN ? THEN ?`, n)

	query := `UPDATE frames SET` +
		` number = CASE id` + whens + ` END,` +
		` start_time = CASE id` + whens + ` END,` +
		` end_time = CASE id` + whens + ` END,` +
		` updated_at = ?` +
		` WHERE project_id = ? AND id IN (` + placeholders(n) + `)`

	args := make([]any, 0, n*7+2)
	args = append(args, numbers...)
	args = append(args, starts...)
	args = append(args, ends...)
	args = append(args, nowUTC(), projectID)
	args = append(args, ids...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return writeErr("applying frame placements", err)
	}
	return expectRows(res, int64(n), "frames")
}

func (r *SQLiteFrameRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM frames WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting frame: %w", err)
	}
	return expectRows(res, 1, "frame")
}

func (r *SQLiteFrameRepo) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM frames WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting project frames: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleted frames rows affected: %w", err)
	}
	return int(n), nil
}

func scanFrame(s rowScanner) (*domain.Frame, error) {
	var f domain.Frame
	var connected sql.NullString
	var createdAt, updatedAt string
	err := s.Scan(
		&f.ID, &f.ProjectID, &f.Number,
		&f.StartTime, &f.EndTime,
		&f.Description, &f.PicPath, &connected,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.ConnectedPage = stringPtr(connected)
	f.CreatedAt = parseTime(createdAt)
	f.UpdatedAt = parseTime(updatedAt)
	return &f, nil
}
