package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/time-matcha/timematcha-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `public_id, user_id::text, name, location, dates, start_time, end_time, status, created_at, updated_at`

// CreateProject carries the validated fields for a new project.
type CreateProject struct {
	Name      string
	Location  string
	Dates     []string
	StartTime string
	EndTime   string
}

// Create inserts a new project owned by the given user.
func (r *ProjectRepository) Create(ctx context.Context, ownerID string, in CreateProject) (*domain.Project, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required")
	}

	for i := 0; i < 5; i++ {
		publicID, err := domain.NewPublicID()
		if err != nil {
			return nil, err
		}

		const q = `
INSERT INTO projects (public_id, user_id, name, location, dates, start_time, end_time, status)
VALUES ($1, $2::uuid, $3, NULLIF($4, ''), $5, $6, $7, $8)
RETURNING ` + projectColumns + `;
`
		row := r.db.QueryRowContext(ctx, q,
			publicID, ownerID, in.Name, in.Location, pq.Array(in.Dates),
			in.StartTime, in.EndTime, domain.StatusAdjusting)

		p, err := scanProject(row)
		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// GetByPublicID fetches a project by its shareable id. No ownership check:
// anyone holding the link may read.
func (r *ProjectRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.Project, error) {
	const q = `
SELECT ` + projectColumns + `
FROM projects
WHERE public_id = $1 AND deleted_at IS NULL;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, publicID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListForUser returns every non-deleted project the user created or
// answered, newest first unless oldestFirst is set.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID string, oldestFirst bool) ([]domain.Project, error) {
	order := "DESC"
	if oldestFirst {
		order = "ASC"
	}
	q := `
SELECT ` + projectColumns + `
FROM projects p
WHERE p.deleted_at IS NULL
  AND (p.user_id = $1::uuid
       OR EXISTS (SELECT 1 FROM answers a WHERE a.project_id = p.public_id AND a.user_id = $1::uuid))
ORDER BY p.created_at ` + order + `;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Rename updates the project's name.
func (r *ProjectRepository) Rename(ctx context.Context, ownerID, publicID, newName string) (*domain.Project, error) {
	const q = `
UPDATE projects
SET name = $3, updated_at = now()
WHERE user_id = $1::uuid AND public_id = $2 AND deleted_at IS NULL
RETURNING ` + projectColumns + `;
`
	return r.returningOne(ctx, q, ownerID, publicID, newName)
}

// SetStatus moves the project between adjusting and confirmed.
func (r *ProjectRepository) SetStatus(ctx context.Context, ownerID, publicID, status string) (*domain.Project, error) {
	const q = `
UPDATE projects
SET status = $3, updated_at = now()
WHERE user_id = $1::uuid AND public_id = $2 AND deleted_at IS NULL
RETURNING ` + projectColumns + `;
`
	return r.returningOne(ctx, q, ownerID, publicID, status)
}

// AddDate appends a candidate date, keeping the date set duplicate-free.
func (r *ProjectRepository) AddDate(ctx context.Context, ownerID, publicID, date string) (*domain.Project, error) {
	const q = `
UPDATE projects
SET dates = array_append(dates, $3), updated_at = now()
WHERE user_id = $1::uuid AND public_id = $2 AND deleted_at IS NULL
  AND NOT ($3 = ANY(dates))
RETURNING ` + projectColumns + `;
`
	p, err := r.returningOne(ctx, q, ownerID, publicID, date)
	if errors.Is(err, domain.ErrNotFound) {
		// Distinguish a missing project from a duplicate date.
		if _, getErr := r.GetByPublicID(ctx, publicID); getErr == nil {
			return nil, domain.ErrDuplicateDate
		}
		return nil, domain.ErrNotFound
	}
	return p, err
}

// RemoveDate drops a candidate date.
func (r *ProjectRepository) RemoveDate(ctx context.Context, ownerID, publicID, date string) (*domain.Project, error) {
	const q = `
UPDATE projects
SET dates = array_remove(dates, $3), updated_at = now()
WHERE user_id = $1::uuid AND public_id = $2 AND deleted_at IS NULL
  AND $3 = ANY(dates)
RETURNING ` + projectColumns + `;
`
	p, err := r.returningOne(ctx, q, ownerID, publicID, date)
	if errors.Is(err, domain.ErrNotFound) {
		if _, getErr := r.GetByPublicID(ctx, publicID); getErr == nil {
			return nil, domain.ErrDateNotFound
		}
		return nil, domain.ErrNotFound
	}
	return p, err
}

// SoftDelete marks a project as deleted.
func (r *ProjectRepository) SoftDelete(ctx context.Context, ownerID, publicID string) (bool, error) {
	const q = `
UPDATE projects
SET deleted_at = now(), updated_at = now()
WHERE user_id = $1::uuid AND public_id = $2 AND deleted_at IS NULL;
`
	result, err := r.db.ExecContext(ctx, q, ownerID, publicID)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// PurgeDeleted hard-deletes projects soft-deleted before the cutoff,
// cascading to their answers. Returns the number of purged projects.
func (r *ProjectRepository) PurgeDeleted(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const qAnswers = `
DELETE FROM answers
WHERE project_id IN (SELECT public_id FROM projects WHERE deleted_at IS NOT NULL AND deleted_at < $1);
`
	if _, err := tx.ExecContext(ctx, qAnswers, cutoff); err != nil {
		return 0, err
	}

	const qProjects = `
DELETE FROM projects
WHERE deleted_at IS NOT NULL AND deleted_at < $1;
`
	result, err := tx.ExecContext(ctx, qProjects, cutoff)
	if err != nil {
		return 0, err
	}
	purged, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return purged, nil
}

func (r *ProjectRepository) returningOne(ctx context.Context, q string, args ...any) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var location sql.NullString
	err := row.Scan(&p.PublicID, &p.OwnerID, &p.Name, &location, pq.Array(&p.Dates),
		&p.StartTime, &p.EndTime, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Location = location.String
	return &p, nil
}
