package answers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/time-matcha/timematcha-backend/internal/schedule"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Upsert replaces the caller's whole availability document (full-save path).
func (r *Repo) Upsert(ctx context.Context, a *Answer) error {
	if a.ProjectID == "" || a.UserID == "" {
		return fmt.Errorf("project id and user id required")
	}

	doc, err := json.Marshal(a.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}

	const q = `
insert into answers (project_id, user_id, name, avatar, availability, updated_at)
values ($1, $2::uuid, $3, $4, $5::jsonb, now())
on conflict (project_id, user_id) do update
set
  name = excluded.name,
  avatar = excluded.avatar,
  availability = excluded.availability,
  updated_at = now();
`
	_, err = r.db.Exec(ctx, q, a.ProjectID, a.UserID, a.Name, a.Avatar, doc)
	return err
}

// UpsertDate replaces a single date's entry, leaving every other date's
// entry from the caller's last save intact (per-date-save path).
func (r *Repo) UpsertDate(ctx context.Context, projectID, userID, name, avatar, date string, blocks schedule.DayBlocks) error {
	if projectID == "" || userID == "" {
		return fmt.Errorf("project id and user id required")
	}

	entry, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("marshal day blocks: %w", err)
	}

	const q = `
insert into answers (project_id, user_id, name, avatar, availability, updated_at)
values ($1, $2::uuid, $3, $4, jsonb_build_object($5::text, $6::jsonb), now())
on conflict (project_id, user_id) do update
set
  name = excluded.name,
  avatar = excluded.avatar,
  availability = jsonb_set(coalesce(answers.availability, '{}'::jsonb), array[$5::text], $6::jsonb),
  updated_at = now();
`
	_, err = r.db.Exec(ctx, q, projectID, userID, name, avatar, date, entry)
	return err
}

const answerColumns = `project_id, user_id::text, name, avatar, availability, created_at, updated_at`

// ListByProject returns every answer for a project.
func (r *Repo) ListByProject(ctx context.Context, projectID string) ([]Answer, error) {
	const q = `
select ` + answerColumns + `
from answers
where project_id = $1
order by created_at;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Answer, 0, 8)
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Get returns one user's answer for a project.
func (r *Repo) Get(ctx context.Context, projectID, userID string) (*Answer, error) {
	const q = `
select ` + answerColumns + `
from answers
where project_id = $1 and user_id = $2::uuid;
`
	a, err := scanAnswer(r.db.QueryRow(ctx, q, projectID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnswer(row rowScanner) (*Answer, error) {
	var a Answer
	var doc []byte
	err := row.Scan(&a.ProjectID, &a.UserID, &a.Name, &a.Avatar, &doc, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Availability = map[string]schedule.DayBlocks{}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &a.Availability); err != nil {
			return nil, fmt.Errorf("unmarshal availability: %w", err)
		}
	}
	return &a, nil
}
