package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// User is the server-side row backing a browser's anonymous identity.
type User struct {
	ID        string    `json:"-"`
	AnonID    string    `json:"anon_id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// UpsertUser carries the profile fields supplied by the client. Empty
// fields never overwrite stored values.
type UpsertUser struct {
	AnonID string
	Name   string
	Avatar string
}

// EnsureUser creates the user row on first contact and refreshes the
// profile on subsequent ones.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (*User, error) {
	if u.AnonID == "" {
		return nil, fmt.Errorf("anon_id required")
	}

	const q = `
insert into users (anon_id, name, avatar, updated_at)
values ($1, nullif($2,''), nullif($3,''), now())
on conflict (anon_id) do update
set
  name = coalesce(excluded.name, users.name),
  avatar = coalesce(excluded.avatar, users.avatar),
  updated_at = now()
returning id::text, anon_id, coalesce(name, ''), coalesce(avatar, ''), created_at, updated_at;
`
	var out User
	err := r.db.QueryRow(ctx, q, u.AnonID, u.Name, u.Avatar).
		Scan(&out.ID, &out.AnonID, &out.Name, &out.Avatar, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
