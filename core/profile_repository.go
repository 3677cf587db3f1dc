package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRecord represents a stored identity, including the password hash.
// The sign-in core only reads profiles; account management owns mutation.
type ProfileRecord struct {
	ID           string    `json:"profileId"`
	Email        string    `json:"profileEmail"`
	Handle       string    `json:"profileHandle"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"profileCreateDate"`
}

// ProfileRepository defines persistence operations for profiles.
// FindByEmail returns (nil, nil) when no profile matches, so callers can tell
// "not found" apart from a storage failure.
type ProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*ProfileRecord, error)
	Create(ctx context.Context, email, handle, passwordHash string) (string, error)
}

// PgProfileRepository implements ProfileRepository using pgxpool.
type PgProfileRepository struct {
	db *pgxpool.Pool
}

func NewPgProfileRepository(db *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{db: db}
}

func (r *PgProfileRepository) FindByEmail(ctx context.Context, email string) (*ProfileRecord, error) {
	const q = `SELECT id, email, handle, password_hash, created_at FROM profiles WHERE email=$1`
	var p ProfileRecord
	if err := r.db.QueryRow(ctx, q, email).Scan(&p.ID, &p.Email, &p.Handle, &p.PasswordHash, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgProfileRepository) Create(ctx context.Context, email, handle, passwordHash string) (string, error) {
	const q = `INSERT INTO profiles (email, handle, password_hash) VALUES ($1,$2,$3) RETURNING id`
	var id string
	if err := r.db.QueryRow(ctx, q, email, handle, passwordHash).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
