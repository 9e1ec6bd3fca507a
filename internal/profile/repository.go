package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrNotFound = errors.New("profile not found")

// Repository handles profile persistence.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetByUserID retrieves the profile owned by a user, with the owner's
// name and avatar populated.
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p := new(Profile)
	err := r.db.NewSelect().
		Model(p).
		Relation("User").
		Where("p.user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// GetAll retrieves every profile with owners populated.
func (r *Repository) GetAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := r.db.NewSelect().
		Model(&profiles).
		Relation("User").
		Order("p.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

// Create inserts a new profile.
func (r *Repository) Create(ctx context.Context, p *Profile) (*Profile, error) {
	_, err := r.db.NewInsert().
		Model(p).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return p, nil
}

// Update persists the whole profile row, embedded lists included. This
// is the single-document write the store guarantees atomicity for;
// there is no optimistic concurrency check.
func (r *Repository) Update(ctx context.Context, p *Profile) (*Profile, error) {
	result, err := r.db.NewUpdate().
		Model(p).
		Set("updated_at = NOW()").
		WherePK().
		Column("company", "website", "location", "status", "skills", "bio",
			"github_username", "experience", "education", "social").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return p, nil
}

// DeleteByUserID removes the profile owned by a user. Deleting an
// absent profile is not an error; account deletion calls this for
// accounts that never created one.
func (r *Repository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Profile)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}
