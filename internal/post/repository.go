package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrNotFound = errors.New("post not found")

// Repository handles post persistence.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new post.
func (r *Repository) Create(ctx context.Context, p *Post) (*Post, error) {
	_, err := r.db.NewInsert().
		Model(p).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return p, nil
}

// GetByID retrieves a post by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	p := new(Post)
	err := r.db.NewSelect().
		Model(p).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return p, nil
}

// GetByAuthor lists an author's posts, newest first.
func (r *Repository) GetByAuthor(ctx context.Context, userID uuid.UUID) ([]Post, error) {
	var posts []Post
	err := r.db.NewSelect().
		Model(&posts).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// GetAll lists every post, newest first.
func (r *Repository) GetAll(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := r.db.NewSelect().
		Model(&posts).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// Update persists the post's like and comment lists. The whole row is
// the unit of atomicity; concurrent writers can overwrite each other.
func (r *Repository) Update(ctx context.Context, p *Post) (*Post, error) {
	result, err := r.db.NewUpdate().
		Model(p).
		WherePK().
		Column("likes", "comments").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
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

// Delete removes a post by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*Post)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
