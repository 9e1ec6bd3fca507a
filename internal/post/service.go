package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink-api/internal/logging"
	"github.com/devlinkhq/devlink-api/internal/user"
)

var (
	ErrNotOwner        = errors.New("post cannot be deleted")
	ErrCommentNotFound = errors.New("comment already deleted")
)

// Store is the persistence collaborator for posts.
type Store interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetByAuthor(ctx context.Context, userID uuid.UUID) ([]Post, error)
	GetAll(ctx context.Context) ([]Post, error)
	Update(ctx context.Context, p *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserStore resolves authors for snapshot fields.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Service holds post business logic, including the ownership rule for
// deletion. Likes and comments only require authentication and always
// act as the authenticated identity.
type Service struct {
	posts  Store
	users  UserStore
	logger *logging.Logger
}

func NewService(posts Store, users UserStore, logger *logging.Logger) *Service {
	return &Service{posts: posts, users: users, logger: logger}
}

// Create stores a new post with the author's name and avatar
// denormalized at this moment.
func (s *Service) Create(ctx context.Context, authorID uuid.UUID, text string) (*Post, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	created, err := s.posts.Create(ctx, &Post{
		UserID: author.ID,
		Name:   author.Name,
		Avatar: author.AvatarURL,
		Text:   text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return created, nil
}

// ByID returns a single post.
func (s *Service) ByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListAll returns every post, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	return s.posts.GetAll(ctx)
}

// ListByAuthor returns the caller's posts, newest first.
func (s *Service) ListByAuthor(ctx context.Context, userID uuid.UUID) ([]Post, error) {
	return s.posts.GetByAuthor(ctx, userID)
}

// Like adds the identity to the post's like set. Liking an already
// liked post is a no-op; the second return reports whether the state
// changed.
func (s *Service) Like(ctx context.Context, userID, postID uuid.UUID) (*Post, bool, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	if !p.Like(userID) {
		return p, false, nil
	}

	updated, err := s.posts.Update(ctx, p)
	if err != nil {
		return nil, false, err
	}

	return updated, true, nil
}

// Unlike removes the identity from the like set, symmetric to Like.
func (s *Service) Unlike(ctx context.Context, userID, postID uuid.UUID) (*Post, bool, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	if !p.Unlike(userID) {
		return p, false, nil
	}

	updated, err := s.posts.Update(ctx, p)
	if err != nil {
		return nil, false, err
	}

	return updated, true, nil
}

// AddComment appends a comment authored by the authenticated identity.
func (s *Service) AddComment(ctx context.Context, userID, postID uuid.UUID, text string) (*Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	p.AddComment(Comment{
		ID:        uuid.New(),
		UserID:    author.ID,
		Name:      author.Name,
		Avatar:    author.AvatarURL,
		Text:      text,
		CreatedAt: time.Now(),
	})

	return s.posts.Update(ctx, p)
}

// RemoveComment deletes a comment by id. Any authenticated identity may
// remove a comment; only post deletion is ownership-gated.
func (s *Service) RemoveComment(ctx context.Context, postID, commentID uuid.UUID) (*Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveComment(commentID) {
		return nil, ErrCommentNotFound
	}

	return s.posts.Update(ctx, p)
}

// Delete removes a post. Fails with ErrNotOwner unless the caller is
// the author.
func (s *Service) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !p.CanMutate(userID) {
		return ErrNotOwner
	}

	return s.posts.Delete(ctx, postID)
}
