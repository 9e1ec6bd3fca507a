package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink-api/internal/logging"
	"github.com/devlinkhq/devlink-api/internal/user"
)

var ErrEntryNotFound = errors.New("entry not found")

// Store is the persistence collaborator for profiles.
type Store interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetAll(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, p *Profile) (*Profile, error)
	Update(ctx context.Context, p *Profile) (*Profile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// UserStore is the slice of identity persistence account deletion needs.
type UserStore interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// Fields is the caller-settable part of a profile. The owner is fixed
// at creation and never writable through updates.
type Fields struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Social         SocialLinks
}

// Service holds profile business logic. Every mutation is scoped to the
// caller's own identity; there is no way to target another user's
// profile.
type Service struct {
	profiles Store
	users    UserStore
	logger   *logging.Logger
}

func NewService(profiles Store, users UserStore, logger *logging.Logger) *Service {
	return &Service{profiles: profiles, users: users, logger: logger}
}

// Mine returns the caller's profile.
func (s *Service) Mine(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// All lists every profile.
func (s *Service) All(ctx context.Context) ([]Profile, error) {
	return s.profiles.GetAll(ctx)
}

// ByUserID returns the profile owned by the given user.
func (s *Service) ByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Upsert creates the caller's profile or replaces its fields. The two
// branches over the find result are explicit: this is the only place a
// profile comes into existence.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, fields Fields) (*Profile, error) {
	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			created, err := s.profiles.Create(ctx, &Profile{
				UserID:         userID,
				Company:        fields.Company,
				Website:        fields.Website,
				Location:       fields.Location,
				Status:         fields.Status,
				Skills:         fields.Skills,
				Bio:            fields.Bio,
				GithubUsername: fields.GithubUsername,
				Social:         fields.Social,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create profile: %w", err)
			}
			return created, nil
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	existing.Company = fields.Company
	existing.Website = fields.Website
	existing.Location = fields.Location
	existing.Status = fields.Status
	existing.Skills = fields.Skills
	existing.Bio = fields.Bio
	existing.GithubUsername = fields.GithubUsername
	existing.Social = fields.Social

	return s.profiles.Update(ctx, existing)
}

// AddExperience appends a work-history entry to the caller's profile.
func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, e Experience) (*Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	e.ID = uuid.New()
	p.AddExperience(e)

	return s.profiles.Update(ctx, p)
}

// UpdateExperience replaces the entry with the given id.
func (s *Service) UpdateExperience(ctx context.Context, userID, entryID uuid.UUID, e Experience) (*Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.UpdateExperience(entryID, e) {
		return nil, ErrEntryNotFound
	}

	return s.profiles.Update(ctx, p)
}

// RemoveExperience deletes the entry with the given id.
func (s *Service) RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveExperience(entryID) {
		return nil, ErrEntryNotFound
	}

	return s.profiles.Update(ctx, p)
}

// AddEducation appends an education entry to the caller's profile.
func (s *Service) AddEducation(ctx context.Context, userID uuid.UUID, e Education) (*Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	e.ID = uuid.New()
	p.AddEducation(e)

	return s.profiles.Update(ctx, p)
}

// UpdateEducation replaces the entry with the given id.
func (s *Service) UpdateEducation(ctx context.Context, userID, entryID uuid.UUID, e Education) (*Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.UpdateEducation(entryID, e) {
		return nil, ErrEntryNotFound
	}

	return s.profiles.Update(ctx, p)
}

// RemoveEducation deletes the entry with the given id.
func (s *Service) RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.RemoveEducation(entryID) {
		return nil, ErrEntryNotFound
	}

	return s.profiles.Update(ctx, p)
}

// DeleteAccount removes the caller's profile and identity. Authored
// posts are intentionally left in place; their author snapshots keep
// them renderable.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
