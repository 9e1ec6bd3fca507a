package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink-api/internal/logging"
)

// fakeProfileStore is an in-memory Store keyed by owner.
type fakeProfileStore struct {
	byUser map[uuid.UUID]*Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{byUser: make(map[uuid.UUID]*Profile)}
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (*Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) GetAll(_ context.Context) ([]Profile, error) {
	var out []Profile
	for _, p := range f.byUser {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProfileStore) Create(_ context.Context, p *Profile) (*Profile, error) {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	f.byUser[p.UserID] = p
	return p, nil
}

func (f *fakeProfileStore) Update(_ context.Context, p *Profile) (*Profile, error) {
	if _, ok := f.byUser[p.UserID]; !ok {
		return nil, ErrNotFound
	}
	cp := *p
	f.byUser[p.UserID] = &cp
	return p, nil
}

func (f *fakeProfileStore) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	delete(f.byUser, userID)
	return nil
}

// fakeUserStore records identity deletions.
type fakeUserStore struct {
	deleted []uuid.UUID
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService() (*Service, *fakeProfileStore, *fakeUserStore) {
	profiles := newFakeProfileStore()
	users := &fakeUserStore{}
	return NewService(profiles, users, logging.NewLogger(true)), profiles, users
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()

	created, err := svc.Upsert(context.Background(), userID, Fields{
		Status: "developer",
		Skills: []string{"go", "sql"},
	})
	if err != nil {
		t.Fatalf("Upsert create: %v", err)
	}
	if created.UserID != userID {
		t.Fatalf("expected owner %s, got %s", userID, created.UserID)
	}

	updated, err := svc.Upsert(context.Background(), userID, Fields{
		Status:  "senior developer",
		Skills:  []string{"go"},
		Company: "acme",
	})
	if err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatal("update must not create a second profile")
	}
	if updated.Status != "senior developer" || updated.Company != "acme" {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if len(updated.Skills) != 1 {
		t.Fatalf("expected skills replaced, got %v", updated.Skills)
	}
}

func TestMineMissingProfile(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Mine(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExperienceLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()

	if _, err := svc.Upsert(context.Background(), userID, Fields{Status: "dev", Skills: []string{"go"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := svc.AddExperience(context.Background(), userID, Experience{
		Title:   "Engineer",
		Company: "acme",
		From:    from,
	})
	if err != nil {
		t.Fatalf("AddExperience: %v", err)
	}
	if len(p.Experience) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(p.Experience))
	}
	first := p.Experience[0]
	if first.ID == uuid.Nil {
		t.Fatal("entries must get a stable id")
	}

	p, err = svc.AddExperience(context.Background(), userID, Experience{
		Title:   "Senior Engineer",
		Company: "acme",
		From:    from.AddDate(2, 0, 0),
	})
	if err != nil {
		t.Fatalf("second AddExperience: %v", err)
	}
	if len(p.Experience) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Experience))
	}
	// Insert-at-end keeps order.
	if p.Experience[0].ID != first.ID {
		t.Fatal("existing entry should keep its position")
	}

	p, err = svc.UpdateExperience(context.Background(), userID, first.ID, Experience{
		Title:   "Staff Engineer",
		Company: "acme",
		From:    from,
	})
	if err != nil {
		t.Fatalf("UpdateExperience: %v", err)
	}
	if p.Experience[0].Title != "Staff Engineer" {
		t.Fatalf("targeted entry not updated: %+v", p.Experience[0])
	}
	if p.Experience[0].ID != first.ID {
		t.Fatal("update must preserve the entry id")
	}
	if p.Experience[1].Title != "Senior Engineer" {
		t.Fatal("update must not touch other entries")
	}

	p, err = svc.RemoveExperience(context.Background(), userID, first.ID)
	if err != nil {
		t.Fatalf("RemoveExperience: %v", err)
	}
	if len(p.Experience) != 1 || p.Experience[0].Title != "Senior Engineer" {
		t.Fatalf("wrong entry removed: %+v", p.Experience)
	}

	_, err = svc.RemoveExperience(context.Background(), userID, first.ID)
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEducationLifecycle(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()

	if _, err := svc.Upsert(context.Background(), userID, Fields{Status: "dev", Skills: []string{"go"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	from := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)
	p, err := svc.AddEducation(context.Background(), userID, Education{
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         from,
	})
	if err != nil {
		t.Fatalf("AddEducation: %v", err)
	}
	entryID := p.Education[0].ID

	p, err = svc.UpdateEducation(context.Background(), userID, entryID, Education{
		School:       "State University",
		Degree:       "MSc",
		FieldOfStudy: "CS",
		From:         from,
	})
	if err != nil {
		t.Fatalf("UpdateEducation: %v", err)
	}
	if p.Education[0].Degree != "MSc" {
		t.Fatalf("entry not updated: %+v", p.Education[0])
	}

	if _, err := svc.RemoveEducation(context.Background(), userID, entryID); err != nil {
		t.Fatalf("RemoveEducation: %v", err)
	}

	_, err = svc.UpdateEducation(context.Background(), userID, entryID, Education{
		School: "x", Degree: "y", FieldOfStudy: "z", From: from,
	})
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, profiles, users := newTestService()
	userID := uuid.New()

	if _, err := svc.Upsert(context.Background(), userID, Fields{Status: "dev", Skills: []string{"go"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), userID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := profiles.GetByUserID(context.Background(), userID); !errors.Is(err, ErrNotFound) {
		t.Fatal("profile should be deleted")
	}
	if len(users.deleted) != 1 || users.deleted[0] != userID {
		t.Fatalf("identity not deleted: %v", users.deleted)
	}
}

func TestDeleteAccountWithoutProfile(t *testing.T) {
	svc, _, users := newTestService()
	userID := uuid.New()

	// Accounts that never created a profile can still be deleted.
	if err := svc.DeleteAccount(context.Background(), userID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if len(users.deleted) != 1 {
		t.Fatalf("identity not deleted: %v", users.deleted)
	}
}
