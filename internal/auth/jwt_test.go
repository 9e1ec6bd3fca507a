package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	return svc
}

func TestCreateVerifyRoundtrip(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.CreateToken(userID, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	got, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if got != userID {
		t.Fatalf("expected user id %s, got %s", userID, got)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.CreateToken(uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	_, err = svc.VerifyToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := newTestService(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestService(t)

	other, err := NewJWTService([]byte("other-secret"))
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	token, err := svc.CreateToken(uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := other.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewJWTServiceEmptySecret(t *testing.T) {
	if _, err := NewJWTService(nil); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
