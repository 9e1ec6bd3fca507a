package auth

import (
	"time"

	"github.com/google/uuid"
)

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	CreateToken(userID uuid.UUID, ttl time.Duration) (string, error)
	VerifyToken(tokenStr string) (uuid.UUID, error)
}
