package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// tokenUser is the nested identity claim. Clients depend on the
// {"user":{"id":...}} payload shape, so it stays nested rather than
// using the registered subject claim.
type tokenUser struct {
	ID string `json:"id"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	User tokenUser `json:"user"`
}

// JWTService signs and verifies HS256 tokens with a process-wide secret.
// Tokens are stateless: nothing is persisted server-side and there is
// no revocation list.
type JWTService struct {
	secret []byte
}

func NewJWTService(secret []byte) (*JWTService, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("signing secret must not be empty")
	}
	return &JWTService{secret: secret}, nil
}

// CreateToken generates a signed token for the given identity with the
// given lifetime.
func (s *JWTService) CreateToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		User: tokenUser{ID: userID.String()},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates a token and returns the identity it was issued
// for. Expired tokens are reported separately from malformed or
// tampered ones.
func (s *JWTService) VerifyToken(tokenStr string) (uuid.UUID, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.User.ID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
