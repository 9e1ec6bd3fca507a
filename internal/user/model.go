package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is a registered identity. The password hash is never exposed in
// JSON responses.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u" json:"-"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	AvatarURL    string    `bun:"avatar_url" json:"avatar"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:now()" json:"updated_at"`
}
