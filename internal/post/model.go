package post

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Comment is an embedded post comment. Author name and avatar are
// snapshots taken at creation time.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"date"`
}

// Post is a user-authored content item. Name and Avatar are denormalized
// from the author at creation and not kept in sync with later profile
// edits. Likes and comments are jsonb lists persisted with the parent
// row in one write.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:po" json:"-"`

	ID        uuid.UUID   `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID   `bun:"user_id,notnull,type:uuid" json:"user"`
	Name      string      `bun:"name,notnull" json:"name"`
	Avatar    string      `bun:"avatar" json:"avatar,omitempty"`
	Text      string      `bun:"text,notnull" json:"text"`
	Likes     []uuid.UUID `bun:"likes,type:jsonb" json:"likes"`
	Comments  []Comment   `bun:"comments,type:jsonb" json:"comments"`
	CreatedAt time.Time   `bun:"created_at,nullzero,notnull,default:now()" json:"date"`
}

// CanMutate reports whether the given identity may delete this post.
// Only the author can.
func (p *Post) CanMutate(userID uuid.UUID) bool {
	return p.UserID == userID
}

// LikedBy reports whether the identity is in the like set.
func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Like adds the identity to the like set. Returns false when the like
// was already present; the set never holds duplicates.
func (p *Post) Like(userID uuid.UUID) bool {
	if p.LikedBy(userID) {
		return false
	}
	p.Likes = append(p.Likes, userID)
	return true
}

// Unlike removes the identity from the like set. Returns false when the
// like was not present.
func (p *Post) Unlike(userID uuid.UUID) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return true
		}
	}
	return false
}

// AddComment appends a comment.
func (p *Post) AddComment(c Comment) {
	p.Comments = append(p.Comments, c)
}

// RemoveComment deletes the comment with the given id. Returns false
// when no comment matches.
func (p *Post) RemoveComment(id uuid.UUID) bool {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}
