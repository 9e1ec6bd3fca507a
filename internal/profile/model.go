package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/devlinkhq/devlink-api/internal/user"
)

// Experience is an embedded work-history entry. Entries carry a stable
// id so they can be updated or removed individually.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is an embedded education-history entry.
type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// SocialLinks holds optional social network URLs.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is identity-owned professional metadata. Embedded lists are
// stored as jsonb and the whole row is persisted per mutation, matching
// the per-document atomicity of a document store.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p" json:"-"`

	ID             uuid.UUID    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID    `bun:"user_id,notnull,unique,type:uuid" json:"user"`
	Company        string       `bun:"company" json:"company,omitempty"`
	Website        string       `bun:"website" json:"website,omitempty"`
	Location       string       `bun:"location" json:"location,omitempty"`
	Status         string       `bun:"status,notnull" json:"status"`
	Skills         []string     `bun:"skills,type:jsonb" json:"skills"`
	Bio            string       `bun:"bio" json:"bio,omitempty"`
	GithubUsername string       `bun:"github_username" json:"github_username,omitempty"`
	Experience     []Experience `bun:"experience,type:jsonb" json:"experience"`
	Education      []Education  `bun:"education,type:jsonb" json:"education"`
	Social         SocialLinks  `bun:"social,type:jsonb" json:"social"`
	CreatedAt      time.Time    `bun:"created_at,nullzero,notnull,default:now()" json:"created_at"`
	UpdatedAt      time.Time    `bun:"updated_at,nullzero,notnull,default:now()" json:"updated_at"`

	User *user.User `bun:"rel:belongs-to,join:user_id=id" json:"owner,omitempty"`
}

// AddExperience appends an entry.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append(p.Experience, e)
}

// UpdateExperience replaces the entry with the given id, keeping its
// position. Returns false when no entry matches.
func (p *Profile) UpdateExperience(id uuid.UUID, e Experience) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			e.ID = id
			p.Experience[i] = e
			return true
		}
	}
	return false
}

// RemoveExperience deletes the entry with the given id. Returns false
// when no entry matches.
func (p *Profile) RemoveExperience(id uuid.UUID) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

// AddEducation appends an entry.
func (p *Profile) AddEducation(e Education) {
	p.Education = append(p.Education, e)
}

// UpdateEducation replaces the entry with the given id, keeping its
// position. Returns false when no entry matches.
func (p *Profile) UpdateEducation(id uuid.UUID, e Education) bool {
	for i := range p.Education {
		if p.Education[i].ID == id {
			e.ID = id
			p.Education[i] = e
			return true
		}
	}
	return false
}

// RemoveEducation deletes the entry with the given id. Returns false
// when no entry matches.
func (p *Profile) RemoveEducation(id uuid.UUID) bool {
	for i := range p.Education {
		if p.Education[i].ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}
