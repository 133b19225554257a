package users

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("a user with that email already exists")
	ErrDuplicateUsername = errors.New("a user with that username already exists")
	QueryTimeoutDuration = time.Second * 5
)

const (
	RoleUser        = "User"
	RoleTravelAgent = "Travel Agent"
)

type User struct {
	ID                int64          `json:"id"`
	Username          string         `json:"username"`
	Email             string         `json:"email"`
	Password          Password       `json:"-"`
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	Bio               string         `json:"bio"`
	ProfilePictureURL sql.NullString `json:"profile_picture_url" swaggertype:"string"`
	ContactNumber     string         `json:"contact_number"`
	CompanyName       string         `json:"company_name"`
	CompanyWebsite    string         `json:"company_website"`
	IsTravelAgent     bool           `json:"is_travel_agent"`
	IsSuperuser       bool           `json:"is_superuser"`
	IsActive          bool           `json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// FullName falls back to the username when no name is set.
func (u *User) FullName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

// Role is the label shown next to a user's website review.
func (u *User) Role() string {
	if u.IsTravelAgent {
		return RoleTravelAgent
	}
	return RoleUser
}

// Password stores plain text (only while setting) and the bcrypt hash.
type Password struct {
	text *string
	hash []byte
}

func (p *Password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *Password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

// Hash exposes the stored hash for persistence.
func (p *Password) Hash() []byte {
	return p.hash
}

// ProfileUpdate carries the editable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Bio            *string
	ContactNumber  *string
	CompanyName    *string
	CompanyWebsite *string
}
