package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Auth methods a user may sign in with.
const (
	AuthMethodLocal  = "local"
	AuthMethodGoogle = "google"
	AuthMethodGithub = "github"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`

	// Single-slot refresh token: issuing a new pair overwrites this,
	// invalidating the previous refresh token.
	RefreshToken string `json:"-"`

	GoogleID    *string                     `json:"-" gorm:"uniqueIndex"`
	GithubID    *string                     `json:"-" gorm:"uniqueIndex"`
	AuthMethods datatypes.JSONSlice[string] `json:"authMethods"`

	// Epoch seconds of the last password change. Access tokens issued
	// before this moment are rejected.
	ChangedPasswordAt    int64      `json:"-"`
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	Location string `json:"location"`
	Website  string `json:"website"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasAuthMethod reports whether the user may authenticate via the given method.
func (u *User) HasAuthMethod(method string) bool {
	for _, m := range u.AuthMethods {
		if m == method {
			return true
		}
	}
	return false
}

// AddAuthMethod appends the method if not already present.
func (u *User) AddAuthMethod(method string) {
	if !u.HasAuthMethod(method) {
		u.AuthMethods = append(u.AuthMethods, method)
	}
}
