package entities

import (
	"time"

	"scribe/server/seedwork/domain"
)

// Plan identifies a user's subscription tier, gating usage per §4.E.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanLTD      Plan = "ltd"
	PlanFLTD     Plan = "fltd"
	PlanSubBasic Plan = "sub_basic"
	PlanSubPro   Plan = "sub_pro"
)

// User represents a user entity in the domain.
type User struct {
	domain.BaseEntity
	Name       string `json:"name" binding:"required" gorm:"column:display_name"`
	Email      Email  `json:"email" binding:"required" gorm:"column:email"`
	Plan       Plan   `json:"plan" gorm:"column:plan"`
	IsLifetime bool   `json:"is_lifetime" gorm:"column:is_lifetime"`

	// Zoom OAuth cache (§4.I cloud-recording import). All auth state for the
	// third-party recording provider lives on the user row rather than a
	// separate identities table.
	ZoomAccessToken     string    `json:"-" gorm:"column:zoom_access_token"`
	ZoomRefreshToken    string    `json:"-" gorm:"column:zoom_refresh_token"`
	ZoomTokenExpiresAt  time.Time `json:"-" gorm:"column:zoom_token_expires_at"`
}

// NewUser creates a new User entity.
func NewUser(id, name string, email Email) User {
	user := User{
		Name:  name,
		Email: email,
		Plan:  PlanFree,
	}
	user.SetID(id)
	return user
}

// GetEmail returns the user's email.
func (u *User) GetEmail() Email {
	return u.Email
}

// SetEmail sets the user's email.
func (u *User) SetEmail(email Email) {
	u.Email = email
}

// GetName returns the user's name.
func (u *User) GetName() string {
	return u.Name
}

// SetName sets the user's name.
func (u *User) SetName(name string) {
	u.Name = name
}

// HasZoomCredentials reports whether the user has ever connected a Zoom
// account for cloud-recording import.
func (u *User) HasZoomCredentials() bool {
	return u.ZoomRefreshToken != ""
}

// ZoomTokenExpired reports whether the cached Zoom access token needs a
// refresh before use.
func (u *User) ZoomTokenExpired(now time.Time) bool {
	return !u.ZoomTokenExpiresAt.After(now)
}

// TableName sets the table name for GORM.
func (User) TableName() string {
	return "users"
}
