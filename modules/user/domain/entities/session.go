package entities

import "time"

// Session is a boundary entity: the session-cookie mechanism itself (login,
// password/OAuth handshakes) is external and out of scope, but the store
// still needs a row to resolve an incoming cookie to a user (§6 "Persisted
// state layout").
type Session struct {
	Token     string `json:"token" gorm:"column:token;primaryKey"`
	UserID    string `json:"user_id" gorm:"column:user_id"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at"`
}

// TableName sets the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is no longer valid at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
