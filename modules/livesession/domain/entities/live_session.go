package entities

import (
	"time"

	"scribe/server/seedwork/domain"
)

// Status is one of LiveSession's three lifecycle states (§3, §4.H).
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// LiveSession is never soft-deleted — an abandoned session without an
// explicit stop is tolerated, not reaped, so it carries its own plain
// ID/CreatedAt fields rather than embedding domain.BaseEntity.
type LiveSession struct {
	ID               string     `json:"id" gorm:"column:id;primaryKey;type:varchar(128)"`
	UserID           string     `json:"user_id" gorm:"column:user_id;not null;index"`
	MeetingID        *string    `json:"meeting_id,omitempty" gorm:"column:meeting_id"`
	Title            string     `json:"title" gorm:"column:title"`
	Participants     string     `json:"participants" gorm:"column:participants"`
	Status           Status     `json:"status" gorm:"column:status;not null;default:active"`
	StartedAt        time.Time  `json:"started_at" gorm:"column:started_at;autoCreateTime"`
	EndedAt          *time.Time `json:"ended_at,omitempty" gorm:"column:stopped_at"`
	NextSegmentIndex int        `json:"-" gorm:"column:next_segment_index;not null;default:0"`
}

func NewLiveSession(userID, title, participants string) LiveSession {
	return LiveSession{
		ID:           domain.GenerateID(),
		UserID:       userID,
		Title:        title,
		Participants: participants,
		Status:       StatusActive,
	}
}

func (s *LiveSession) OwnedBy(userID string) bool {
	return s.UserID == userID
}

func (s *LiveSession) IsActive() bool {
	return s.Status == StatusActive
}

func (LiveSession) TableName() string { return "live_sessions" }
