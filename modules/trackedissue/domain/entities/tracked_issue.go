package entities

import (
	"strings"
	"time"

	"scribe/server/seedwork/domain"
)

// TrackedIssue is auto-created from the insight engine's unresolved_items
// card and may be toggled resolved independently of the recomputed card
// (§3).
type TrackedIssue struct {
	ID                 string     `json:"id" gorm:"column:id;primaryKey;type:varchar(128)"`
	UserID             string     `json:"user_id" gorm:"column:user_id;not null;index"`
	SourceMeetingID    string     `json:"source_meeting_id" gorm:"column:source_meeting_id;not null"`
	SourceMeetingTitle string     `json:"source_meeting_title" gorm:"column:source_meeting_title"`
	Text               string     `json:"text" gorm:"column:text;not null"`
	Notes              string     `json:"notes" gorm:"column:notes"`
	DedupeKey          string     `json:"dedupe_key" gorm:"column:dedupe_key;not null"`
	Resolved           bool       `json:"resolved" gorm:"column:resolved;not null;default:false"`
	CreatedAt          time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty" gorm:"column:resolved_at"`
}

// DedupeKeyFor normalizes issue text to the key unresolved-items
// auto-creation deduplicates on, per user.
func DedupeKeyFor(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func NewTrackedIssue(userID, sourceMeetingID, sourceMeetingTitle, text string) TrackedIssue {
	return TrackedIssue{
		ID:                 domain.GenerateID(),
		UserID:              userID,
		SourceMeetingID:     sourceMeetingID,
		SourceMeetingTitle:  sourceMeetingTitle,
		Text:                text,
		DedupeKey:           DedupeKeyFor(text),
	}
}

func (i *TrackedIssue) Resolve(at time.Time) {
	i.Resolved = true
	i.ResolvedAt = &at
}

func (TrackedIssue) TableName() string {
	return "tracked_issues"
}
