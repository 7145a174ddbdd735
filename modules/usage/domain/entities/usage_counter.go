package entities

import (
	"time"

	"scribe/server/seedwork/domain"
)

// UsageCounter is keyed by (user, month-string YYYY-MM) and tracks the
// extract counter UsageGate checks and increments (§3). It is lazily
// created at first check or increment for the month and never deleted —
// unlike most entities it does not embed domain.BaseEntity, since that
// would pull in a soft-delete column this row never needs.
type UsageCounter struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey;type:varchar(128)"`
	UserID    string    `json:"user_id" gorm:"column:user_id;not null;index"`
	Month     string    `json:"month" gorm:"column:month;not null"`
	Extracts  int       `json:"extracts" gorm:"column:extracts;not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func NewUsageCounter(userID, month string) UsageCounter {
	return UsageCounter{
		ID:     domain.GenerateID(),
		UserID: userID,
		Month:  month,
	}
}

func (UsageCounter) TableName() string {
	return "usage_counters"
}

// CurrentMonth returns the month-string key for the given instant.
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}
