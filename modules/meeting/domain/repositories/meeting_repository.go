package repositories

import (
	"context"

	"scribe/server/modules/meeting/domain/entities"
)

// MeetingRepository defines the contract the core requires (§3):
// create-meeting, get-meeting-owned, list-meetings-owned,
// list-meetings-before-owned, count-meetings-owned, update-meeting-fields,
// delete-meeting-owned.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByIDOwned returns the meeting only if owned by userID; a
	// non-matching fetch returns gorm.ErrRecordNotFound so the caller can
	// translate it into a uniform "not found" (Ownership summary, §3).
	FindByIDOwned(ctx context.Context, id, userID string) (*entities.Meeting, error)

	// ListOwned returns a user's meetings ordered by creation descending.
	ListOwned(ctx context.Context, userID string) ([]*entities.Meeting, error)

	// ListBeforeOwned returns a user's meetings created strictly before
	// the given meeting, ordered by creation descending; used by the
	// Insight Engine's what-changed diff to find the prior meeting.
	ListBeforeOwned(ctx context.Context, userID string, before *entities.Meeting, limit int) ([]*entities.Meeting, error)

	// ListRecentOtherOwned returns a user's most recent meetings other
	// than excludeID, used by live-session memory hints (§4.H).
	ListRecentOtherOwned(ctx context.Context, userID, excludeID string, limit int) ([]*entities.Meeting, error)

	CountOwned(ctx context.Context, userID string) (int64, error)

	Update(ctx context.Context, meeting *entities.Meeting) error

	DeleteOwned(ctx context.Context, id, userID string) error
}
