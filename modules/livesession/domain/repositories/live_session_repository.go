package repositories

import (
	"context"

	"scribe/server/modules/livesession/domain/entities"
)

// LiveSessionRepository is the component A surface the state machine needs
// (§4.A): create-live-session under the single-active-session guard,
// find-active-live-session-by-user, get-live-session-owned,
// finalize-live-session, next-segment-index-for-session + insert-segment as
// one atomic operation, list-segments-ordered.
type LiveSessionRepository interface {
	// CreateActive enforces Invariant S: the "any active session for this
	// owner" check and the insert happen inside one storage transaction, so
	// the guard holds even under concurrent start calls. If an active
	// session already exists it is returned unchanged alongside
	// ErrAlreadyActive rather than creating a second row.
	CreateActive(ctx context.Context, userID, title, participants string) (*entities.LiveSession, error)

	FindActiveByUser(ctx context.Context, userID string) (*entities.LiveSession, error)

	// FindByIDOwned returns gorm.ErrRecordNotFound for a non-owned id, so
	// callers translate uniformly to "not found" (Invariant I-OwnerOnly).
	FindByIDOwned(ctx context.Context, id, userID string) (*entities.LiveSession, error)

	// AppendSegment allocates the next dense segment_index and inserts the
	// segment row inside one transaction (Invariant T), serialised by the
	// store's single-writer semantics (§5).
	AppendSegment(ctx context.Context, sessionID, text string, timestampMs int64) (*entities.TranscriptSegment, error)

	ListSegmentsOrdered(ctx context.Context, sessionID string) ([]*entities.TranscriptSegment, error)

	CountSegments(ctx context.Context, sessionID string) (int64, error)

	// Finalize transitions status and sets ended_at/meeting_id in one
	// update, used by stop.
	Finalize(ctx context.Context, sessionID string, status entities.Status, meetingID *string) error

	// CountActive reports the number of sessions currently active across
	// all owners, used by the housekeeping summary log (§5 "Orphan active
	// sessions are tolerated... the count observable without auto-reaping").
	CountActive(ctx context.Context) (int64, error)
}

// ErrAlreadyActive signals that CreateActive found an existing active
// session rather than creating a new one; it is not itself an error the
// caller logs, only a branch selector.
var ErrAlreadyActive = &alreadyActiveError{}

type alreadyActiveError struct{}

func (*alreadyActiveError) Error() string { return "session already active" }
