package repositories

import (
	"context"

	"scribe/server/modules/usage/domain/entities"
)

// UsageRepository defines the store operations the core requires for usage
// counters (§4.A): get-usage, ensure-usage-row, increment-usage (upsert,
// atomic), sum-usage-all-time-for-user.
type UsageRepository interface {
	// GetByUserMonth returns nil, nil if no row exists yet for the month.
	GetByUserMonth(ctx context.Context, userID, month string) (*entities.UsageCounter, error)

	// EnsureRow lazily creates the (user, month) row if absent and returns
	// it either way.
	EnsureRow(ctx context.Context, userID, month string) (*entities.UsageCounter, error)

	// IncrementAtomic upserts the (user, month) row and increments
	// extracts by 1 in a single atomic statement (§5: parallel consumes on
	// the same key cannot under-count).
	IncrementAtomic(ctx context.Context, userID, month string) error

	// SumAllTimeForUser sums extracts across every month for userID, used
	// by the free-plan lifetime cap.
	SumAllTimeForUser(ctx context.Context, userID string) (int, error)

	// SumMonthAllUsers sums extracts across every user for one month,
	// consumed by the housekeeping summary log.
	SumMonthAllUsers(ctx context.Context, month string) (int, error)
}
