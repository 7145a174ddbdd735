package repositories

import (
	"context"

	"scribe/server/modules/trackedissue/domain/entities"
)

// TrackedIssueRepository persists the carry-over issue list.
type TrackedIssueRepository interface {
	// UpsertIfAbsent creates a row for (userID, dedupeKey) if one doesn't
	// already exist; a pre-existing row (possibly already resolved by the
	// user) is left untouched so a recomputed card never un-resolves it.
	UpsertIfAbsent(ctx context.Context, issue *entities.TrackedIssue) error

	ListOwned(ctx context.Context, userID string) ([]*entities.TrackedIssue, error)

	FindByIDOwned(ctx context.Context, id, userID string) (*entities.TrackedIssue, error)

	Update(ctx context.Context, issue *entities.TrackedIssue) error
}
