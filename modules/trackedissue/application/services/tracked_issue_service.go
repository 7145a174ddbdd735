package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"scribe/server/modules/trackedissue/domain/entities"
	"scribe/server/modules/trackedissue/domain/repositories"
	"scribe/server/seedwork/apperror"
)

// TrackedIssueService wires the insight engine's unresolved_items card to
// persisted TrackedIssue rows and exposes the resolve toggle.
type TrackedIssueService struct {
	repo repositories.TrackedIssueRepository
}

func NewTrackedIssueService(repo repositories.TrackedIssueRepository) *TrackedIssueService {
	return &TrackedIssueService{repo: repo}
}

// SyncFromUnresolved creates a TrackedIssue row for each task text not
// already tracked for this user (deduplicated by normalized text); a
// pre-existing row, resolved or not, is left untouched.
func (s *TrackedIssueService) SyncFromUnresolved(ctx context.Context, userID, sourceMeetingID, sourceMeetingTitle string, taskTexts []string) error {
	for _, text := range taskTexts {
		issue := entities.NewTrackedIssue(userID, sourceMeetingID, sourceMeetingTitle, text)
		if err := s.repo.UpsertIfAbsent(ctx, &issue); err != nil {
			return apperror.Storage("failed to sync tracked issue", err)
		}
	}
	return nil
}

func (s *TrackedIssueService) ListOwned(ctx context.Context, userID string) ([]*entities.TrackedIssue, error) {
	issues, err := s.repo.ListOwned(ctx, userID)
	if err != nil {
		return nil, apperror.Storage("failed to list tracked issues", err)
	}
	return issues, nil
}

// Resolve toggles an owned issue to resolved.
func (s *TrackedIssueService) Resolve(ctx context.Context, id, userID string) (*entities.TrackedIssue, error) {
	issue, err := s.repo.FindByIDOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("tracked issue not found")
		}
		return nil, apperror.Storage("failed to fetch tracked issue", err)
	}

	issue.Resolve(time.Now())
	if err := s.repo.Update(ctx, issue); err != nil {
		return nil, apperror.Storage("failed to resolve tracked issue", err)
	}
	return issue, nil
}
