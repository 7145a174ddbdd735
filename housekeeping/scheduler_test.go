package housekeeping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liveentities "scribe/server/modules/livesession/domain/entities"
	usageentities "scribe/server/modules/usage/domain/entities"
)

type stubLiveSessionRepository struct {
	activeCount int64
}

func (s *stubLiveSessionRepository) CreateActive(ctx context.Context, userID, title, participants string) (*liveentities.LiveSession, error) {
	return nil, nil
}
func (s *stubLiveSessionRepository) FindActiveByUser(ctx context.Context, userID string) (*liveentities.LiveSession, error) {
	return nil, nil
}
func (s *stubLiveSessionRepository) FindByIDOwned(ctx context.Context, id, userID string) (*liveentities.LiveSession, error) {
	return nil, nil
}
func (s *stubLiveSessionRepository) AppendSegment(ctx context.Context, sessionID, text string, timestampMs int64) (*liveentities.TranscriptSegment, error) {
	return nil, nil
}
func (s *stubLiveSessionRepository) ListSegmentsOrdered(ctx context.Context, sessionID string) ([]*liveentities.TranscriptSegment, error) {
	return nil, nil
}
func (s *stubLiveSessionRepository) CountSegments(ctx context.Context, sessionID string) (int64, error) {
	return 0, nil
}
func (s *stubLiveSessionRepository) Finalize(ctx context.Context, sessionID string, status liveentities.Status, meetingID *string) error {
	return nil
}
func (s *stubLiveSessionRepository) CountActive(ctx context.Context) (int64, error) {
	return s.activeCount, nil
}

type stubUsageRepository struct {
	monthTotal int
}

func (s *stubUsageRepository) GetByUserMonth(ctx context.Context, userID, month string) (*usageentities.UsageCounter, error) {
	return nil, nil
}
func (s *stubUsageRepository) EnsureRow(ctx context.Context, userID, month string) (*usageentities.UsageCounter, error) {
	return nil, nil
}
func (s *stubUsageRepository) IncrementAtomic(ctx context.Context, userID, month string) error {
	return nil
}
func (s *stubUsageRepository) SumAllTimeForUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}
func (s *stubUsageRepository) SumMonthAllUsers(ctx context.Context, month string) (int, error) {
	return s.monthTotal, nil
}

func TestScheduler_LogSummaryDoesNotPanic(t *testing.T) {
	s := NewScheduler(&stubLiveSessionRepository{activeCount: 3}, &stubUsageRepository{monthTotal: 42})
	assert.NotPanics(t, func() { s.logSummary() })
}

func TestScheduler_StartRegistersJobAndStopDrains(t *testing.T) {
	s := NewScheduler(&stubLiveSessionRepository{}, &stubUsageRepository{})
	require.NoError(t, s.Start())
	s.Stop()
}
