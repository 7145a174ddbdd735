package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	extractionservices "scribe/server/modules/extraction/application/services"
	"scribe/server/blobstore"
	"scribe/server/modules/livesession/domain/entities"
	"scribe/server/modules/livesession/domain/repositories"
	"scribe/server/modules/livesession/infrastructure/streaming"
	meetingentities "scribe/server/modules/meeting/domain/entities"
	meetingservices "scribe/server/modules/meeting/application/services"
	transcriptionproviders "scribe/server/modules/transcription/infrastructure/providers"
	usageentities "scribe/server/modules/usage/domain/entities"
	usageservices "scribe/server/modules/usage/application/services"
)

// fakeUsageRepository is a minimal in-memory stand-in for the usage
// repository, only as deep as the usage gate needs to allow every extract
// in these tests through (none of them approach a plan cap).
type fakeUsageRepository struct {
	mu       sync.Mutex
	counters map[string]*usageentities.UsageCounter
}

func newFakeUsageRepositoryForLiveSessionTests() *fakeUsageRepository {
	return &fakeUsageRepository{counters: map[string]*usageentities.UsageCounter{}}
}

func (f *fakeUsageRepository) key(userID, month string) string { return userID + "|" + month }

func (f *fakeUsageRepository) GetByUserMonth(ctx context.Context, userID, month string) (*usageentities.UsageCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[f.key(userID, month)], nil
}

func (f *fakeUsageRepository) EnsureRow(ctx context.Context, userID, month string) (*usageentities.UsageCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(userID, month)
	if c, ok := f.counters[k]; ok {
		return c, nil
	}
	c := usageentities.NewUsageCounter(userID, month)
	f.counters[k] = &c
	return &c, nil
}

func (f *fakeUsageRepository) IncrementAtomic(ctx context.Context, userID, month string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(userID, month)
	c, ok := f.counters[k]
	if !ok {
		nc := usageentities.NewUsageCounter(userID, month)
		c = &nc
		f.counters[k] = c
	}
	c.Extracts++
	return nil
}

func (f *fakeUsageRepository) SumAllTimeForUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (f *fakeUsageRepository) SumMonthAllUsers(ctx context.Context, month string) (int, error) {
	return 0, nil
}

type fakeLiveSessionRepository struct {
	mu       sync.Mutex
	active   map[string]*entities.LiveSession
	byID     map[string]*entities.LiveSession
	segments map[string][]*entities.TranscriptSegment
}

func newFakeLiveSessionRepository() *fakeLiveSessionRepository {
	return &fakeLiveSessionRepository{
		active:   map[string]*entities.LiveSession{},
		byID:     map[string]*entities.LiveSession{},
		segments: map[string][]*entities.TranscriptSegment{},
	}
}

func (f *fakeLiveSessionRepository) CreateActive(ctx context.Context, userID, title, participants string) (*entities.LiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.active[userID]; ok {
		return existing, repositories.ErrAlreadyActive
	}
	session := entities.NewLiveSession(userID, title, participants)
	f.active[userID] = &session
	f.byID[session.ID] = &session
	return &session, nil
}

func (f *fakeLiveSessionRepository) FindActiveByUser(ctx context.Context, userID string) (*entities.LiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[userID], nil
}

func (f *fakeLiveSessionRepository) FindByIDOwned(ctx context.Context, id, userID string) (*entities.LiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok || !s.OwnedBy(userID) {
		return nil, errNotFound
	}
	return s, nil
}

func (f *fakeLiveSessionRepository) AppendSegment(ctx context.Context, sessionID, text string, timestampMs int64) (*entities.TranscriptSegment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	index := len(f.segments[sessionID])
	seg := entities.NewTranscriptSegment(sessionID, index, text, timestampMs)
	f.segments[sessionID] = append(f.segments[sessionID], &seg)
	return &seg, nil
}

func (f *fakeLiveSessionRepository) ListSegmentsOrdered(ctx context.Context, sessionID string) ([]*entities.TranscriptSegment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.segments[sessionID], nil
}

func (f *fakeLiveSessionRepository) CountSegments(ctx context.Context, sessionID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.segments[sessionID])), nil
}

func (f *fakeLiveSessionRepository) Finalize(ctx context.Context, sessionID string, status entities.Status, meetingID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[sessionID]
	if !ok {
		return errNotFound
	}
	s.Status = status
	s.MeetingID = meetingID
	delete(f.active, s.UserID)
	return nil
}

func (f *fakeLiveSessionRepository) CountActive(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.active)), nil
}

var errNotFound = &liveSessionNotFoundStub{}

type liveSessionNotFoundStub struct{}

func (*liveSessionNotFoundStub) Error() string { return "record not found" }

// fakeMeetingRepository is a minimal stand-in for the meeting repository,
// only as deep as MeetingService needs for these tests.
type fakeMeetingRepository struct {
	mu       sync.Mutex
	created  []*meetingentities.Meeting
	countFor map[string]int64
}

func newFakeMeetingRepository() *fakeMeetingRepository {
	return &fakeMeetingRepository{countFor: map[string]int64{}}
}

func (f *fakeMeetingRepository) Create(ctx context.Context, meeting *meetingentities.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, meeting)
	f.countFor[meeting.UserID]++
	return nil
}
func (f *fakeMeetingRepository) FindByIDOwned(ctx context.Context, id, userID string) (*meetingentities.Meeting, error) {
	return nil, errNotFound
}
func (f *fakeMeetingRepository) ListOwned(ctx context.Context, userID string) ([]*meetingentities.Meeting, error) {
	return nil, nil
}
func (f *fakeMeetingRepository) ListBeforeOwned(ctx context.Context, userID string, before *meetingentities.Meeting, limit int) ([]*meetingentities.Meeting, error) {
	return nil, nil
}
func (f *fakeMeetingRepository) ListRecentOtherOwned(ctx context.Context, userID, excludeID string, limit int) ([]*meetingentities.Meeting, error) {
	return nil, nil
}
func (f *fakeMeetingRepository) CountOwned(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countFor[userID], nil
}
func (f *fakeMeetingRepository) Update(ctx context.Context, meeting *meetingentities.Meeting) error { return nil }
func (f *fakeMeetingRepository) DeleteOwned(ctx context.Context, id, userID string) error           { return nil }

type fakeExtractorProvider struct{}

func (fakeExtractorProvider) Extract(ctx context.Context, promptPrefix, transcript string) (string, error) {
	return `{"action_items": [], "follow_up_email": "", "summary": "ok", "open_questions": [], "proposed_solutions": []}`, nil
}

func newTestLiveSessionService(t *testing.T) (*LiveSessionService, *fakeLiveSessionRepository) {
	t.Helper()
	liveRepo := newFakeLiveSessionRepository()
	meetingRepo := newFakeMeetingRepository()
	meetingService := meetingservices.NewMeetingService(meetingRepo, nil)

	usageGate := usageservices.NewUsageGate(newFakeUsageRepositoryForLiveSessionTests(), nil)
	extractionService := extractionservices.NewExtractionService(fakeExtractorProvider{}, usageGate)

	hub := streaming.NewHub()
	svc := NewLiveSessionService(
		liveRepo, hub, transcriptionproviders.NewMockTranscriptionProvider(),
		extractionService, meetingService, blobstore.NoopArchive{}, nil,
	)
	return svc, liveRepo
}

func TestLiveSessionService_SingleActiveSessionGuard(t *testing.T) {
	svc, _ := newTestLiveSessionService(t)
	ctx := context.Background()

	first, err := svc.Start(ctx, "user-1", "free", "Standup", "")
	require.NoError(t, err)
	require.NotNil(t, first)

	_, err = svc.Start(ctx, "user-1", "free", "Standup 2", "")
	require.Error(t, err)
}

func TestLiveSessionService_StopWithZeroSegmentsMarksFailed(t *testing.T) {
	svc, repo := newTestLiveSessionService(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "user-1", "free", "Standup", "")
	require.NoError(t, err)

	result, err := svc.Stop(ctx, session.ID, "user-1")
	require.NoError(t, err)
	assert.Nil(t, result.MeetingID)
	assert.Equal(t, "No transcript was captured.", result.Message)

	stored := repo.byID[session.ID]
	assert.Equal(t, entities.StatusFailed, stored.Status)
}

func TestLiveSessionService_ChunkAppendsSegmentAndStopPersistsMeeting(t *testing.T) {
	svc, _ := newTestLiveSessionService(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "user-1", "free", "Standup", "")
	require.NoError(t, err)

	index, silent, err := svc.Chunk(ctx, session.ID, "user-1", []byte("audio-bytes"), 1000)
	require.NoError(t, err)
	require.False(t, silent)
	require.NotNil(t, index)
	assert.Equal(t, 0, *index)

	result, err := svc.Stop(ctx, session.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, result.MeetingID)
}

func TestLiveSessionService_ChunkOnInactiveSessionFails(t *testing.T) {
	svc, _ := newTestLiveSessionService(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, "user-1", "free", "Standup", "")
	require.NoError(t, err)
	_, err = svc.Stop(ctx, session.ID, "user-1")
	require.NoError(t, err)

	_, _, err = svc.Chunk(ctx, session.ID, "user-1", []byte("audio"), 1000)
	require.Error(t, err)
}
