package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"scribe/server/modules/meeting/domain/entities"
	"scribe/server/seedwork/apperror"
)

type fakeMeetingRepository struct {
	mu      sync.Mutex
	byID    map[string]*entities.Meeting
	byOwner map[string][]*entities.Meeting
}

func newFakeMeetingRepository() *fakeMeetingRepository {
	return &fakeMeetingRepository{
		byID:    map[string]*entities.Meeting{},
		byOwner: map[string][]*entities.Meeting{},
	}
}

func (f *fakeMeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[meeting.GetID()] = meeting
	f.byOwner[meeting.UserID] = append(f.byOwner[meeting.UserID], meeting)
	return nil
}

func (f *fakeMeetingRepository) FindByIDOwned(ctx context.Context, id, userID string) (*entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok || !m.OwnedBy(userID) {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMeetingRepository) ListOwned(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	return f.byOwner[userID], nil
}

func (f *fakeMeetingRepository) ListBeforeOwned(ctx context.Context, userID string, before *entities.Meeting, limit int) ([]*entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepository) ListRecentOtherOwned(ctx context.Context, userID, excludeID string, limit int) ([]*entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepository) CountOwned(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byOwner[userID])), nil
}

func (f *fakeMeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[meeting.GetID()] = meeting
	return nil
}

func (f *fakeMeetingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok || !m.OwnedBy(userID) {
		return nil
	}
	delete(f.byID, id)
	return nil
}

func TestMeetingService_CheckQuotaFreePlan(t *testing.T) {
	repo := newFakeMeetingRepository()
	svc := NewMeetingService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.CheckQuota(ctx, "user-1", "free"))
		_, err := svc.CreateMeeting(ctx, "user-1", "M", "notes", entities.EmptyExtractionRecord())
		require.NoError(t, err)
	}

	err := svc.CheckQuota(ctx, "user-1", "free")
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindQuota, appErr.Kind)
}

func TestMeetingService_CheckQuotaIgnoredForPaidPlans(t *testing.T) {
	repo := newFakeMeetingRepository()
	svc := NewMeetingService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.CreateMeeting(ctx, "user-1", "M", "notes", entities.EmptyExtractionRecord())
		require.NoError(t, err)
	}

	assert.NoError(t, svc.CheckQuota(ctx, "user-1", "sub_pro"))
}

func TestMeetingService_GetOwnedNotFoundForWrongOwner(t *testing.T) {
	repo := newFakeMeetingRepository()
	svc := NewMeetingService(repo, nil)
	ctx := context.Background()

	meeting, err := svc.CreateMeeting(ctx, "user-1", "M", "notes", entities.EmptyExtractionRecord())
	require.NoError(t, err)

	_, err = svc.GetOwned(ctx, meeting.GetID(), "user-2")
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
}

func TestMeetingService_CreateMeetingPublishesEvent(t *testing.T) {
	repo := newFakeMeetingRepository()
	published := make(chan *MeetingCreated, 1)
	bus := &recordingEventBus{onPublish: func(eventType string, event interface{}) {
		if eventType == "meeting.created" {
			published <- event.(*MeetingCreated)
		}
	}}
	svc := NewMeetingService(repo, bus)

	meeting, err := svc.CreateMeeting(context.Background(), "user-1", "M", "notes", entities.EmptyExtractionRecord())
	require.NoError(t, err)

	select {
	case evt := <-published:
		assert.Equal(t, meeting.GetID(), evt.MeetingID)
		assert.Equal(t, "user-1", evt.UserID)
	default:
		t.Fatal("expected meeting.created to be published")
	}
}

type recordingEventBus struct {
	onPublish func(eventType string, event interface{})
}

func (r *recordingEventBus) Publish(eventType string, event interface{}) error {
	if r.onPublish != nil {
		r.onPublish(eventType, event)
	}
	return nil
}

func (r *recordingEventBus) Subscribe(eventType string, handler func(event interface{})) error {
	return nil
}
