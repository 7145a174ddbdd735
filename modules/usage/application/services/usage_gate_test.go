package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/server/modules/usage/domain/entities"
	"scribe/server/seedwork/apperror"
)

type fakeUsageRepository struct {
	mu       sync.Mutex
	counters map[string]*entities.UsageCounter
}

func newFakeUsageRepository() *fakeUsageRepository {
	return &fakeUsageRepository{counters: map[string]*entities.UsageCounter{}}
}

func (f *fakeUsageRepository) key(userID, month string) string { return userID + "|" + month }

func (f *fakeUsageRepository) GetByUserMonth(ctx context.Context, userID, month string) (*entities.UsageCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[f.key(userID, month)], nil
}

func (f *fakeUsageRepository) EnsureRow(ctx context.Context, userID, month string) (*entities.UsageCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(userID, month)
	if c, ok := f.counters[k]; ok {
		return c, nil
	}
	c := entities.NewUsageCounter(userID, month)
	f.counters[k] = &c
	return &c, nil
}

func (f *fakeUsageRepository) IncrementAtomic(ctx context.Context, userID, month string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(userID, month)
	c, ok := f.counters[k]
	if !ok {
		nc := entities.NewUsageCounter(userID, month)
		c = &nc
		f.counters[k] = c
	}
	c.Extracts++
	return nil
}

func (f *fakeUsageRepository) SumAllTimeForUser(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for k, c := range f.counters {
		if len(k) > len(userID) && k[:len(userID)] == userID {
			total += c.Extracts
		}
	}
	return total, nil
}

func (f *fakeUsageRepository) SumMonthAllUsers(ctx context.Context, month string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, c := range f.counters {
		if c.Month == month {
			total += c.Extracts
		}
	}
	return total, nil
}

func TestUsageGate_FreePlanLifetimeCap(t *testing.T) {
	repo := newFakeUsageRepository()
	gate := NewUsageGate(repo, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, gate.Enforce(ctx, "user-1", "free"))
		require.NoError(t, gate.Consume(ctx, "user-1"))
	}

	err := gate.Enforce(ctx, "user-1", "free")
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindQuota, appErr.Kind)
}

func TestUsageGate_PaidPlanMonthlyCap(t *testing.T) {
	repo := newFakeUsageRepository()
	gate := NewUsageGate(repo, nil)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		require.NoError(t, gate.Enforce(ctx, "user-2", "sub_basic"))
		require.NoError(t, gate.Consume(ctx, "user-2"))
	}

	err := gate.Enforce(ctx, "user-2", "sub_basic")
	require.Error(t, err)
}

func TestUsageGate_UnknownPlanFallsBackToFree(t *testing.T) {
	repo := newFakeUsageRepository()
	gate := NewUsageGate(repo, nil)
	ctx := context.Background()

	result, err := gate.Check(ctx, "user-3", "nonexistent_plan")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Max)
}

func TestUsageGate_ConsumePublishesEvent(t *testing.T) {
	repo := newFakeUsageRepository()
	published := make(chan *UsageIncremented, 1)
	bus := &recordingEventBus{onPublish: func(eventType string, event interface{}) {
		if eventType == "usage.incremented" {
			published <- event.(*UsageIncremented)
		}
	}}
	gate := NewUsageGate(repo, bus)

	require.NoError(t, gate.Consume(context.Background(), "user-4"))

	select {
	case evt := <-published:
		assert.Equal(t, "user-4", evt.UserID)
	default:
		t.Fatal("expected usage.incremented to be published")
	}
}

// recordingEventBus is a minimal synchronous events.EventBus stub for unit
// tests that only need to observe what got published.
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
