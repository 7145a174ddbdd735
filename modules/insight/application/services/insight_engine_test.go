package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meetingentities "scribe/server/modules/meeting/domain/entities"
)

type fakeMeetingRepository struct {
	byID     map[string]*meetingentities.Meeting
	byUserID map[string][]*meetingentities.Meeting
}

func newFakeMeetingRepository() *fakeMeetingRepository {
	return &fakeMeetingRepository{
		byID:     map[string]*meetingentities.Meeting{},
		byUserID: map[string][]*meetingentities.Meeting{},
	}
}

func (f *fakeMeetingRepository) add(m *meetingentities.Meeting) {
	f.byID[m.GetID()] = m
	f.byUserID[m.UserID] = append(f.byUserID[m.UserID], m)
}

func (f *fakeMeetingRepository) Create(ctx context.Context, meeting *meetingentities.Meeting) error {
	f.add(meeting)
	return nil
}

func (f *fakeMeetingRepository) FindByIDOwned(ctx context.Context, id, userID string) (*meetingentities.Meeting, error) {
	m, ok := f.byID[id]
	if !ok || !m.OwnedBy(userID) {
		return nil, assertNotFoundErr
	}
	return m, nil
}

func (f *fakeMeetingRepository) ListOwned(ctx context.Context, userID string) ([]*meetingentities.Meeting, error) {
	return f.byUserID[userID], nil
}

// ListBeforeOwned returns every meeting for userID other than the focal
// meeting itself, in the order they were added — oldest-added-last is
// irrelevant here since these tests only ever add meetings prior to the
// focal one before calling Compute.
func (f *fakeMeetingRepository) ListBeforeOwned(ctx context.Context, userID string, before *meetingentities.Meeting, limit int) ([]*meetingentities.Meeting, error) {
	var result []*meetingentities.Meeting
	for _, m := range f.byUserID[userID] {
		if m.GetID() != before.GetID() {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMeetingRepository) ListRecentOtherOwned(ctx context.Context, userID, excludeID string, limit int) ([]*meetingentities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepository) CountOwned(ctx context.Context, userID string) (int64, error) {
	return int64(len(f.byUserID[userID])), nil
}

func (f *fakeMeetingRepository) Update(ctx context.Context, meeting *meetingentities.Meeting) error {
	f.byID[meeting.GetID()] = meeting
	return nil
}

func (f *fakeMeetingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	delete(f.byID, id)
	return nil
}

var assertNotFoundErr = &notFoundStub{}

type notFoundStub struct{}

func (*notFoundStub) Error() string { return "record not found" }

func TestInsightEngine_NoPriorMeetingsYieldsNoCards(t *testing.T) {
	repo := newFakeMeetingRepository()
	focal := meetingentities.NewMeeting("user-1", "Kickoff", "Attendees: Alice, Bob\nWe discussed the roadmap.", meetingentities.EmptyExtractionRecord())
	repo.add(&focal)

	engine := NewInsightEngine(repo)
	cards, whatChanged, err := engine.Compute(context.Background(), "user-1", focal.GetID())

	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.False(t, whatChanged.HasPrior)
}

func TestInsightEngine_RecurringTopicsAndNewTopics(t *testing.T) {
	repo := newFakeMeetingRepository()

	prior := meetingentities.NewMeeting("user-1", "Sprint Planning", "Attendees: Alice, Bob\nWe discussed database migration strategy and rollout timeline.", meetingentities.EmptyExtractionRecord())
	repo.add(&prior)

	focal := meetingentities.NewMeeting("user-1", "Sprint Review", "Attendees: Alice, Bob\nWe discussed database migration progress and a new authentication redesign.", meetingentities.EmptyExtractionRecord())
	repo.add(&focal)

	engine := NewInsightEngine(repo)
	cards, whatChanged, err := engine.Compute(context.Background(), "user-1", focal.GetID())

	require.NoError(t, err)
	require.True(t, whatChanged.HasPrior)
	assert.Equal(t, prior.GetID(), whatChanged.PriorMeetingID)

	var sawRecurringTopics, sawNewTopics, sawParticipants bool
	for _, card := range cards {
		switch card.Kind {
		case "recurring_topics":
			sawRecurringTopics = true
			assert.Contains(t, card.SharedTokens, "database")
		case "new_topics":
			sawNewTopics = true
		case "recurring_participants":
			sawParticipants = true
		}
	}
	assert.True(t, sawRecurringTopics, "expected a recurring_topics card")
	assert.True(t, sawNewTopics, "expected a new_topics card")
	assert.True(t, sawParticipants, "expected a recurring_participants card")
}

func TestInsightEngine_UnresolvedItemsCarryForwardViaKeywordOverlap(t *testing.T) {
	repo := newFakeMeetingRepository()

	priorExtraction := meetingentities.ExtractionRecord{
		ActionItems: []meetingentities.ActionItem{{Task: "Finish the database migration script", Owner: "Alice"}},
	}
	prior := meetingentities.NewMeeting("user-1", "Standup", "Attendees: Alice\nDiscussed database migration blockers.", priorExtraction)
	repo.add(&prior)

	focal := meetingentities.NewMeeting("user-1", "Standup 2", "Attendees: Alice\nStill waiting on the database migration work.", meetingentities.EmptyExtractionRecord())
	repo.add(&focal)

	engine := NewInsightEngine(repo)
	cards, _, err := engine.Compute(context.Background(), "user-1", focal.GetID())
	require.NoError(t, err)

	var unresolved *string
	for _, card := range cards {
		if card.Kind == "unresolved_items" {
			require.Len(t, card.Tasks, 1)
			task := card.Tasks[0]
			unresolved = &task
		}
	}
	require.NotNil(t, unresolved, "expected an unresolved_items card")
	assert.Equal(t, "Finish the database migration script", *unresolved)
}

func TestInsightEngine_WhatChangedDiffsActionItems(t *testing.T) {
	repo := newFakeMeetingRepository()

	prior := meetingentities.NewMeeting("user-1", "M1", "Attendees: Alice\nOld discussion.", meetingentities.ExtractionRecord{
		ActionItems: []meetingentities.ActionItem{{Task: "Ship the login page"}},
	})
	repo.add(&prior)

	focal := meetingentities.NewMeeting("user-1", "M2", "Attendees: Alice\nNew discussion.", meetingentities.ExtractionRecord{
		ActionItems: []meetingentities.ActionItem{{Task: "Ship the signup page"}},
	})
	repo.add(&focal)

	engine := NewInsightEngine(repo)
	_, whatChanged, err := engine.Compute(context.Background(), "user-1", focal.GetID())
	require.NoError(t, err)

	assert.Contains(t, whatChanged.NewActionItems, "ship the signup page")
	assert.Contains(t, whatChanged.ResolvedSinceLast, "ship the login page")
}
