package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"scribe/server/modules/meeting/domain/entities"
	"scribe/server/modules/meeting/domain/repositories"
	"scribe/server/seedwork/apperror"
	"scribe/server/seedwork/infrastructure/events"
)

// MeetingCreated is published whenever a new meeting record lands, carrying
// just enough to let a subscriber look the meeting up rather than duplicating
// its fields.
type MeetingCreated struct {
	MeetingID string
	UserID    string
}

// freeMeetingCap is the meeting-storage quota for the free plan (§4.E):
// checked before any work that would create a meeting record, separate from
// the UsageGate's extract counters.
const freeMeetingCap = 3

// MeetingService implements create/read/update/delete for meetings plus the
// meeting-storage quota check shared by MeetingIngest and live-session start.
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
	eventBus    events.EventBus
}

func NewMeetingService(meetingRepo repositories.MeetingRepository, eventBus events.EventBus) *MeetingService {
	return &MeetingService{meetingRepo: meetingRepo, eventBus: eventBus}
}

// CheckQuota enforces the free-plan meeting cap. plan is the caller's raw
// plan string so this module never imports the user module's entities.
func (s *MeetingService) CheckQuota(ctx context.Context, userID, plan string) error {
	if plan != "free" {
		return nil
	}
	count, err := s.meetingRepo.CountOwned(ctx, userID)
	if err != nil {
		return apperror.Storage("failed to check meeting quota", err)
	}
	if count >= freeMeetingCap {
		return apperror.Quota("meeting_limit", "Free plan limit reached (3 meetings). Upgrade to continue.")
	}
	return nil
}

// CreateMeeting persists a meeting. Callers that must enforce the quota
// (MeetingIngest, live-session start, manual save) call CheckQuota first.
func (s *MeetingService) CreateMeeting(ctx context.Context, userID, title, rawNotes string, extraction entities.ExtractionRecord) (*entities.Meeting, error) {
	meeting := entities.NewMeeting(userID, title, rawNotes, extraction)
	if err := s.meetingRepo.Create(ctx, &meeting); err != nil {
		return nil, apperror.Storage("failed to create meeting", err)
	}
	if s.eventBus != nil {
		_ = s.eventBus.Publish("meeting.created", &MeetingCreated{MeetingID: meeting.GetID(), UserID: userID})
	}
	return &meeting, nil
}

// GetOwned fetches a meeting by id, scoped to userID; a non-owned or
// nonexistent id surfaces uniformly as "not found" (Ownership summary, §3).
func (s *MeetingService) GetOwned(ctx context.Context, id, userID string) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByIDOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("meeting not found")
		}
		return nil, apperror.Storage("failed to fetch meeting", err)
	}
	return meeting, nil
}

func (s *MeetingService) ListOwned(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.ListOwned(ctx, userID)
	if err != nil {
		return nil, apperror.Storage("failed to list meetings", err)
	}
	return meetings, nil
}

// ListBeforeOwned returns the meetings created strictly before the given
// meeting; used by the Insight Engine's what-changed diff (§4.G) to find the
// immediately-prior meeting.
func (s *MeetingService) ListBeforeOwned(ctx context.Context, userID string, before *entities.Meeting, limit int) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.ListBeforeOwned(ctx, userID, before, limit)
	if err != nil {
		return nil, apperror.Storage("failed to list prior meetings", err)
	}
	return meetings, nil
}

// ListRecentOtherOwned supplies memory-hints for an active live session
// (§4.H): recent meetings other than one the session may already be linked to.
func (s *MeetingService) ListRecentOtherOwned(ctx context.Context, userID, excludeID string, limit int) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.ListRecentOtherOwned(ctx, userID, excludeID, limit)
	if err != nil {
		return nil, apperror.Storage("failed to list recent meetings", err)
	}
	return meetings, nil
}

func (s *MeetingService) UpdateTranscript(ctx context.Context, id, userID, rawNotes string) (*entities.Meeting, error) {
	meeting, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	meeting.RawNotes = rawNotes
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, apperror.Storage("failed to update meeting transcript", err)
	}
	return meeting, nil
}

func (s *MeetingService) UpdateExtraction(ctx context.Context, id, userID string, extraction entities.ExtractionRecord) (*entities.Meeting, error) {
	meeting, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	meeting.SetExtraction(extraction)
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, apperror.Storage("failed to update meeting extraction", err)
	}
	return meeting, nil
}

// DeleteOwned removes a meeting, scoped to userID so a foreign id is a no-op
// rather than a cross-tenant delete.
func (s *MeetingService) DeleteOwned(ctx context.Context, id, userID string) error {
	if err := s.meetingRepo.DeleteOwned(ctx, id, userID); err != nil {
		return apperror.Storage("failed to delete meeting", err)
	}
	return nil
}
