package repositories

import (
	"context"

	"gorm.io/gorm"

	"scribe/server/modules/livesession/domain/entities"
	"scribe/server/modules/livesession/domain/repositories"
	"scribe/server/seedwork/infrastructure/database"
)

// GormLiveSessionRepository implements LiveSessionRepository over the
// embedded store (component A). The single-active-session guard and the
// segment-index allocation are each a single db.Transaction call, matching
// §5's "read-max-then-insert is acceptable only inside a single writer
// transaction" guidance.
type GormLiveSessionRepository struct {
	db *gorm.DB
}

var _ repositories.LiveSessionRepository = (*GormLiveSessionRepository)(nil)

func NewGormLiveSessionRepository() *GormLiveSessionRepository {
	return &GormLiveSessionRepository{db: database.GetDB()}
}

func NewGormLiveSessionRepositoryWithDB(db *gorm.DB) *GormLiveSessionRepository {
	return &GormLiveSessionRepository{db: db}
}

func (r *GormLiveSessionRepository) CreateActive(ctx context.Context, userID, title, participants string) (*entities.LiveSession, error) {
	var result entities.LiveSession
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.LiveSession
		err := tx.Where("user_id = ? AND status = ?", userID, entities.StatusActive).First(&existing).Error
		if err == nil {
			result = existing
			return repositories.ErrAlreadyActive
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		session := entities.NewLiveSession(userID, title, participants)
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		result = session
		return nil
	})
	if err == repositories.ErrAlreadyActive {
		return &result, repositories.ErrAlreadyActive
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *GormLiveSessionRepository) FindActiveByUser(ctx context.Context, userID string) (*entities.LiveSession, error) {
	var session entities.LiveSession
	err := r.db.WithContext(ctx).Where("user_id = ? AND status = ?", userID, entities.StatusActive).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormLiveSessionRepository) FindByIDOwned(ctx context.Context, id, userID string) (*entities.LiveSession, error) {
	var session entities.LiveSession
	err := r.db.WithContext(ctx).First(&session, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormLiveSessionRepository) AppendSegment(ctx context.Context, sessionID, text string, timestampMs int64) (*entities.TranscriptSegment, error) {
	var segment entities.TranscriptSegment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session entities.LiveSession
		if err := tx.First(&session, "id = ?", sessionID).Error; err != nil {
			return err
		}

		index := session.NextSegmentIndex
		newSegment := entities.NewTranscriptSegment(sessionID, index, text, timestampMs)
		if err := tx.Create(&newSegment).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.LiveSession{}).
			Where("id = ?", sessionID).
			Update("next_segment_index", index+1).Error; err != nil {
			return err
		}
		segment = newSegment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &segment, nil
}

func (r *GormLiveSessionRepository) ListSegmentsOrdered(ctx context.Context, sessionID string) ([]*entities.TranscriptSegment, error) {
	var segments []*entities.TranscriptSegment
	err := r.db.WithContext(ctx).
		Where("live_session_id = ?", sessionID).
		Order("segment_index ASC").
		Find(&segments).Error
	return segments, err
}

func (r *GormLiveSessionRepository) CountSegments(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.TranscriptSegment{}).
		Where("live_session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

func (r *GormLiveSessionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.LiveSession{}).
		Where("status = ?", entities.StatusActive).
		Count(&count).Error
	return count, err
}

func (r *GormLiveSessionRepository) Finalize(ctx context.Context, sessionID string, status entities.Status, meetingID *string) error {
	updates := map[string]interface{}{
		"status":     status,
		"stopped_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if meetingID != nil {
		updates["meeting_id"] = *meetingID
	}
	return r.db.WithContext(ctx).Model(&entities.LiveSession{}).Where("id = ?", sessionID).Updates(updates).Error
}
