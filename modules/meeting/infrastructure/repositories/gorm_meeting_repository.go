package repositories

import (
	"context"

	"gorm.io/gorm"

	"scribe/server/modules/meeting/domain/entities"
	"scribe/server/modules/meeting/domain/repositories"
	"scribe/server/seedwork/infrastructure/database"
)

// GormMeetingRepository implements MeetingRepository using GORM.
type GormMeetingRepository struct {
	db *gorm.DB
}

var _ repositories.MeetingRepository = (*GormMeetingRepository)(nil)

func NewGormMeetingRepository() *GormMeetingRepository {
	return &GormMeetingRepository{db: database.GetDB()}
}

func NewGormMeetingRepositoryWithDB(db *gorm.DB) *GormMeetingRepository {
	return &GormMeetingRepository{db: db}
}

func (r *GormMeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *GormMeetingRepository) FindByIDOwned(ctx context.Context, id, userID string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).First(&meeting, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *GormMeetingRepository) ListOwned(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meetings).Error
	return meetings, err
}

func (r *GormMeetingRepository) ListBeforeOwned(ctx context.Context, userID string, before *entities.Meeting, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at < ?", userID, before.GetCreatedAt()).
		Order("created_at DESC").
		Limit(limit).
		Find(&meetings).Error
	return meetings, err
}

func (r *GormMeetingRepository) ListRecentOtherOwned(ctx context.Context, userID, excludeID string, limit int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id != ?", userID, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&meetings).Error
	return meetings, err
}

func (r *GormMeetingRepository) CountOwned(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Meeting{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *GormMeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

func (r *GormMeetingRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.Meeting{}, "id = ?", id).Error
}
