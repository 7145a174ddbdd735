package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scribe/server/modules/trackedissue/domain/entities"
	"scribe/server/modules/trackedissue/domain/repositories"
	"scribe/server/seedwork/infrastructure/database"
)

// GormTrackedIssueRepository implements TrackedIssueRepository using GORM.
type GormTrackedIssueRepository struct {
	db *gorm.DB
}

var _ repositories.TrackedIssueRepository = (*GormTrackedIssueRepository)(nil)

func NewGormTrackedIssueRepository() *GormTrackedIssueRepository {
	return &GormTrackedIssueRepository{db: database.GetDB()}
}

func (r *GormTrackedIssueRepository) UpsertIfAbsent(ctx context.Context, issue *entities.TrackedIssue) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "dedupe_key"}},
			DoNothing: true,
		}).
		Create(issue).Error
}

func (r *GormTrackedIssueRepository) ListOwned(ctx context.Context, userID string) ([]*entities.TrackedIssue, error) {
	var issues []*entities.TrackedIssue
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&issues).Error
	return issues, err
}

func (r *GormTrackedIssueRepository) FindByIDOwned(ctx context.Context, id, userID string) (*entities.TrackedIssue, error) {
	var issue entities.TrackedIssue
	err := r.db.WithContext(ctx).First(&issue, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *GormTrackedIssueRepository) Update(ctx context.Context, issue *entities.TrackedIssue) error {
	return r.db.WithContext(ctx).Save(issue).Error
}
