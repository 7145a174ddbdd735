package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scribe/server/modules/usage/domain/entities"
	"scribe/server/modules/usage/domain/repositories"
	"scribe/server/seedwork/infrastructure/database"
)

// GormUsageRepository implements UsageRepository using GORM.
type GormUsageRepository struct {
	db *gorm.DB
}

var _ repositories.UsageRepository = (*GormUsageRepository)(nil)

func NewGormUsageRepository() *GormUsageRepository {
	return &GormUsageRepository{db: database.GetDB()}
}

func (r *GormUsageRepository) GetByUserMonth(ctx context.Context, userID, month string) (*entities.UsageCounter, error) {
	var counter entities.UsageCounter
	err := r.db.WithContext(ctx).First(&counter, "user_id = ? AND month = ?", userID, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func (r *GormUsageRepository) EnsureRow(ctx context.Context, userID, month string) (*entities.UsageCounter, error) {
	counter := entities.NewUsageCounter(userID, month)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(&counter).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserMonth(ctx, userID, month)
}

// IncrementAtomic relies on SQLite's upsert support: insert a fresh row
// with extracts=1, or on the unique (user_id, month) conflict, bump the
// existing row's extracts by 1 — a single statement, safe under concurrent
// callers (§5).
func (r *GormUsageRepository) IncrementAtomic(ctx context.Context, userID, month string) error {
	counter := entities.NewUsageCounter(userID, month)
	counter.Extracts = 1
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"extracts":   gorm.Expr("extracts + 1"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&counter).Error
}

func (r *GormUsageRepository) SumAllTimeForUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&entities.UsageCounter{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(extracts), 0)").
		Scan(&total).Error
	return total, err
}

func (r *GormUsageRepository) SumMonthAllUsers(ctx context.Context, month string) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&entities.UsageCounter{}).
		Where("month = ?", month).
		Select("COALESCE(SUM(extracts), 0)").
		Scan(&total).Error
	return total, err
}
