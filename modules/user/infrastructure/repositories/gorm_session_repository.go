package repositories

import (
	"scribe/server/modules/user/domain/entities"
	"scribe/server/modules/user/domain/repositories"
	"scribe/server/seedwork/infrastructure/database"

	"gorm.io/gorm"
)

// GormSessionRepository resolves session cookies against the boundary
// sessions table.
type GormSessionRepository struct {
	db *gorm.DB
}

var _ repositories.SessionRepository = (*GormSessionRepository)(nil)

func NewGormSessionRepository() *GormSessionRepository {
	return &GormSessionRepository{db: database.GetDB()}
}

func (r *GormSessionRepository) FindByToken(token string) (*entities.Session, error) {
	var session entities.Session
	if err := r.db.First(&session, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) Create(session *entities.Session) error {
	return r.db.Create(session).Error
}

func (r *GormSessionRepository) DeleteByToken(token string) error {
	return r.db.Delete(&entities.Session{}, "token = ?", token).Error
}
