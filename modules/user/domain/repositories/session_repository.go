package repositories

import (
	"scribe/server/modules/user/domain/entities"
)

// SessionRepository resolves the boundary session-cookie table.
type SessionRepository interface {
	FindByToken(token string) (*entities.Session, error)
	Create(session *entities.Session) error
	DeleteByToken(token string) error
}
