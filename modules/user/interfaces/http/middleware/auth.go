package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"scribe/server/modules/user/domain/entities"
	"scribe/server/modules/user/domain/repositories"
	"scribe/server/seedwork/apperror"
	"scribe/server/seedwork/infrastructure/config"
)

const sessionCookieName = "session_token"

// AuthMiddleware resolves the session cookie set by the (external,
// out-of-scope) login system into an authenticated user.
type AuthMiddleware struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	config      *config.Config
}

func NewAuthMiddleware(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      cfg,
	}
}

// RequireSession verifies the session cookie, loads the owning user, and
// stores both on the gin context. Every route but health checks requires it.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.Error(apperror.Unauthenticated("not logged in"))
			c.Abort()
			return
		}

		session, err := m.sessionRepo.FindByToken(token)
		if err != nil {
			c.Error(apperror.Unauthenticated("invalid session"))
			c.Abort()
			return
		}
		if session.Expired(time.Now()) {
			c.Error(apperror.Unauthenticated("session expired"))
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(session.UserID)
		if err != nil {
			c.Error(apperror.Unauthenticated("invalid session"))
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.GetID())
		c.Next()
	}
}

// RequireAdmin additionally verifies the authenticated user's email matches
// the configured admin identity (§9 Admin identification).
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get("user")
		if !exists {
			c.Error(apperror.Unauthenticated("not logged in"))
			c.Abort()
			return
		}
		user := userVal.(*entities.User)
		if !m.config.IsAdmin(user.GetEmail().String()) {
			c.Error(apperror.Forbidden("admin only"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated user set by RequireSession.
func CurrentUser(c *gin.Context) *entities.User {
	userVal, exists := c.Get("user")
	if !exists {
		return nil
	}
	return userVal.(*entities.User)
}
