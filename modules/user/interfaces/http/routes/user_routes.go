package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/server/modules/user/interfaces/http/handlers"
)

// UserRoutes sets up the profile routes this module owns.
type UserRoutes struct {
	userHandlers *handlers.UserHandlers
}

func NewUserRoutes(userHandlers *handlers.UserHandlers) *UserRoutes {
	return &UserRoutes{userHandlers: userHandlers}
}

// Setup registers routes on a group that already carries RequireSession.
func (ur *UserRoutes) Setup(authenticated *gin.RouterGroup) {
	authenticated.GET("/me", ur.userHandlers.GetCurrentUser)
	authenticated.PATCH("/me", ur.userHandlers.UpdateCurrentUser)
}
