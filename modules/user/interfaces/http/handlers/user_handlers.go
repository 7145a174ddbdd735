package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/server/modules/user/application/services"
	"scribe/server/modules/user/interfaces/http/dtos"
	"scribe/server/modules/user/interfaces/http/middleware"
	"scribe/server/seedwork/apperror"
)

// UserHandlers exposes the profile-facing operations this system owns.
// Signup/login/password-reset/OAuth are boundary components handled by an
// external collaborator (§1); this module only consumes the session it
// leaves behind.
type UserHandlers struct {
	userService *services.UserService
}

func NewUserHandlers(userService *services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// GetCurrentUser returns the authenticated user's profile.
func (h *UserHandlers) GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}
	c.JSON(http.StatusOK, dtos.ToUserResponse(user))
}

// UpdateCurrentUser updates the authenticated user's display name.
func (h *UserHandlers) UpdateCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	var req dtos.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("invalid_request", err.Error()))
		return
	}

	if req.Name != nil {
		updated, err := h.userService.UpdateName(user.GetID(), *req.Name)
		if err != nil {
			c.Error(apperror.Storage("failed to update user", err))
			return
		}
		c.JSON(http.StatusOK, dtos.ToUserResponse(updated))
		return
	}

	c.JSON(http.StatusOK, dtos.ToUserResponse(user))
}
