package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/server/modules/trackedissue/application/services"
	"scribe/server/modules/trackedissue/interfaces/http/dtos"
	usermiddleware "scribe/server/modules/user/interfaces/http/middleware"
	"scribe/server/seedwork/apperror"
)

type TrackedIssueHandlers struct {
	trackedIssueService *services.TrackedIssueService
}

func NewTrackedIssueHandlers(trackedIssueService *services.TrackedIssueService) *TrackedIssueHandlers {
	return &TrackedIssueHandlers{trackedIssueService: trackedIssueService}
}

func (h *TrackedIssueHandlers) ListTrackedIssues(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	issues, err := h.trackedIssueService.ListOwned(c.Request.Context(), user.GetID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToTrackedIssuesListResponse(issues))
}

func (h *TrackedIssueHandlers) ResolveTrackedIssue(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	issue, err := h.trackedIssueService.Resolve(c.Request.Context(), c.Param("id"), user.GetID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToTrackedIssueResponse(issue))
}
