package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/server/modules/trackedissue/interfaces/http/handlers"
)

type TrackedIssueRoutes struct {
	trackedIssueHandlers *handlers.TrackedIssueHandlers
}

func NewTrackedIssueRoutes(trackedIssueHandlers *handlers.TrackedIssueHandlers) *TrackedIssueRoutes {
	return &TrackedIssueRoutes{trackedIssueHandlers: trackedIssueHandlers}
}

func (tr *TrackedIssueRoutes) Setup(authenticated *gin.RouterGroup) {
	issues := authenticated.Group("/tracked-issues")
	{
		issues.GET("", tr.trackedIssueHandlers.ListTrackedIssues)
		issues.PATCH("/:id/resolve", tr.trackedIssueHandlers.ResolveTrackedIssue)
	}
}
