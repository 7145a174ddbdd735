package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/server/modules/insight/interfaces/http/handlers"
)

type InsightRoutes struct {
	insightHandlers *handlers.InsightHandlers
}

func NewInsightRoutes(insightHandlers *handlers.InsightHandlers) *InsightRoutes {
	return &InsightRoutes{insightHandlers: insightHandlers}
}

func (ir *InsightRoutes) Setup(authenticated *gin.RouterGroup) {
	meetings := authenticated.Group("/meetings")
	{
		meetings.GET("/:id/insights", ir.insightHandlers.GetInsights)
		meetings.GET("/:id/whatchanged", ir.insightHandlers.GetWhatChanged)
	}
}
