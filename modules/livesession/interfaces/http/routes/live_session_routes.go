package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/server/modules/livesession/interfaces/http/handlers"
)

type LiveSessionRoutes struct {
	liveSessionHandlers *handlers.LiveSessionHandlers
}

func NewLiveSessionRoutes(liveSessionHandlers *handlers.LiveSessionHandlers) *LiveSessionRoutes {
	return &LiveSessionRoutes{liveSessionHandlers: liveSessionHandlers}
}

func (lr *LiveSessionRoutes) Setup(authenticated *gin.RouterGroup) {
	live := authenticated.Group("/live")
	{
		live.POST("/start", lr.liveSessionHandlers.Start)
		live.GET("/:id/stream", lr.liveSessionHandlers.Stream)
		live.POST("/:id/chunk", lr.liveSessionHandlers.Chunk)
		live.POST("/:id/stop", lr.liveSessionHandlers.Stop)
		live.GET("/:id/status", lr.liveSessionHandlers.Status)
		live.POST("/:id/memory-hints", lr.liveSessionHandlers.MemoryHints)
	}
}
