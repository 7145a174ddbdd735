package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/server/modules/meetingingest/interfaces/http/handlers"
)

// MeetingIngestRoutes mounts the two ingestion entry points onto the
// authenticated group's existing /meetings prefix and the dedicated /zoom
// prefix (§6).
type MeetingIngestRoutes struct {
	handlers *handlers.MeetingIngestHandlers
}

func NewMeetingIngestRoutes(handlers *handlers.MeetingIngestHandlers) *MeetingIngestRoutes {
	return &MeetingIngestRoutes{handlers: handlers}
}

func (mr *MeetingIngestRoutes) Setup(authenticated *gin.RouterGroup) {
	authenticated.POST("/meetings/upload", mr.handlers.UploadFile)
	authenticated.POST("/zoom/import", mr.handlers.ImportZoom)
}
