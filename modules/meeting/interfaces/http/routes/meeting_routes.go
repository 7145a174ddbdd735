package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/server/modules/meeting/interfaces/http/handlers"
)

// MeetingRoutes wires the meeting CRUD surface. Upload/import/insights
// routes are mounted separately by their own modules onto the same group.
type MeetingRoutes struct {
	meetingHandlers *handlers.MeetingHandlers
}

func NewMeetingRoutes(meetingHandlers *handlers.MeetingHandlers) *MeetingRoutes {
	return &MeetingRoutes{meetingHandlers: meetingHandlers}
}

// Setup mounts onto an already-authenticated router group.
func (mr *MeetingRoutes) Setup(authenticated *gin.RouterGroup) {
	meetings := authenticated.Group("/meetings")
	{
		meetings.POST("", mr.meetingHandlers.CreateMeeting)
		meetings.GET("", mr.meetingHandlers.GetMeetings)
		meetings.GET("/:id", mr.meetingHandlers.GetMeetingByID)
		meetings.PATCH("/:id/transcript", mr.meetingHandlers.UpdateTranscript)
		meetings.PATCH("/:id/extraction", mr.meetingHandlers.UpdateExtraction)
		meetings.DELETE("/:id", mr.meetingHandlers.DeleteMeeting)
	}
}
