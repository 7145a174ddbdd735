package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/server/modules/meeting/application/services"
	"scribe/server/modules/meeting/domain/entities"
	"scribe/server/modules/meeting/interfaces/http/dtos"
	usermiddleware "scribe/server/modules/user/interfaces/http/middleware"
	"scribe/server/seedwork/apperror"
)

// MeetingHandlers covers the CRUD surface meetings own directly: manual
// save, list, fetch, field updates, delete. Upload/import/insights live in
// their own modules and call through to MeetingService.
type MeetingHandlers struct {
	meetingService *services.MeetingService
}

func NewMeetingHandlers(meetingService *services.MeetingService) *MeetingHandlers {
	return &MeetingHandlers{meetingService: meetingService}
}

// CreateMeeting handles manual save: a user pasting notes directly rather
// than uploading audio or stopping a live session.
func (h *MeetingHandlers) CreateMeeting(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	var req dtos.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("invalid_request", err.Error()))
		return
	}

	if err := h.meetingService.CheckQuota(c.Request.Context(), user.GetID(), string(user.Plan)); err != nil {
		c.Error(err)
		return
	}

	meeting, err := h.meetingService.CreateMeeting(c.Request.Context(), user.GetID(), req.Title, req.RawNotes, entities.EmptyExtractionRecord())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dtos.ToMeetingResponse(meeting))
}

func (h *MeetingHandlers) GetMeetings(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	meetings, err := h.meetingService.ListOwned(c.Request.Context(), user.GetID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToMeetingsListResponse(meetings))
}

func (h *MeetingHandlers) GetMeetingByID(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	meeting, err := h.meetingService.GetOwned(c.Request.Context(), c.Param("id"), user.GetID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToMeetingResponse(meeting))
}

func (h *MeetingHandlers) UpdateTranscript(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	var req dtos.UpdateTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("invalid_request", err.Error()))
		return
	}

	meeting, err := h.meetingService.UpdateTranscript(c.Request.Context(), c.Param("id"), user.GetID(), req.RawNotes)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToMeetingResponse(meeting))
}

func (h *MeetingHandlers) UpdateExtraction(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	var req dtos.UpdateExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("invalid_request", err.Error()))
		return
	}

	meeting, err := h.meetingService.UpdateExtraction(c.Request.Context(), c.Param("id"), user.GetID(), req.ToRecord())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToMeetingResponse(meeting))
}

func (h *MeetingHandlers) DeleteMeeting(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	if err := h.meetingService.DeleteOwned(c.Request.Context(), c.Param("id"), user.GetID()); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
