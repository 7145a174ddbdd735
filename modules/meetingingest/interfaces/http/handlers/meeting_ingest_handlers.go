package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/server/modules/meetingingest/application/services"
	"scribe/server/modules/meetingingest/interfaces/http/dtos"
	usermiddleware "scribe/server/modules/user/interfaces/http/middleware"
	"scribe/server/seedwork/apperror"
)

// maxUploadFormBytes mirrors the service-level 100MB cap; enforced early
// here too so an oversized body is rejected before it's fully buffered.
const maxUploadFormBytes = 100<<20 + 1<<20 // cap plus slack for multipart framing

// MeetingIngestHandlers exposes the two §4.I ingestion routes.
type MeetingIngestHandlers struct {
	service *services.MeetingIngestService
}

func NewMeetingIngestHandlers(service *services.MeetingIngestService) *MeetingIngestHandlers {
	return &MeetingIngestHandlers{service: service}
}

// UploadFile handles POST /meetings/upload (§6).
func (h *MeetingIngestHandlers) UploadFile(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadFormBytes)

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.Error(apperror.Validation("missing_audio", "audio file is required"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Validation("invalid_audio", "failed to read audio file"))
		return
	}

	meeting, err := h.service.UploadFile(c.Request.Context(), user.GetID(), string(user.Plan), header.Filename, audio)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dtos.ToIngestResponse(meeting))
}

// ImportZoom handles POST /zoom/import (§6).
func (h *MeetingIngestHandlers) ImportZoom(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	var req dtos.ImportZoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("invalid_request", err.Error()))
		return
	}

	meeting, err := h.service.ImportZoom(c.Request.Context(), user.GetID(), string(user.Plan), req.MeetingID, req.RecordingID, req.Topic)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dtos.ToIngestResponse(meeting))
}
