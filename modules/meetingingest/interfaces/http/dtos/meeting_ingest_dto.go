package dtos

import (
	meetingentities "scribe/server/modules/meeting/domain/entities"
)

// ImportZoomRequest is the body for POST /zoom/import (§6).
type ImportZoomRequest struct {
	MeetingID   string `json:"meeting_id" binding:"required"`
	RecordingID string `json:"recording_id" binding:"required"`
	Topic       string `json:"topic"`
	StartTime   string `json:"start_time"`
}

// IngestResponse is the shared response shape for both ingestion routes
// (§6: "{id, title, transcript}").
type IngestResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
}

func ToIngestResponse(meeting *meetingentities.Meeting) IngestResponse {
	return IngestResponse{ID: meeting.GetID(), Title: meeting.Title, Transcript: meeting.RawNotes}
}
