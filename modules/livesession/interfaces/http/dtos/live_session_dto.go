package dtos

import (
	"time"

	"scribe/server/modules/livesession/domain/entities"
	livesessionservices "scribe/server/modules/livesession/application/services"
)

type StartRequest struct {
	Title        string `json:"title"`
	Participants string `json:"participants"`
}

type StartResponse struct {
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
}

func ToStartResponse(session *entities.LiveSession) StartResponse {
	return StartResponse{SessionID: session.ID, Title: session.Title}
}

type ChunkResponse struct {
	OK           bool `json:"ok"`
	SegmentIndex *int `json:"segment_index,omitempty"`
	Silent       bool `json:"silent,omitempty"`
}

type StopResponse struct {
	MeetingID *string `json:"meeting_id"`
	Title     string  `json:"title"`
	Message   string  `json:"message,omitempty"`
}

func ToStopResponse(result *livesessionservices.StopResult) StopResponse {
	return StopResponse{MeetingID: result.MeetingID, Title: result.Title, Message: result.Message}
}

type StatusResponse struct {
	SessionID    string     `json:"session_id"`
	Status       string     `json:"status"`
	Title        string     `json:"title"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	MeetingID    *string    `json:"meeting_id,omitempty"`
	SegmentCount int64      `json:"segment_count"`
}

func ToStatusResponse(session *entities.LiveSession, segmentCount int64) StatusResponse {
	return StatusResponse{
		SessionID:    session.ID,
		Status:       string(session.Status),
		Title:        session.Title,
		StartedAt:    session.StartedAt,
		EndedAt:      session.EndedAt,
		MeetingID:    session.MeetingID,
		SegmentCount: segmentCount,
	}
}

type MemoryHintsResponse struct {
	Hints []livesessionservices.MemoryHint `json:"hints"`
}
