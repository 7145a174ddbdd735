package dtos

import (
	"time"

	"scribe/server/modules/meeting/domain/entities"
)

// CreateMeetingRequest is the manual-save shape: a user pasting notes
// directly rather than uploading audio or stopping a live session.
type CreateMeetingRequest struct {
	Title    string `json:"title"`
	RawNotes string `json:"raw_notes" binding:"required"`
}

type UpdateTranscriptRequest struct {
	RawNotes string `json:"raw_notes" binding:"required"`
}

type UpdateExtractionRequest struct {
	ActionItems       []entities.ActionItem `json:"action_items"`
	FollowUpEmail     string                `json:"follow_up_email"`
	Summary           string                `json:"summary"`
	OpenQuestions     []string              `json:"open_questions"`
	ProposedSolutions []string              `json:"proposed_solutions"`
}

func (r UpdateExtractionRequest) ToRecord() entities.ExtractionRecord {
	return entities.ExtractionRecord{
		ActionItems:       r.ActionItems,
		FollowUpEmail:     r.FollowUpEmail,
		Summary:           r.Summary,
		OpenQuestions:     r.OpenQuestions,
		ProposedSolutions: r.ProposedSolutions,
	}
}

// MeetingResponse is the wire shape for a meeting: action_items is expanded
// from its stored JSON blob into the extraction record fields.
type MeetingResponse struct {
	ID                string                `json:"id"`
	UserID            string                `json:"user_id"`
	Title             string                `json:"title"`
	RawNotes          string                `json:"raw_notes"`
	ActionItems       []entities.ActionItem `json:"action_items"`
	FollowUpEmail     string                `json:"follow_up_email"`
	Summary           string                `json:"summary,omitempty"`
	OpenQuestions     []string              `json:"open_questions,omitempty"`
	ProposedSolutions []string              `json:"proposed_solutions,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

type MeetingsListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
	Total    int64             `json:"total"`
}

func ToMeetingResponse(meeting *entities.Meeting) MeetingResponse {
	extraction := meeting.Extraction()
	return MeetingResponse{
		ID:                meeting.GetID(),
		UserID:            meeting.UserID,
		Title:             meeting.Title,
		RawNotes:          meeting.RawNotes,
		ActionItems:       extraction.ActionItems,
		FollowUpEmail:     extraction.FollowUpEmail,
		Summary:           extraction.Summary,
		OpenQuestions:     extraction.OpenQuestions,
		ProposedSolutions: extraction.ProposedSolutions,
		CreatedAt:         meeting.GetCreatedAt(),
		UpdatedAt:         meeting.GetUpdatedAt(),
	}
}

func ToMeetingsListResponse(meetings []*entities.Meeting) MeetingsListResponse {
	responses := make([]MeetingResponse, len(meetings))
	for i, meeting := range meetings {
		responses[i] = ToMeetingResponse(meeting)
	}
	return MeetingsListResponse{Meetings: responses, Total: int64(len(responses))}
}
