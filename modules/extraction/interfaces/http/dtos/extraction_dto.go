package dtos

import (
	meetingentities "scribe/server/modules/meeting/domain/entities"
)

// ExtractRequest is the body for POST /meetings/extract: raw notes the
// caller wants turned into a structured extraction record without saving
// a meeting.
type ExtractRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// ExtractResponse mirrors the extraction record schema (§3).
type ExtractResponse struct {
	ActionItems       []meetingentities.ActionItem `json:"action_items"`
	FollowUpEmail     string                       `json:"follow_up_email"`
	Summary           string                       `json:"summary,omitempty"`
	OpenQuestions     []string                     `json:"open_questions,omitempty"`
	ProposedSolutions []string                     `json:"proposed_solutions,omitempty"`
}

func ToExtractResponse(record *meetingentities.ExtractionRecord) ExtractResponse {
	return ExtractResponse{
		ActionItems:       record.ActionItems,
		FollowUpEmail:     record.FollowUpEmail,
		Summary:           record.Summary,
		OpenQuestions:     record.OpenQuestions,
		ProposedSolutions: record.ProposedSolutions,
	}
}
