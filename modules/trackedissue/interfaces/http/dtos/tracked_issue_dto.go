package dtos

import (
	"time"

	"scribe/server/modules/trackedissue/domain/entities"
)

type TrackedIssueResponse struct {
	ID                 string     `json:"id"`
	SourceMeetingID    string     `json:"source_meeting_id"`
	SourceMeetingTitle string     `json:"source_meeting_title,omitempty"`
	Text               string     `json:"text"`
	Notes              string     `json:"notes,omitempty"`
	Resolved           bool       `json:"resolved"`
	CreatedAt          time.Time  `json:"created_at"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
}

type TrackedIssuesListResponse struct {
	Issues []TrackedIssueResponse `json:"issues"`
}

func ToTrackedIssueResponse(issue *entities.TrackedIssue) TrackedIssueResponse {
	return TrackedIssueResponse{
		ID:                 issue.ID,
		SourceMeetingID:    issue.SourceMeetingID,
		SourceMeetingTitle: issue.SourceMeetingTitle,
		Text:               issue.Text,
		Notes:              issue.Notes,
		Resolved:           issue.Resolved,
		CreatedAt:          issue.CreatedAt,
		ResolvedAt:         issue.ResolvedAt,
	}
}

func ToTrackedIssuesListResponse(issues []*entities.TrackedIssue) TrackedIssuesListResponse {
	resp := TrackedIssuesListResponse{Issues: make([]TrackedIssueResponse, len(issues))}
	for i, issue := range issues {
		resp.Issues[i] = ToTrackedIssueResponse(issue)
	}
	return resp
}
