package dtos

import (
	insightentities "scribe/server/modules/insight/domain/entities"
)

// InsightsResponse is the payload for GET /meetings/{id}/insights (§6).
type InsightsResponse struct {
	MeetingID string                  `json:"meeting_id"`
	Insights  []insightentities.Card  `json:"insights"`
	Message   string                  `json:"message,omitempty"`
}

func ToInsightsResponse(meetingID string, cards []insightentities.Card) InsightsResponse {
	resp := InsightsResponse{MeetingID: meetingID, Insights: cards}
	if len(cards) == 0 {
		resp.Message = "No insights yet — this looks like your first meeting on this topic."
	}
	return resp
}
