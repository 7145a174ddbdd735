package entities

// CardKind identifies which of the six typed insight-card variants a card
// is (Glossary: "six typed variants").
type CardKind string

const (
	KindRecurringTopics      CardKind = "recurring_topics"
	KindUnresolvedItems      CardKind = "unresolved_items"
	KindFollowUpSignals      CardKind = "follow_up_signals"
	KindRecurringParticipants CardKind = "recurring_participants"
	KindNewTopics            CardKind = "new_topics"
	KindRecurringSolutions   CardKind = "recurring_solutions"
)

// PriorMeetingRef is a lightweight reference to a prior meeting surfaced by
// a card, without pulling in the full meeting entity.
type PriorMeetingRef struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
}

// Card is one insight card (§4.G). Fields unused by a given Kind are left
// zero-valued; the JSON response omits them via omitempty.
type Card struct {
	Kind              CardKind          `json:"kind"`
	SharedTokens      []string          `json:"shared_tokens,omitempty"`
	Meetings          []PriorMeetingRef `json:"meetings,omitempty"`
	Tasks             []string          `json:"tasks,omitempty"`
	SourceMeetingID   string            `json:"source_meeting_id,omitempty"`
	Phrases           []string          `json:"phrases,omitempty"`
	Participants      []ParticipantCount `json:"participants,omitempty"`
	NewTokens         []string          `json:"new_topics,omitempty"`
	Solutions         []string          `json:"solutions,omitempty"`
}

// ParticipantCount is one entry of the recurring_participants card.
type ParticipantCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WhatChanged is the pairwise diff against the single most recent prior
// meeting (§4.G "What-changed diff").
type WhatChanged struct {
	HasPrior           bool     `json:"has_prior"`
	PriorMeetingID     string   `json:"prior_meeting_id,omitempty"`
	NewActionItems     []string `json:"new_action_items,omitempty"`
	ResolvedSinceLast  []string `json:"resolved_since_last,omitempty"`
	NewSolutions       []string `json:"new_solutions,omitempty"`
	DroppedSolutions   []string `json:"dropped_solutions,omitempty"`
	NewOpenQuestions   []string `json:"new_open_questions,omitempty"`
	DroppedOpenQuestions []string `json:"dropped_open_questions,omitempty"`
	NewTopics          []string `json:"new_topics,omitempty"`
	DroppedTopics      []string `json:"dropped_topics,omitempty"`
}
