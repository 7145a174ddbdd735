package entities

import (
	"encoding/json"

	"scribe/server/seedwork/domain"
)

// ActionItem is one task entry inside an extraction record (§3).
type ActionItem struct {
	Task     string `json:"task"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"`
}

// ExtractionRecord is the schema stored inside a meeting's action_items
// column. All non-required fields default to empty on read.
type ExtractionRecord struct {
	ActionItems        []ActionItem `json:"action_items"`
	FollowUpEmail      string       `json:"follow_up_email"`
	Summary            string       `json:"summary,omitempty"`
	OpenQuestions      []string     `json:"open_questions,omitempty"`
	ProposedSolutions  []string     `json:"proposed_solutions,omitempty"`
}

// EmptyExtractionRecord is the record used when extraction or parsing fails;
// the meeting is still saved with its transcript (§7 propagation policy).
func EmptyExtractionRecord() ExtractionRecord {
	return ExtractionRecord{ActionItems: []ActionItem{}}
}

// Meeting represents a meeting entity in the domain. action_items is the
// authoritative JSON blob: written as a unit, parsed on read.
type Meeting struct {
	domain.BaseEntity
	UserID         string `json:"user_id" gorm:"column:user_id;not null;index"`
	Title          string `json:"title" gorm:"column:title"`
	RawNotes       string `json:"raw_notes" gorm:"column:raw_notes"`
	ActionItemsRaw string `json:"-" gorm:"column:action_items"`
}

// NewMeeting creates a new Meeting entity owned by userID.
func NewMeeting(userID, title, rawNotes string, extraction ExtractionRecord) Meeting {
	meeting := Meeting{
		UserID:   userID,
		Title:    title,
		RawNotes: rawNotes,
	}
	meeting.SetID(domain.GenerateID())
	meeting.SetExtraction(extraction)
	return meeting
}

// Extraction parses the stored JSON blob. A malformed or empty blob yields
// an empty record rather than an error, matching "all non-required fields
// default to empty on read".
func (m *Meeting) Extraction() ExtractionRecord {
	if m.ActionItemsRaw == "" {
		return EmptyExtractionRecord()
	}
	var record ExtractionRecord
	if err := json.Unmarshal([]byte(m.ActionItemsRaw), &record); err != nil {
		return EmptyExtractionRecord()
	}
	if record.ActionItems == nil {
		record.ActionItems = []ActionItem{}
	}
	return record
}

// SetExtraction serializes and stores the extraction record as the unit of
// truth for action_items.
func (m *Meeting) SetExtraction(record ExtractionRecord) {
	if record.ActionItems == nil {
		record.ActionItems = []ActionItem{}
	}
	raw, err := json.Marshal(record)
	if err != nil {
		raw = []byte(`{"action_items":[],"follow_up_email":""}`)
	}
	m.ActionItemsRaw = string(raw)
}

// OwnedBy reports whether userID is the meeting's owner.
func (m *Meeting) OwnedBy(userID string) bool {
	return m.UserID == userID
}

// CreatedAtUnixMillis is used by insight computations that need a plain
// comparable timestamp.
func (m *Meeting) CreatedAtUnixMillis() int64 {
	return m.GetCreatedAt().UnixMilli()
}

// TableName sets the table name for GORM.
func (Meeting) TableName() string {
	return "meetings"
}
