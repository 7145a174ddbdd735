package entities

import (
	"time"

	"scribe/server/seedwork/domain"
)

// Speaker is the constant speaker label for every segment in v1 —
// diarisation is out of scope (§3).
const Speaker = "Speaker"

// TranscriptSegment is one transcribed chunk of a live session, identified
// by (live_session_id, segment_index). Like LiveSession it is never
// deleted, so it carries its own plain fields rather than BaseEntity.
type TranscriptSegment struct {
	ID            string    `json:"id" gorm:"column:id;primaryKey;type:varchar(128)"`
	LiveSessionID string    `json:"session_id" gorm:"column:live_session_id;not null;index"`
	SegmentIndex  int       `json:"segment_index" gorm:"column:segment_index;not null"`
	Text          string    `json:"text" gorm:"column:text;not null"`
	TimestampMs   int64     `json:"timestamp_ms" gorm:"column:timestamp_ms;not null"`
	Speaker       string    `json:"speaker" gorm:"column:speaker;not null"`
	IsFinal       bool      `json:"is_final" gorm:"column:is_final;not null;default:true"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func NewTranscriptSegment(sessionID string, index int, text string, timestampMs int64) TranscriptSegment {
	return TranscriptSegment{
		ID:            domain.GenerateID(),
		LiveSessionID: sessionID,
		SegmentIndex:  index,
		Text:          text,
		TimestampMs:   timestampMs,
		Speaker:       Speaker,
		IsFinal:       true,
	}
}

func (TranscriptSegment) TableName() string { return "transcript_segments" }
