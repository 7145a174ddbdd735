package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"scribe/server/blobstore"
	extractionservices "scribe/server/modules/extraction/application/services"
	keywordservices "scribe/server/modules/insight/domain/services"
	"scribe/server/modules/livesession/domain/entities"
	"scribe/server/modules/livesession/domain/repositories"
	"scribe/server/modules/livesession/infrastructure/streaming"
	meetingservices "scribe/server/modules/meeting/application/services"
	transcriptionservices "scribe/server/modules/transcription/domain/services"
	"scribe/server/seedwork/apperror"
	"scribe/server/seedwork/infrastructure/events"
)

// LiveSessionStopped is published once a session finalizes, whichever way it
// ends; MeetingID is nil for the zero-segment failed-finalize path.
type LiveSessionStopped struct {
	SessionID string
	UserID    string
	MeetingID *string
}

const (
	memoryHintWindow      = 24
	memoryHintOtherLimit  = 20
	memoryHintMaxSnippet  = 150
	memoryHintMaxResults  = 3
	memoryHintMinOverlap  = 2
)

// MemoryHint is one entry of the read-only memory-hints response (§4.H).
type MemoryHint struct {
	MeetingID     string   `json:"meeting_id"`
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	SharedTopics  []string `json:"shared_topics"`
	Snippet       string   `json:"snippet"`
}

// StopResult is what Stop hands back to the HTTP layer (§6).
type StopResult struct {
	MeetingID *string
	Title     string
	Message   string
}

// LiveSessionService is the component H state machine: single-active-session
// guard, chunk ingestion, live push fan-out, and stop-time finalization.
// It composes B (transcription), C (best-effort extraction at stop), and A
// (through the repository) exactly as §2's control-flow diagram shows.
type LiveSessionService struct {
	repo                 repositories.LiveSessionRepository
	hub                  *streaming.Hub
	transcriptionFactory transcriptionservices.TranscriptionProviderFactory
	extractionService    *extractionservices.ExtractionService
	meetingService       *meetingservices.MeetingService
	archive              blobstore.Archive
	eventBus             events.EventBus

	mu        sync.Mutex
	providers map[string]transcriptionservices.TranscriptionProvider
	rawAudio  map[string][][]byte
}

func NewLiveSessionService(
	repo repositories.LiveSessionRepository,
	hub *streaming.Hub,
	transcriptionFactory transcriptionservices.TranscriptionProviderFactory,
	extractionService *extractionservices.ExtractionService,
	meetingService *meetingservices.MeetingService,
	archive blobstore.Archive,
	eventBus events.EventBus,
) *LiveSessionService {
	return &LiveSessionService{
		repo:                 repo,
		hub:                  hub,
		transcriptionFactory: transcriptionFactory,
		extractionService:    extractionService,
		meetingService:       meetingService,
		archive:              archive,
		eventBus:             eventBus,
		providers:            make(map[string]transcriptionservices.TranscriptionProvider),
		rawAudio:             make(map[string][][]byte),
	}
}

// Start enforces both start-time guards in the order the state diagram
// shows (§4.H): no active session for the owner, then the meeting-storage
// quota, before any row is created.
func (s *LiveSessionService) Start(ctx context.Context, userID, plan, title, participants string) (*entities.LiveSession, error) {
	if existing, err := s.repo.FindActiveByUser(ctx, userID); err == nil && existing != nil {
		return existing, apperror.Conflict("session_active", "a session is already active", map[string]interface{}{
			"session_id": existing.ID,
		})
	}
	if err := s.meetingService.CheckQuota(ctx, userID, plan); err != nil {
		return nil, err
	}

	session, err := s.repo.CreateActive(ctx, userID, title, participants)
	if err == repositories.ErrAlreadyActive {
		return session, apperror.Conflict("session_active", "a session is already active", map[string]interface{}{
			"session_id": session.ID,
		})
	}
	if err != nil {
		return nil, apperror.Storage("failed to start session", err)
	}

	s.mu.Lock()
	s.providers[session.ID] = s.transcriptionFactory.NewSession()
	s.mu.Unlock()

	return session, nil
}

// Chunk implements the five-step processing sequence (§4.H).
func (s *LiveSessionService) Chunk(ctx context.Context, sessionID, userID string, audio []byte, timestampMs int64) (segmentIndex *int, silent bool, err error) {
	session, err := s.repo.FindByIDOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, false, apperror.NotFound("session not found")
	}
	if !session.IsActive() {
		return nil, false, apperror.Validation("not_active", "session is not active")
	}

	provider := s.providerFor(session.ID)
	text, err := provider.Transcribe(ctx, audio, "webm")
	if err != nil {
		return nil, false, apperror.Upstream("transcription failed", err)
	}
	if transcriptionservices.IsSilent(text) {
		return nil, true, nil
	}

	segment, err := s.repo.AppendSegment(ctx, sessionID, text, timestampMs)
	if err != nil {
		return nil, false, apperror.Storage("failed to persist segment", err)
	}

	s.mu.Lock()
	s.rawAudio[sessionID] = append(s.rawAudio[sessionID], audio)
	s.mu.Unlock()

	s.publishSegment(sessionID, segment)

	index := segment.SegmentIndex
	return &index, false, nil
}

// Stop concatenates every segment's text, runs best-effort extraction, and
// persists the meeting. Extraction failure is swallowed into an empty
// record (§7 propagation policy) — the transcript is still saved.
func (s *LiveSessionService) Stop(ctx context.Context, sessionID, userID string) (*StopResult, error) {
	session, err := s.repo.FindByIDOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, apperror.NotFound("session not found")
	}
	if !session.IsActive() {
		return nil, apperror.Validation("not_active", "session is not active")
	}

	segments, err := s.repo.ListSegmentsOrdered(ctx, sessionID)
	if err != nil {
		return nil, apperror.Storage("failed to load segments", err)
	}

	s.hub.Publish(sessionID, streaming.Event{Name: "stopped", Data: []byte(`{}`)})
	s.hub.Close(sessionID)
	s.mu.Lock()
	delete(s.providers, sessionID)
	chunks := s.rawAudio[sessionID]
	delete(s.rawAudio, sessionID)
	s.mu.Unlock()

	if len(segments) == 0 {
		if err := s.repo.Finalize(ctx, sessionID, entities.StatusFailed, nil); err != nil {
			return nil, apperror.Storage("failed to finalize session", err)
		}
		s.publishStopped(sessionID, userID, nil)
		return &StopResult{MeetingID: nil, Title: session.Title, Message: "No transcript was captured."}, nil
	}

	transcript := concatenateSegments(segments)
	record := s.extractionService.ExtractBestEffort(ctx, transcript)

	meeting, err := s.meetingService.CreateMeeting(ctx, userID, session.Title, transcript, *record)
	if err != nil {
		return nil, apperror.Storage("failed to persist meeting", err)
	}

	meetingID := meeting.GetID()
	if err := s.repo.Finalize(ctx, sessionID, entities.StatusCompleted, &meetingID); err != nil {
		return nil, apperror.Storage("failed to finalize session", err)
	}

	s.archiveAudio(meetingID, sessionID, chunks)
	s.publishStopped(sessionID, userID, &meetingID)

	return &StopResult{MeetingID: &meetingID, Title: session.Title}, nil
}

func (s *LiveSessionService) publishStopped(sessionID, userID string, meetingID *string) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish("live_session.stopped", &LiveSessionStopped{
		SessionID: sessionID,
		UserID:    userID,
		MeetingID: meetingID,
	})
}

// archiveAudio uploads the session's concatenated raw audio chunks in the
// background; archival is best-effort and never affects the stop response.
func (s *LiveSessionService) archiveAudio(meetingID, sessionID string, chunks [][]byte) {
	if len(chunks) == 0 {
		return
	}
	var audio []byte
	for _, c := range chunks {
		audio = append(audio, c...)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.archive.Upload(ctx, meetingID, sessionID, audio, "audio/webm"); err != nil {
			log.Printf("live session: audio archival failed for meeting %s: %v", meetingID, err)
		}
	}()
}

func (s *LiveSessionService) Status(ctx context.Context, sessionID, userID string) (*entities.LiveSession, int64, error) {
	session, err := s.repo.FindByIDOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, 0, apperror.NotFound("session not found")
	}
	count, err := s.repo.CountSegments(ctx, sessionID)
	if err != nil {
		return nil, 0, apperror.Storage("failed to count segments", err)
	}
	return session, count, nil
}

// Subscription bundles what the stream handler needs to replay persisted
// segments and then follow the live feed (§4.H "Live push channel").
type Subscription struct {
	Session     *entities.LiveSession
	Segments    []*entities.TranscriptSegment
	Events      <-chan streaming.Event
	TornDown    <-chan struct{}
	Unsubscribe func()
}

// Subscribe verifies ownership and active status, then registers the
// caller as the session's sole subscriber (tearing down any prior one).
func (s *LiveSessionService) Subscribe(ctx context.Context, sessionID, userID string) (*Subscription, error) {
	session, err := s.repo.FindByIDOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, apperror.NotFound("session not found")
	}
	if !session.IsActive() {
		return nil, apperror.Validation("not_active", "session is not active")
	}

	segments, err := s.repo.ListSegmentsOrdered(ctx, sessionID)
	if err != nil {
		return nil, apperror.Storage("failed to load segments", err)
	}

	events, tornDown, unsubscribe := s.hub.Subscribe(sessionID)
	return &Subscription{
		Session:     session,
		Segments:    segments,
		Events:      events,
		TornDown:    tornDown,
		Unsubscribe: unsubscribe,
	}, nil
}

// MemoryHints is read-only: it never changes session state (§4.H).
func (s *LiveSessionService) MemoryHints(ctx context.Context, sessionID, userID string) ([]MemoryHint, error) {
	session, err := s.repo.FindByIDOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, apperror.NotFound("session not found")
	}

	segments, err := s.repo.ListSegmentsOrdered(ctx, sessionID)
	if err != nil {
		return nil, apperror.Storage("failed to load segments", err)
	}
	if len(segments) > memoryHintWindow {
		segments = segments[len(segments)-memoryHintWindow:]
	}
	liveContext := concatenateSegments(segments)
	liveKeywords := keywordservices.KeywordSet(liveContext)

	others, err := s.meetingService.ListRecentOtherOwned(ctx, session.UserID, "", memoryHintOtherLimit)
	if err != nil {
		return nil, apperror.Storage("failed to load prior meetings", err)
	}

	var hints []MemoryHint
	for _, m := range others {
		otherKeywords := keywordservices.KeywordSet(m.RawNotes)
		shared := sharedTokens(liveKeywords, otherKeywords)
		if len(shared) < memoryHintMinOverlap {
			continue
		}
		snippet := firstSentenceContaining(m.RawNotes, shared)
		if snippet == "" {
			continue
		}
		hints = append(hints, MemoryHint{
			MeetingID:    m.GetID(),
			Title:        m.Title,
			Date:         m.GetCreatedAt().Format("2006-01-02"),
			SharedTopics: shared,
			Snippet:      snippet,
		})
		if len(hints) >= memoryHintMaxResults {
			break
		}
	}
	return hints, nil
}

func (s *LiveSessionService) providerFor(sessionID string) transcriptionservices.TranscriptionProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	provider, ok := s.providers[sessionID]
	if !ok {
		// Process restarted mid-session: mint a fresh provider rather than
		// fail the chunk. Orphaned sessions are tolerated, not reaped (§5).
		provider = s.transcriptionFactory.NewSession()
		s.providers[sessionID] = provider
	}
	return provider
}

func (s *LiveSessionService) publishSegment(sessionID string, segment *entities.TranscriptSegment) {
	payload, err := json.Marshal(map[string]interface{}{
		"segment_index": segment.SegmentIndex,
		"text":          segment.Text,
		"timestamp_ms":  segment.TimestampMs,
		"speaker":       segment.Speaker,
		"is_final":      segment.IsFinal,
	})
	if err != nil {
		return
	}
	s.hub.Publish(sessionID, streaming.Event{Name: "segment", Data: payload})
}

func concatenateSegments(segments []*entities.TranscriptSegment) string {
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, "\n\n")
}

func sharedTokens(a, b map[string]bool) []string {
	var shared []string
	for tok := range a {
		if b[tok] {
			shared = append(shared, tok)
		}
	}
	return shared
}

// firstSentenceContaining returns the first sentence of text containing any
// of the given tokens, truncated to 150 chars with an ellipsis if longer.
func firstSentenceContaining(text string, tokens []string) string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	for _, sentence := range sentences {
		loweredSentence := strings.ToLower(sentence)
		for _, tok := range tokens {
			if strings.Contains(loweredSentence, tok) {
				return truncate(strings.TrimSpace(sentence), memoryHintMaxSnippet)
			}
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
