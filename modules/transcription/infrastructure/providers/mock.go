package providers

import (
	"context"
	"sync"

	"scribe/server/modules/transcription/domain/services"
)

// mockCycle is the fixed canned-segment list the mock provider cycles
// through (§4.B "a canned segment from a fixed cycling list").
var mockCycle = []string{
	"A",
	"B",
	"C",
	"Let's discuss the project timeline first.",
	"I agree, let's move forward with that approach.",
	"We should schedule a follow-up to cover the budget.",
}

// MockTranscriptionProvider returns the next entry in mockCycle on each
// call, indexed by a counter local to one instance. NewSession mints a
// fresh instance so the counter resets at session start, matching §4.B.
type MockTranscriptionProvider struct {
	mu    sync.Mutex
	index int
}

var _ services.TranscriptionProvider = (*MockTranscriptionProvider)(nil)
var _ services.TranscriptionProviderFactory = (*MockTranscriptionProvider)(nil)

func NewMockTranscriptionProvider() *MockTranscriptionProvider {
	return &MockTranscriptionProvider{}
}

func (p *MockTranscriptionProvider) NewSession() services.TranscriptionProvider {
	return NewMockTranscriptionProvider()
}

func (p *MockTranscriptionProvider) Transcribe(ctx context.Context, audio []byte, formatHint string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	text := mockCycle[p.index%len(mockCycle)]
	p.index++
	return text, nil
}
