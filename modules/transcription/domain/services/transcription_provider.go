package services

import (
	"context"
	"strings"
)

// TranscriptionProvider is the component B contract (§4.B): a single
// blocking call per audio chunk or file. format_hint is an extension-like
// string (in v1, always the webm container for live chunks) the provider
// uses to detect the audio container.
type TranscriptionProvider interface {
	Transcribe(ctx context.Context, audio []byte, formatHint string) (string, error)
}

// TranscriptionProviderFactory mints a session-scoped provider instance.
// The mock implementation uses this to reset its cycling counter at
// session start (§4.B "indexed by a session-local counter that resets on
// session start"); the real provider is stateless and returns itself.
type TranscriptionProviderFactory interface {
	NewSession() TranscriptionProvider
}

// IsSilent reports whether a transcription result should be treated as a
// silent chunk: no segment is allocated for it (§4.B, §8 boundary behavior).
func IsSilent(text string) bool {
	return strings.TrimSpace(text) == ""
}
