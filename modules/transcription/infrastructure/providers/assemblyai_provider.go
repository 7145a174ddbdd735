package providers

import (
	"bytes"
	"context"
	"fmt"

	assemblyai "github.com/therealchrisrock/assemblyai-go"

	"scribe/server/modules/transcription/domain/services"
)

// AssemblyAIProvider implements the real TranscriptionProvider (§4.B):
// upload the blob, submit a transcript, wait for completion, return the
// text. format_hint isn't forwarded — AssemblyAI sniffs the container from
// the uploaded bytes — but the method still accepts it to satisfy the
// contract all providers share.
type AssemblyAIProvider struct {
	client *assemblyai.Client
}

var _ services.TranscriptionProvider = (*AssemblyAIProvider)(nil)
var _ services.TranscriptionProviderFactory = (*AssemblyAIProvider)(nil)

func NewAssemblyAIProvider(apiKey string) *AssemblyAIProvider {
	return &AssemblyAIProvider{client: assemblyai.NewClient(apiKey)}
}

// NewSession returns the same stateless provider; only the mock needs a
// fresh per-session instance.
func (p *AssemblyAIProvider) NewSession() services.TranscriptionProvider {
	return p
}

func (p *AssemblyAIProvider) Transcribe(ctx context.Context, audio []byte, formatHint string) (string, error) {
	request := assemblyai.NewTranscriptRequest("").WithPunctuation(true).WithFormatText(true)

	transcript, err := p.client.TranscribeFromReader(ctx, bytes.NewReader(audio), request)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Text == nil {
		return "", nil
	}
	return *transcript.Text, nil
}
