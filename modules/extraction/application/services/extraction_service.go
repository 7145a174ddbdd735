package services

import (
	"context"

	meetingentities "scribe/server/modules/meeting/domain/entities"
	extractordomain "scribe/server/modules/extraction/domain/services"
	usageservices "scribe/server/modules/usage/application/services"
	"scribe/server/seedwork/apperror"
)

// promptPrefix is the constant instruction string sent as the system
// message (§4.C): it specifies the required JSON schema, pins default
// values for missing fields, and tells the model not to emit markdown
// fences. The caller never assumes the model obeyed — D is always applied.
const promptPrefix = `You are extracting structured data from a meeting transcript.
Respond with a single JSON object and nothing else — no markdown code fences, no prose before or after.
Schema:
{
  "action_items": [{"task": string, "owner": string, "deadline": string}],
  "follow_up_email": string,
  "summary": string,
  "open_questions": [string],
  "proposed_solutions": [string]
}
If a field has no content, use an empty string or empty array — never omit a key, never use null.`

// ExtractionService orchestrates component C (the LLM call) and component D
// (the tolerant decoder) behind the usage gate (component E).
type ExtractionService struct {
	provider  extractordomain.ExtractorProvider
	usageGate *usageservices.UsageGate
}

func NewExtractionService(provider extractordomain.ExtractorProvider, usageGate *usageservices.UsageGate) *ExtractionService {
	return &ExtractionService{provider: provider, usageGate: usageGate}
}

// Extract is the gated path used by POST /meetings/extract (§6, §8
// scenario 4): checks the usage cap first, never counts a failed
// extraction, and only consumes the quota once decoding succeeds.
func (s *ExtractionService) Extract(ctx context.Context, userID, plan, transcript string) (*meetingentities.ExtractionRecord, error) {
	if err := s.usageGate.Enforce(ctx, userID, plan); err != nil {
		return nil, err
	}

	record, err := s.run(ctx, transcript)
	if err != nil {
		return nil, err
	}

	if err := s.usageGate.Consume(ctx, userID); err != nil {
		return nil, err
	}
	return record, nil
}

// ExtractBestEffort is the ungated path used by live-session stop (§4.H):
// the live path never routes through the usage gate, and §7's propagation
// policy swallows any extractor or decode failure into an empty record
// rather than failing the stop.
func (s *ExtractionService) ExtractBestEffort(ctx context.Context, transcript string) *meetingentities.ExtractionRecord {
	record, err := s.run(ctx, transcript)
	if err != nil {
		empty := meetingentities.EmptyExtractionRecord()
		return &empty
	}
	return record
}

func (s *ExtractionService) run(ctx context.Context, transcript string) (*meetingentities.ExtractionRecord, error) {
	raw, err := s.provider.Extract(ctx, promptPrefix, transcript)
	if err != nil {
		return nil, apperror.Upstream("extraction provider failed", err)
	}

	var record meetingentities.ExtractionRecord
	if err := extractordomain.DecodeTolerantJSON(raw, &record); err != nil {
		return nil, apperror.Decode("failed to parse AI response", err)
	}
	if record.ActionItems == nil {
		record.ActionItems = []meetingentities.ActionItem{}
	}
	return &record, nil
}
