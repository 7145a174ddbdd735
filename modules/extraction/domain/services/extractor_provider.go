package services

import "context"

// ExtractorProvider is the component C contract (§4.C): a single message to
// an LLM with a fixed token budget, returning raw (possibly malformed) JSON
// text. The caller never trusts the output — it always runs through the
// tolerant decoder.
type ExtractorProvider interface {
	Extract(ctx context.Context, promptPrefix, transcript string) (string, error)
}
