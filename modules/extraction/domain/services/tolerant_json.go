package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// fencePattern strips a triple-backtick code fence with an optional "json"
// language tag, anywhere it appears in the text (§4.D step 1).
var fencePattern = regexp.MustCompile("```(?:json)?")

// trailingCommaPattern matches a comma followed only by whitespace before a
// closing `}` or `]` (§4.D step 4).
var trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)

// DecodeTolerantJSON implements the component D algorithm (§4.D): untrusted
// LLM output, possibly fenced, surrounded by prose, or comma-malformed, is
// parsed defensively rather than with a single strict Unmarshal. target is
// populated exactly like json.Unmarshal's second argument.
func DecodeTolerantJSON(raw string, target interface{}) error {
	// Step 1: trim, strip fences.
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))

	// Step 2: attempt a direct strict parse.
	if err := json.Unmarshal([]byte(cleaned), target); err == nil {
		return nil
	}

	// Step 3: locate the first '{' and the last '}'.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("tolerant json decode: no balanced object found in response")
	}
	candidate := cleaned[start : end+1]

	// Step 4: strip trailing commas immediately before '}' or ']'.
	candidate = trailingCommaPattern.ReplaceAllString(candidate, "$1")

	// Step 5: strict parse of the cleaned candidate; propagate failure.
	if err := json.Unmarshal([]byte(candidate), target); err != nil {
		return fmt.Errorf("tolerant json decode: %w", err)
	}
	return nil
}
