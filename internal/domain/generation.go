package domain

import "strings"

// GenerationState tracks the AI content generation lifecycle for a section.
// The state is persisted as an enum rather than a boolean latch so callers can
// distinguish a retryable failure from a completed run.
type GenerationState string

const (
	// GenerationPending means no generation attempt has completed yet.
	GenerationPending GenerationState = "pending"
	// GenerationGenerated is terminal; repeat generation requests are no-ops.
	GenerationGenerated GenerationState = "generated"
	// GenerationFailed records a provider failure. Failed sections stay retryable.
	GenerationFailed GenerationState = "failed"
)

// Terminal reports whether the state permits further generation attempts.
func (s GenerationState) Terminal() bool {
	return s == GenerationGenerated
}

// NormalizeGenerationState coerces arbitrary state strings into a known representation.
func NormalizeGenerationState(input string) GenerationState {
	state := GenerationState(strings.ToLower(strings.TrimSpace(input)))
	switch state {
	case GenerationGenerated, GenerationFailed:
		return state
	default:
		return GenerationPending
	}
}
