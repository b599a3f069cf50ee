package domain

// Source identifies which definition service affirmed a word.
type Source string

const (
	// SourcePrimary is the primary definition API.
	SourcePrimary Source = "primary"

	// SourceFallback is the Wiktionary-style fallback API.
	SourceFallback Source = "fallback"
)

// Verdict is the outcome of validating one word. A verdict is produced
// once per word and never revised within a run.
type Verdict struct {
	// Valid reports whether some tier affirmed the word.
	Valid bool

	// Source is set only when Valid is true.
	Source Source

	// Reason describes why the word was rejected ("length", "no match").
	// Empty when Valid is true.
	Reason string
}

// TierResult is the explicit outcome of consulting one definition tier.
// A failed tier is a value, not an error: "tier failed, try next tier"
// is an ordinary branch in the validator.
type TierResult struct {
	OK     bool
	Reason string
}
