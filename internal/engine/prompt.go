package engine

import "tidy/internal/scan"

// Request carries the proposed classification for a file whose confidence
// fell below the threshold under the interactive policy.
type Request struct {
	File       scan.FileDescriptor
	Category   string
	Confidence float64
	Rationale  string
}

// DecisionKind is the operator's answer to a Request.
type DecisionKind int

const (
	// DecisionAccept takes the proposed category as-is.
	DecisionAccept DecisionKind = iota
	// DecisionReject sends the file to Unsorted instead.
	DecisionReject
	// DecisionSkip leaves the file untouched.
	DecisionSkip
	// DecisionCustom places the file in the category named in the decision.
	DecisionCustom
)

// Decision is the response to a Request. AllOfType extends a skip to every
// later file with the same extension for the rest of the run.
type Decision struct {
	Kind      DecisionKind
	Category  string
	AllOfType bool
}

// Prompter resolves uncertain classifications. Decide blocks until an
// answer is available; the pipeline processes one file at a time, so a
// pending prompt suspends the whole run.
type Prompter interface {
	Decide(req Request) (Decision, error)
}
