package ai

import "context"

// OutcomeKind tags the result of a completion call.
type OutcomeKind int

const (
	// OutcomeText is a successful generation with non-blank content.
	OutcomeText OutcomeKind = iota
	// OutcomeBlocked means the backend refused generation for policy reasons.
	OutcomeBlocked
	// OutcomeEmpty means generation succeeded but produced no usable text.
	OutcomeEmpty
	// OutcomeTransportError covers network/auth/quota failures.
	OutcomeTransportError
)

// Outcome is the gateway's verdict on one completion call. Exactly one of
// Text, Reason or Detail is meaningful, selected by Kind.
type Outcome struct {
	Kind   OutcomeKind
	Text   string // OutcomeText
	Reason string // OutcomeBlocked
	Detail string // OutcomeTransportError
}

func TextOutcome(s string) Outcome      { return Outcome{Kind: OutcomeText, Text: s} }
func BlockedOutcome(r string) Outcome   { return Outcome{Kind: OutcomeBlocked, Reason: r} }
func EmptyOutcome() Outcome             { return Outcome{Kind: OutcomeEmpty} }
func TransportOutcome(d string) Outcome { return Outcome{Kind: OutcomeTransportError, Detail: d} }

// Gateway is the AI backend contract. When structured is true the
// implementation should bias the backend toward emitting raw JSON, but
// callers must not trust that bias: the validator checks structure
// regardless.
type Gateway interface {
	Complete(ctx context.Context, prompt string, structured bool) Outcome
}
