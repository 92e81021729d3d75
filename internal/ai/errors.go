package ai

import "fmt"

// InputError means the request itself was unusable: missing fields, missing
// or mistyped uploads, or a content type the extractor does not handle.
type InputError struct {
	Message string
	// UnsupportedType marks the one input failure that maps to HTTP 415
	// instead of 400.
	UnsupportedType bool
}

func (e *InputError) Error() string { return e.Message }

// BlockedError means the AI backend refused generation for policy reasons.
// The reason is echoed to the caller.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("Content blocked due to: %s. Try different content.", e.Reason)
}

// EmptyError means a structured task got no usable text back. Free-text
// tasks never produce this; they fall back to an apologetic reply instead.
type EmptyError struct{}

func (e *EmptyError) Error() string { return "The AI returned an empty response." }

// TransportError covers network, auth and quota failures reaching the backend.
type TransportError struct {
	Detail string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("AI backend request failed: %s", e.Detail)
}

// SchemaError means the AI returned well-formed text that does not conform to
// the task's declared schema. Raw keeps the offending response for logging.
type SchemaError struct {
	Message string
	Raw     string
}

func (e *SchemaError) Error() string { return e.Message }

// RelevanceError is the quiz task's off-topic refusal: the model followed its
// contract and returned the one-key error object instead of questions.
type RelevanceError struct {
	Message string
}

func (e *RelevanceError) Error() string { return e.Message }
