package ai

import (
	"context"
	"log"
)

// Pipeline runs the shared four-stage generation flow: build the prompt, call
// the gateway, validate the outcome. All ten tasks go through the same path
// and differ only in their Task parameters.
type Pipeline struct {
	gateway Gateway
}

func NewPipeline(gateway Gateway) *Pipeline {
	return &Pipeline{gateway: gateway}
}

// Run executes a task end-to-end and returns its validated payload. The
// returned error, when non-nil, is one of the typed errors in this package.
func (p *Pipeline) Run(ctx context.Context, task Task) (interface{}, error) {
	prompt := BuildPrompt(task)
	outcome := p.gateway.Complete(ctx, prompt, task.Structured())

	result, err := Validate(outcome, task)
	if err != nil {
		if schemaErr, ok := err.(*SchemaError); ok {
			log.Printf("schema validation failed for task %s: %s; raw response: %q", task.Kind, schemaErr.Message, schemaErr.Raw)
		}
		return nil, err
	}
	return result, nil
}
