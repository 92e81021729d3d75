package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiService is the production Gateway. It holds two handles on the same
// model: a plain one for free-text tasks and one configured to emit raw JSON
// for structured tasks.
type GeminiService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
	embedder  *genai.EmbeddingModel
	rateChan  chan struct{} // Token bucket
}

func NewGeminiService(apiKey string, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.3)
	model.SetTopP(0.95)

	jsonModel := client.GenerativeModel("gemini-1.5-flash")
	jsonModel.SetTemperature(0.3)
	jsonModel.SetTopP(0.95)
	jsonModel.ResponseMIMEType = "application/json"

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:    client,
		model:     model,
		jsonModel: jsonModel,
		embedder:  client.EmbeddingModel("embedding-001"),
		rateChan:  rateChan,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Complete sends one prompt and folds the backend's answer into an Outcome.
func (s *GeminiService) Complete(ctx context.Context, prompt string, structured bool) Outcome {
	if err := s.acquireRate(ctx); err != nil {
		return TransportOutcome(err.Error())
	}
	defer s.releaseRate()

	model := s.model
	if structured {
		model = s.jsonModel
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return TransportOutcome(err.Error())
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return BlockedOutcome(resp.PromptFeedback.BlockReason.String())
	}
	for _, cand := range resp.Candidates {
		if cand.FinishReason == genai.FinishReasonSafety {
			return BlockedOutcome(cand.FinishReason.String())
		}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return EmptyOutcome()
	}
	return TextOutcome(text)
}

// Embed returns the embedding vector for a single piece of text. Used by the
// document question-answering index.
func (s *GeminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer s.releaseRate()

	resp, err := s.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding response was empty")
	}
	return resp.Embedding.Values, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
