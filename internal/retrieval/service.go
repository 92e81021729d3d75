package retrieval

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyhub-backend/internal/ai"
)

const (
	topK = 3

	// Index pointers expire with the study session; a stale pointer just
	// means the user re-processes their PDF.
	indexPointerTTL = 24 * time.Hour
)

// Embedder turns text into a vector. Satisfied by ai.GeminiService.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service builds per-document vector indexes and answers questions against
// them. The current index for each user is tracked by a Redis pointer so a
// follow-up question finds the document processed earlier in the session.
type Service struct {
	embedder Embedder
	gateway  ai.Gateway
	redis    *redis.Client
	indexDir string
}

func NewService(embedder Embedder, gateway ai.Gateway, redisClient *redis.Client, indexDir string) *Service {
	return &Service{
		embedder: embedder,
		gateway:  gateway,
		redis:    redisClient,
		indexDir: indexDir,
	}
}

// DocumentID derives a stable id from the document's leading bytes and the
// owning user, so re-uploading the same PDF reuses the same index file.
func DocumentID(data []byte, userID uuid.UUID) string {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	sum := md5.Sum(append(head, []byte(userID.String())...))
	return hex.EncodeToString(sum[:])
}

// Process chunks and embeds the document text, saves the index, and points
// the user's session at it. Returns the number of chunks indexed.
func (s *Service) Process(ctx context.Context, userID uuid.UUID, docID, text string) (int, error) {
	chunks := SplitText(text)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document produced no indexable text")
	}

	vectors := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunk: %w", err)
		}
		vectors = append(vectors, vec)
	}

	idx := &Index{DocID: docID, Chunks: chunks, Vectors: vectors}
	path, err := idx.Save(s.indexDir)
	if err != nil {
		return 0, err
	}

	if err := s.redis.Set(ctx, pointerKey(userID), path, indexPointerTTL).Err(); err != nil {
		return 0, fmt.Errorf("failed to store index pointer: %w", err)
	}

	return len(chunks), nil
}

// ErrNoIndex is returned by Ask when the user has not processed a document
// in the current session.
var ErrNoIndex = fmt.Errorf("no processed document found for this session")

// Ask answers a question using only the most relevant chunks of the user's
// current document.
func (s *Service) Ask(ctx context.Context, userID uuid.UUID, question string) (string, error) {
	path, err := s.redis.Get(ctx, pointerKey(userID)).Result()
	if err != nil {
		return "", ErrNoIndex
	}

	idx, err := LoadIndex(path)
	if err != nil {
		return "", fmt.Errorf("failed to load document index: %w", err)
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}

	chunks := idx.Search(queryVec, topK)
	prompt := buildAnswerPrompt(question, chunks)

	outcome := s.gateway.Complete(ctx, prompt, false)
	switch outcome.Kind {
	case ai.OutcomeText:
		return outcome.Text, nil
	case ai.OutcomeBlocked:
		return "", &ai.BlockedError{Reason: outcome.Reason}
	case ai.OutcomeEmpty:
		return "I couldn't find an answer to that in the document.", nil
	default:
		return "", &ai.TransportError{Detail: outcome.Detail}
	}
}

func buildAnswerPrompt(question string, chunks []string) string {
	var b strings.Builder

	b.WriteString("Answer the question using ONLY the provided document excerpts. If the answer is not contained in the excerpts, say that the document does not cover it. Do not use outside knowledge.\n\n")
	for i, chunk := range chunks {
		b.WriteString(fmt.Sprintf("Excerpt %d:\n%s\n\n", i+1, chunk))
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:")

	return b.String()
}

func pointerKey(userID uuid.UUID) string {
	return "pdfqa:index:" + userID.String()
}
