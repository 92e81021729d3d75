package retrieval

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

// Index is a flat vector index over the chunks of one document. Small enough
// to serialize as a JSON file and reload per question.
type Index struct {
	DocID   string      `json:"doc_id"`
	Chunks  []string    `json:"chunks"`
	Vectors [][]float32 `json:"vectors"`
}

// Save writes the index under dir as <doc_id>.json.
func (idx *Index) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create index directory: %w", err)
	}

	path := filepath.Join(dir, idx.DocID+".json")
	data, err := json.Marshal(idx)
	if err != nil {
		return "", fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write index file: %w", err)
	}
	return path, nil
}

// LoadIndex reads an index file previously written by Save.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}
	idx := &Index{}
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}
	if len(idx.Chunks) != len(idx.Vectors) {
		return nil, fmt.Errorf("index file is corrupt: %d chunks vs %d vectors", len(idx.Chunks), len(idx.Vectors))
	}
	return idx, nil
}

// Search returns the k chunks most similar to the query vector, best first.
func (idx *Index) Search(query []float32, k int) []string {
	type scored struct {
		chunk string
		score float64
	}

	results := make([]scored, 0, len(idx.Chunks))
	for i, vec := range idx.Vectors {
		results = append(results, scored{chunk: idx.Chunks[i], score: cosineSimilarity(query, vec)})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	if k > len(results) {
		k = len(results)
	}
	top := make([]string, 0, k)
	for _, r := range results[:k] {
		top = append(top, r.chunk)
	}
	return top
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
