package retrieval

import "strings"

const (
	// ChunkSize and ChunkOverlap control how document text is split before
	// embedding. Overlap keeps context that straddles a boundary retrievable.
	ChunkSize    = 10000
	ChunkOverlap = 1000
)

var separators = []string{"\n\n", "\n", " ", ""}

// SplitText splits text into overlapping chunks, preferring to break on
// paragraph boundaries, then lines, then words, then raw characters.
func SplitText(text string) []string {
	return split(text, ChunkSize, ChunkOverlap)
}

func split(text string, size, overlap int) []string {
	if len(text) <= size {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	sep := pickSeparator(text, size)
	parts := splitOn(text, sep)

	chunks := make([]string, 0)
	var current strings.Builder
	for _, part := range parts {
		if len(part) > size {
			// A single piece too large for one chunk gets split recursively
			// with the next finer separator.
			if current.Len() > 0 {
				chunks = appendChunk(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, split(part, size, overlap)...)
			continue
		}
		if current.Len()+len(part) > size && current.Len() > 0 {
			chunk := current.String()
			chunks = appendChunk(chunks, chunk)
			current.Reset()
			current.WriteString(tail(chunk, overlap))
		}
		current.WriteString(part)
	}
	if current.Len() > 0 {
		chunks = appendChunk(chunks, current.String())
	}

	return chunks
}

func pickSeparator(text string, size int) string {
	for _, sep := range separators {
		if sep == "" {
			return ""
		}
		if strings.Contains(text, sep) {
			return sep
		}
	}
	return ""
}

// splitOn splits while keeping the separator attached to the preceding part,
// so rejoining chunks reproduces the source text.
func splitOn(text, sep string) []string {
	if sep == "" {
		parts := make([]string, 0, len(text))
		for _, r := range text {
			parts = append(parts, string(r))
		}
		return parts
	}
	raw := strings.SplitAfter(text, sep)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func appendChunk(chunks []string, chunk string) []string {
	if strings.TrimSpace(chunk) == "" {
		return chunks
	}
	return append(chunks, chunk)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
