package chunker

import (
	"strings"

	"github.com/google/uuid"
)

// Config controls chunking behavior.
type Config struct {
	MaxWords     int // Target chunk size in words.
	OverlapWords int // Words shared between consecutive chunks.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxWords:     200,
		OverlapWords: 30,
	}
}

// Chunk is a contiguous span of sentences from the source text. Sentence
// indices are inclusive; adjacent chunks may overlap.
type Chunk struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	StartSentence int    `json:"start_sentence"`
	EndSentence   int    `json:"end_sentence"`
	WordCount     int    `json:"word_count"`
}

// Split breaks text into an ordered sequence of sentence chunks bounded by
// Config.MaxWords, with consecutive chunks sharing roughly
// Config.OverlapWords words. The start index of each chunk strictly
// increases, so the walk always terminates, and every sentence appears in at
// least one chunk. Empty or whitespace-only input yields no chunks.
//
// Split is stateless: the same input produces the same chunks except for the
// freshly generated IDs.
func Split(text string, cfg Config) []Chunk {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = DefaultConfig().MaxWords
	}
	if cfg.OverlapWords < 0 {
		cfg.OverlapWords = 0
	}
	// A full-size overlap would stall the cursor.
	if cfg.OverlapWords >= cfg.MaxWords {
		cfg.OverlapWords = cfg.MaxWords - 1
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	wordCounts := make([]int, len(sentences))
	for i, s := range sentences {
		wordCounts[i] = len(strings.Fields(s))
	}

	var chunks []Chunk
	start := 0
	for start < len(sentences) {
		// Greedily take sentences while the running total stays within
		// MaxWords. A single oversized sentence still forms its own chunk.
		end := start
		total := wordCounts[start]
		for end+1 < len(sentences) && total+wordCounts[end+1] <= cfg.MaxWords {
			end++
			total += wordCounts[end]
		}

		joined := strings.Join(sentences[start:end+1], " ")
		chunks = append(chunks, Chunk{
			ID:            uuid.NewString(),
			Text:          joined,
			StartSentence: start,
			EndSentence:   end,
			WordCount:     len(strings.Fields(joined)),
		})

		if end == len(sentences)-1 {
			break
		}
		start = nextStart(wordCounts, start, end, cfg.OverlapWords)
	}

	return chunks
}

// nextStart walks backward from the last included sentence, accumulating
// word counts until the overlap target is met or only the chunk's first
// sentence remains. The result is always in [start+1, end+1], which is what
// guarantees forward progress.
func nextStart(wordCounts []int, start, end, overlap int) int {
	if overlap <= 0 {
		return end + 1
	}
	accumulated := 0
	i := end
	for i > start && accumulated < overlap {
		accumulated += wordCounts[i]
		i--
	}
	return i + 1
}

// SplitSentences splits text on '.', '!' or '?' followed by whitespace.
// Terminators stay attached to their sentence; leading and trailing
// whitespace is trimmed and empty sentences are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if isTerminator(r) && i+1 < len(text) && isSpace(text[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
