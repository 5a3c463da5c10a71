package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind labels the operation that produced a record.
type Kind string

const (
	KindSchema Kind = "schema"
	KindChunks Kind = "chunks"
)

// previewLen bounds the stored input excerpt.
const previewLen = 100

// Record is one completed conversion. Immutable once stored.
type Record struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Preview   string    `json:"preview"`
	Result    any       `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a thread-safe in-memory conversion history with TTL eviction
// and a bounded record count.
type Store struct {
	mu      sync.Mutex
	records []Record
	ttl     time.Duration
	limit   int
}

func NewStore(ttl time.Duration, limit int) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if limit <= 0 {
		limit = 50
	}
	return &Store{
		ttl:   ttl,
		limit: limit,
	}
}

// Add appends a record for the given input and result, truncating the input
// to a short preview. The oldest record is dropped when the store is full.
func (s *Store) Add(kind Kind, input string, result any) Record {
	rec := Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		Preview:   truncate(input, previewLen),
		Result:    result,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if len(s.records) > s.limit {
		s.records = s.records[len(s.records)-s.limit:]
	}
	return rec
}

// Recent returns up to n records, newest first. n <= 0 returns all.
func (s *Store) Recent(n int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.records) {
		n = len(s.records)
	}
	out := make([]Record, 0, n)
	for i := len(s.records) - 1; i >= len(s.records)-n; i-- {
		out = append(out, s.records[i])
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Clear removes all records.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Cleanup removes expired records.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	writeIdx := 0
	for _, rec := range s.records {
		if !rec.CreatedAt.Before(cutoff) {
			s.records[writeIdx] = rec
			writeIdx++
		}
	}
	s.records = s.records[:writeIdx]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
