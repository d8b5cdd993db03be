package store

import (
	"context"
	"sync"

	"github.com/badele/textanalyzer/internal/types"
)

// MemoryStore implements Store in process memory. Nothing survives Close.
type MemoryStore struct {
	mu      sync.RWMutex
	closed  bool
	textSeq int64
	tokSeq  int64
	texts   map[int64]string
	tokens  map[int64][]types.Token
	stats   map[int64]types.Stats
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		texts:  make(map[int64]string),
		tokens: make(map[int64][]types.Token),
		stats:  make(map[int64]types.Stats),
	}
}

// InsertText implements Store.
func (s *MemoryStore) InsertText(ctx context.Context, content string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, storageErr(StoreTypeMemory, "insert_text", ErrClosed)
	}

	s.textSeq++
	s.texts[s.textSeq] = content
	return s.textSeq, nil
}

// InsertToken implements Store.
func (s *MemoryStore) InsertToken(ctx context.Context, textID int64, value string, position int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, storageErr(StoreTypeMemory, "insert_token", ErrClosed)
	}
	if _, ok := s.texts[textID]; !ok {
		return 0, storageErr(StoreTypeMemory, "insert_token", ErrTextNotFound)
	}

	s.tokSeq++
	s.tokens[textID] = append(s.tokens[textID], types.Token{Value: value, Position: position})
	return s.tokSeq, nil
}

// InsertStats implements Store.
func (s *MemoryStore) InsertStats(ctx context.Context, textID int64, stats types.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storageErr(StoreTypeMemory, "insert_stats", ErrClosed)
	}
	if _, ok := s.texts[textID]; !ok {
		return storageErr(StoreTypeMemory, "insert_stats", ErrTextNotFound)
	}
	if _, exists := s.stats[textID]; exists {
		return storageErr(StoreTypeMemory, "insert_stats", ErrDuplicateStats)
	}

	s.stats[textID] = stats
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Text returns the content stored under id.
func (s *MemoryStore) Text(id int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.texts[id]
	return content, ok
}

// TokensOf returns a copy of the tokens of a text in insertion order.
func (s *MemoryStore) TokensOf(textID int64) []types.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]types.Token(nil), s.tokens[textID]...)
}

// StatsOf returns the stats of a text, if recorded.
func (s *MemoryStore) StatsOf(textID int64) (types.Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[textID]
	return st, ok
}

var _ Store = (*MemoryStore)(nil)
