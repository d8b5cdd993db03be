package processor

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badele/textanalyzer/internal/importer/text"
	"github.com/badele/textanalyzer/internal/logging"
	"github.com/badele/textanalyzer/internal/metrics"
	"github.com/badele/textanalyzer/internal/store"
	"github.com/badele/textanalyzer/internal/types"
)

func TestPipelineRunExample(t *testing.T) {
	s := store.NewMemoryStore()
	p := NewPipeline(s)

	res, err := p.Run(context.Background(), strings.NewReader("The cat sat, the cat ran.\n"))
	require.NoError(t, err)
	assert.Equal(t, StateDone, p.State())

	content, ok := s.Text(res.TextID)
	require.True(t, ok)
	assert.Equal(t, "The cat sat, the cat ran.", content)

	var values []string
	for i, tok := range s.TokensOf(res.TextID) {
		assert.Equal(t, i+1, tok.Position)
		values = append(values, tok.Value)
	}
	assert.Equal(t, []string{"The", "cat", "sat", "the", "cat", "ran"}, values)

	st, ok := s.StatsOf(res.TextID)
	require.True(t, ok)
	assert.Equal(t, types.Stats{TokenCount: 6, AvgLen: 3, MaxLen: 3, MinLen: 3}, st)
	assert.Equal(t, st, res.Stats)
}

func TestPipelineEmptyTextStillStoresStats(t *testing.T) {
	s := store.NewMemoryStore()

	res, err := NewPipeline(s).Run(context.Background(), strings.NewReader("\n"))
	require.NoError(t, err)

	assert.Empty(t, s.TokensOf(res.TextID))
	st, ok := s.StatsOf(res.TextID)
	require.True(t, ok)
	assert.Equal(t, types.Stats{}, st)
}

func TestPipelineCapacity(t *testing.T) {
	s := store.NewMemoryStore()
	m := metrics.New()
	input := strings.Repeat("word ", 3001)

	res, err := NewPipeline(s, WithMetrics(m)).Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Len(t, s.TokensOf(res.TextID), 3000)
	assert.True(t, res.Report.CapacityHit)
	assert.Equal(t, 3000, res.Stats.TokenCount)
}

func TestPipelineCustomLimits(t *testing.T) {
	s := store.NewMemoryStore()
	p := NewPipeline(s, WithTokenizerOptions(text.Options{MaxTokens: 2, MaxTokenLen: 2}))

	res, err := p.Run(context.Background(), strings.NewReader("alpha beta gamma"))
	require.NoError(t, err)

	assert.Equal(t, []types.Token{{Value: "al", Position: 1}, {Value: "be", Position: 2}}, s.TokensOf(res.TextID))
	assert.Equal(t, 2, res.Report.TruncatedCount)
}

func TestPipelineInputErrorClosesStore(t *testing.T) {
	s := store.NewMemoryStore()
	p := NewPipeline(s)

	_, err := p.Run(context.Background(), strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInput)
	assert.Equal(t, StateError, p.State())

	_, err = s.InsertText(context.Background(), "after")
	assert.ErrorIs(t, err, store.ErrClosed)
}

// failingStore fails the n-th token insert.
type failingStore struct {
	*store.MemoryStore
	failAt int
	calls  int
	closed int
}

func (f *failingStore) InsertToken(ctx context.Context, textID int64, value string, position int) (int64, error) {
	f.calls++
	if f.calls == f.failAt {
		return 0, &store.StorageError{Op: "insert_token", Driver: store.StoreTypeMemory, Err: errors.New("disk full")}
	}
	return f.MemoryStore.InsertToken(ctx, textID, value, position)
}

func (f *failingStore) Close() error {
	f.closed++
	return f.MemoryStore.Close()
}

func TestPipelineStorageFailureKeepsPartialRows(t *testing.T) {
	fs := &failingStore{MemoryStore: store.NewMemoryStore(), failAt: 3}
	var logs bytes.Buffer
	p := NewPipeline(fs, WithLogger(logging.NewLogger(logging.LogConfig{Output: &logs})))

	_, err := p.Run(context.Background(), strings.NewReader("one two three four"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStorage)
	assert.Contains(t, err.Error(), "store_tokens")
	assert.Equal(t, StateError, p.State())
	assert.Equal(t, 1, fs.closed)

	// no rollback: the first two tokens remain, no stats row
	assert.Len(t, fs.TokensOf(1), 2)
	_, ok := fs.StatsOf(1)
	assert.False(t, ok)

	assert.Contains(t, logs.String(), "state=store_tokens")
}

// closeFailingStore writes normally but fails to close.
type closeFailingStore struct {
	*store.MemoryStore
	closed int
}

func (c *closeFailingStore) Close() error {
	c.closed++
	_ = c.MemoryStore.Close()
	return &store.StorageError{Op: "close", Driver: store.StoreTypeMemory, Err: errors.New("fsync failed")}
}

func TestPipelineCloseFailureIsItsOwnState(t *testing.T) {
	cs := &closeFailingStore{MemoryStore: store.NewMemoryStore()}
	p := NewPipeline(cs)

	_, err := p.Run(context.Background(), strings.NewReader("one two"))
	require.Error(t, err)

	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, StateCloseStore, runErr.State)
	assert.Equal(t, StateError, p.State())
	assert.Equal(t, 1, cs.closed)

	// stats were written before the close failed
	_, ok := cs.StatsOf(1)
	assert.True(t, ok)
}

func TestPipelineCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(store.NewMemoryStore())
	_, err := p.Run(ctx, strings.NewReader("a b"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineSQLiteRerunCreatesNewText(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analysis.db")

	var ids []int64
	for i := 0; i < 2; i++ {
		s, err := store.OpenSQLite(ctx, path)
		require.NoError(t, err)

		res, err := NewPipeline(s).Run(ctx, strings.NewReader("same input"))
		require.NoError(t, err)
		ids = append(ids, res.TextID)
	}

	assert.NotEqual(t, ids[0], ids[1])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "store_stats", StateStoreStats.String())
	assert.Equal(t, "close_store", StateCloseStore.String())
	assert.Equal(t, "State(42)", State(42).String())
}
