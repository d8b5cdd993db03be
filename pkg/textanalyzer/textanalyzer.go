// Package textanalyzer provides a public API for tokenizing texts and
// persisting them with their tokens and length statistics.
//
// This package provides functions to:
//   - Split a text into bounded tokens on space, comma, period and newline
//   - Compute token count and average, maximum and minimum lengths
//   - Store texts, tokens and stats in SQLite, Redis or memory
//
// Example usage:
//
//	import "github.com/badele/textanalyzer/pkg/textanalyzer"
//
//	store, _ := textanalyzer.OpenSQLite(ctx, "analysis.db")
//	res, err := textanalyzer.Analyze(ctx, store, strings.NewReader("The cat sat."))
//	fmt.Println(res.TextID, res.Stats)
package textanalyzer

import (
	"context"
	"io"

	"github.com/badele/textanalyzer/internal/importer/text"
	"github.com/badele/textanalyzer/internal/processor"
	"github.com/badele/textanalyzer/internal/store"
	"github.com/badele/textanalyzer/internal/types"
)

// Type aliases for public API
type (
	// Token is one bounded token with its 1-based position
	Token = types.Token

	// Stats holds the length statistics of a text's tokens
	Stats = types.Stats

	// TokenizeReport describes what the tokenizer dropped or truncated
	TokenizeReport = types.TokenizeReport

	// Store persists texts, tokens and stats
	Store = store.Store

	// StoreType selects a store driver
	StoreType = store.StoreType

	// StoreOption configures NewStore
	StoreOption = store.StoreOption

	// Result is what a successful Analyze stored
	Result = processor.Result

	// Option configures a pipeline run
	Option = processor.Option

	// TokenizerOptions bounds token count and token length
	TokenizerOptions = text.Options

	// InputOptions bounds and decodes the input
	InputOptions = text.InputOptions

	// Tokenizer splits a text into tokens
	Tokenizer = text.Tokenizer
)

const (
	StoreTypeSQLite = store.StoreTypeSQLite
	StoreTypeMemory = store.StoreTypeMemory
	StoreTypeRedis  = store.StoreTypeRedis

	DefaultMaxTokens   = text.DefaultMaxTokens
	DefaultMaxTokenLen = text.DefaultMaxTokenLen
	DefaultMaxInputLen = text.DefaultMaxInputLen
)

// Error sentinels, usable with errors.Is
var (
	ErrInput            = types.ErrInput
	ErrStorage          = types.ErrStorage
	ErrCapacityExceeded = types.ErrCapacityExceeded
)

var (
	WithTokenizerOptions = processor.WithTokenizerOptions
	WithInputOptions     = processor.WithInputOptions
	WithLogger           = processor.WithLogger
	WithMetrics          = processor.WithMetrics

	WithPath        = store.WithPath
	WithRedisClient = store.WithRedisClient
	WithRedisAddr   = store.WithRedisAddr
	WithRedisPrefix = store.WithRedisPrefix
)

// NewTokenizer creates a tokenizer over input. Zero options select the
// default limits.
func NewTokenizer(input []byte, opts TokenizerOptions) *Tokenizer {
	return text.NewTokenizer(input, opts)
}

// ComputeStats computes the length statistics of tokens.
func ComputeStats(tokens []Token) Stats {
	return processor.ComputeStats(tokens)
}

// ConvertToUTF8 converts data from the given encoding to UTF-8.
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	return text.ConvertToUTF8(data, sourceEncoding)
}

// OpenSQLite opens or creates the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (Store, error) {
	s, err := store.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewStore creates a store of the given type.
func NewStore(ctx context.Context, storeType StoreType, opts ...StoreOption) (Store, error) {
	return store.NewStore(ctx, storeType, opts...)
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() Store {
	return store.NewMemoryStore()
}

// Analyze reads one text from r, stores it with its tokens and stats in s,
// and closes s.
func Analyze(ctx context.Context, s Store, r io.Reader, opts ...Option) (*Result, error) {
	return processor.NewPipeline(s, opts...).Run(ctx, r)
}
