package processor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/badele/textanalyzer/internal/importer/text"
	"github.com/badele/textanalyzer/internal/logging"
	"github.com/badele/textanalyzer/internal/metrics"
	"github.com/badele/textanalyzer/internal/store"
	"github.com/badele/textanalyzer/internal/types"
)

/////////////////////////////////////////////////////////////////////////////
// STATE
/////////////////////////////////////////////////////////////////////////////

type State int

const (
	StateReadInput State = iota
	StateStoreText
	StateTokenize
	StateStoreTokens
	StateStoreStats
	StateCloseStore
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateReadInput:
		return "read_input"
	case StateStoreText:
		return "store_text"
	case StateTokenize:
		return "tokenize"
	case StateStoreTokens:
		return "store_tokens"
	case StateStoreStats:
		return "store_stats"
	case StateCloseStore:
		return "close_store"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// RunError records the state a run failed in.
type RunError struct {
	State State
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.State, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

/////////////////////////////////////////////////////////////////////////////
// PIPELINE
/////////////////////////////////////////////////////////////////////////////

// Result is what a successful run stored.
type Result struct {
	TextID         int64                `json:"text_id"`
	Text           string               `json:"-"`
	Tokens         []types.Token        `json:"tokens"`
	Stats          types.Stats          `json:"stats"`
	Report         types.TokenizeReport `json:"report"`
	InputTruncated bool                 `json:"input_truncated"`
}

type Option func(*Pipeline)

func WithTokenizerOptions(opts text.Options) Option {
	return func(p *Pipeline) {
		p.tokOpts = opts
	}
}

func WithInputOptions(opts text.InputOptions) Option {
	return func(p *Pipeline) {
		p.inOpts = opts
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// Pipeline drives one text through read, store, tokenize and stats.
// It owns the store: the store is closed when Run returns.
type Pipeline struct {
	store   store.Store
	tokOpts text.Options
	inOpts  text.InputOptions
	log     *logging.Logger
	metrics *metrics.Metrics
	state   State
	closed  bool
}

func NewPipeline(s store.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store: s,
		log:   logging.Nop(),
		state: StateReadInput,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) enter(s State) {
	p.log.Debug("pipeline state", "from", p.state.String(), "to", s.String())
	p.state = s
}

// fail moves to the Error state and releases the store. Rows already
// inserted stay in the store.
func (p *Pipeline) fail(err error) error {
	failed := p.state
	p.state = StateError
	p.metrics.Failure(failed.String())
	p.log.Error("pipeline failed", "state", failed.String(), "error", err)

	if !p.closed {
		if cerr := p.closeStore(); cerr != nil {
			p.log.Error("close store", "error", cerr)
		}
	}

	return &RunError{State: failed, Err: err}
}

// closeStore closes the store at most once per run.
func (p *Pipeline) closeStore() error {
	p.closed = true
	return p.store.Close()
}

// Run reads the text from r and persists it with its tokens and stats.
// Tokens are inserted as they are produced.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (*Result, error) {
	start := time.Now()
	defer func() { p.metrics.ObserveRun(time.Since(start)) }()

	p.enter(StateReadInput)
	in, err := text.ReadInput(r, p.inOpts)
	if err != nil {
		return nil, p.fail(err)
	}
	p.log.Debug("input read", "source", p.inOpts.Source, "bytes", in.Size)
	if in.Truncated {
		p.log.Warn("input truncated", "max_input_len", p.inOpts.MaxLen, "bytes", in.Size)
	}

	p.enter(StateStoreText)
	textID, err := p.store.InsertText(ctx, in.Text)
	if err != nil {
		return nil, p.fail(err)
	}
	p.metrics.TextStored()
	log := p.log.With("text_id", textID)

	p.enter(StateTokenize)
	tok := text.NewTokenizer([]byte(in.Text), p.tokOpts)

	p.enter(StateStoreTokens)
	tokens := make([]types.Token, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, p.fail(err)
		}

		token, ok := tok.Next()
		if !ok {
			break
		}

		if _, err := p.store.InsertToken(ctx, textID, token.Value, token.Position); err != nil {
			return nil, p.fail(err)
		}
		p.metrics.TokenStored(token.Truncated())
		tokens = append(tokens, token)
	}

	report := tok.GetStats()
	if report.TruncatedCount > 0 {
		log.Warn("tokens truncated", "error", &types.CapacityError{
			Limit: "token length",
			Max:   tok.MaxTokenLen(),
			Count: report.TruncatedCount,
		})
	}
	if report.CapacityHit {
		p.metrics.CapacityHit()
		log.Warn("token capacity reached, remaining input ignored",
			"error", &types.CapacityError{Limit: "token count", Max: tok.MaxTokens(), Count: report.TotalTokens},
			"pos_first_dropped", report.PosFirstDropped)
	}

	p.enter(StateStoreStats)
	stats := ComputeStats(tokens)
	if err := p.store.InsertStats(ctx, textID, stats); err != nil {
		return nil, p.fail(err)
	}

	p.enter(StateCloseStore)
	if err := p.closeStore(); err != nil {
		return nil, p.fail(err)
	}
	p.enter(StateDone)
	log.Info("analysis stored", "tokens", stats.TokenCount, "duration", time.Since(start))

	return &Result{
		TextID:         textID,
		Text:           in.Text,
		Tokens:         tokens,
		Stats:          stats,
		Report:         report,
		InputTruncated: in.Truncated,
	}, nil
}
