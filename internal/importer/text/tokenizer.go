package text

import (
	"unicode/utf8"

	"github.com/badele/textanalyzer/internal/types"
)

const (
	DefaultMaxTokens   = 3000
	DefaultMaxTokenLen = 63
)

// Options bounds a tokenize pass. Zero values select the defaults.
type Options struct {
	MaxTokens   int
	MaxTokenLen int
}

func (o Options) withDefaults() Options {
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.MaxTokenLen <= 0 {
		o.MaxTokenLen = DefaultMaxTokenLen
	}
	return o
}

// Tokenizer splits a buffer on space, comma, period and newline.
type Tokenizer struct {
	input  []byte
	pos    int
	opts   Options
	Tokens []types.Token `json:"tokens"`
	stats  types.TokenizeReport
}

func NewTokenizer(input []byte, opts Options) *Tokenizer {
	t := &Tokenizer{
		input:  input,
		opts:   opts.withDefaults(),
		Tokens: make([]types.Token, 0),
	}
	t.Reset()
	return t
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', ',', '.', '\n':
		return true
	}
	return false
}

// Reset rewinds the tokenizer so that Next starts again at position 1.
func (t *Tokenizer) Reset() {
	t.pos = 0
	t.stats = types.TokenizeReport{
		InputSize:       int64(len(t.input)),
		PosFirstDropped: -1,
	}
}

// Next returns the next token, or false once the input or the token
// capacity is exhausted.
func (t *Tokenizer) Next() (types.Token, bool) {
	for t.pos < len(t.input) && isDelimiter(t.input[t.pos]) {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return types.Token{}, false
	}

	if t.stats.TotalTokens >= t.opts.MaxTokens {
		if !t.stats.CapacityHit {
			t.stats.CapacityHit = true
			t.stats.PosFirstDropped = int64(t.pos)
		}
		t.pos = len(t.input)
		return types.Token{}, false
	}

	start := t.pos
	for t.pos < len(t.input) && !isDelimiter(t.input[t.pos]) {
		t.pos++
	}
	raw := t.input[start:t.pos]

	t.stats.TotalTokens++
	token := types.Token{
		Value:    truncate(raw, t.opts.MaxTokenLen),
		Position: t.stats.TotalTokens,
		Pos:      start,
		RawLen:   len(raw),
	}
	if token.Truncated() {
		t.stats.TruncatedCount++
	}

	return token, true
}

// Tokenize restarts the sequence and collects every token.
func (t *Tokenizer) Tokenize() []types.Token {
	t.Reset()
	t.Tokens = t.Tokens[:0]
	for {
		token, ok := t.Next()
		if !ok {
			break
		}
		t.Tokens = append(t.Tokens, token)
	}

	return t.Tokens
}

func (t *Tokenizer) GetStats() types.TokenizeReport {
	return t.stats
}

func (t *Tokenizer) MaxTokens() int   { return t.opts.MaxTokens }
func (t *Tokenizer) MaxTokenLen() int { return t.opts.MaxTokenLen }

// truncate keeps at most max bytes. The cut never splits a UTF-8 sequence.
func truncate(raw []byte, max int) string {
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:runeCut(raw, max)])
}

// runeCut returns the largest cut <= max that does not split a UTF-8
// sequence, or max when no rune starts inside the first max bytes.
func runeCut(b []byte, max int) int {
	if len(b) <= max {
		return len(b)
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return cut
}

var (
	_ types.TokenizerWithStats = (*Tokenizer)(nil)
	_ types.TokenIterator      = (*Tokenizer)(nil)
)
