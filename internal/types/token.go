package types

import (
	"fmt"
	"strconv"
)

/////////////////////////////////////////////////////////////////////////////
// TEXT
/////////////////////////////////////////////////////////////////////////////

// Text is one complete input submission processed by a single run.
type Text struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

/////////////////////////////////////////////////////////////////////////////
// TOKEN
/////////////////////////////////////////////////////////////////////////////

type Token struct {
	Value    string `json:"value"`
	Position int    `json:"position"` // 1-based ordinal within its text
	Pos      int    `json:"pos"`      // byte offset in the input
	RawLen   int    `json:"raw_len"`  // length before truncation
}

// Truncated reports whether the stored value lost its tail.
func (t Token) Truncated() bool {
	return t.RawLen > len(t.Value)
}

func (t Token) String() string {
	return strconv.Itoa(t.Position) + ": " + t.Value
}

/////////////////////////////////////////////////////////////////////////////
// STATS
/////////////////////////////////////////////////////////////////////////////

// Stats are the aggregate metrics stored once per text. The average is
// truncated to an integer.
type Stats struct {
	TokenCount int `json:"token_count"`
	AvgLen     int `json:"avg_len"`
	MaxLen     int `json:"max_len"`
	MinLen     int `json:"min_len"`
}

func (s Stats) String() string {
	return fmt.Sprintf("count=%d avg=%d max=%d min=%d", s.TokenCount, s.AvgLen, s.MaxLen, s.MinLen)
}

/////////////////////////////////////////////////////////////////////////////
// TOKENIZE REPORT
/////////////////////////////////////////////////////////////////////////////

// TokenizeReport describes what the capacity guards did during a pass.
type TokenizeReport struct {
	InputSize      int64 `json:"input_size"`
	TotalTokens    int   `json:"total_tokens"`
	TruncatedCount int   `json:"truncated_count"`
	CapacityHit    bool  `json:"capacity_hit"`
	// PosFirstDropped is the byte offset of the first ignored token, or -1.
	PosFirstDropped int64 `json:"pos_first_dropped"`
}
