package processor

import "github.com/badele/textanalyzer/internal/types"

// ComputeStats returns count, truncated average, max and min token length in
// bytes. Every field is 0 for an empty sequence.
func ComputeStats(tokens []types.Token) types.Stats {
	if len(tokens) == 0 {
		return types.Stats{}
	}

	sum := 0
	maxLen := len(tokens[0].Value)
	minLen := maxLen
	for _, t := range tokens {
		n := len(t.Value)
		sum += n
		if n > maxLen {
			maxLen = n
		}
		if n < minLen {
			minLen = n
		}
	}

	return types.Stats{
		TokenCount: len(tokens),
		AvgLen:     sum / len(tokens),
		MaxLen:     maxLen,
		MinLen:     minLen,
	}
}
