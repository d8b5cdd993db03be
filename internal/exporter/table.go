package exporter

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/badele/textanalyzer/internal/processor"
)

func ExportTokensToTable(res *processor.Result, writer io.Writer) error {
	fmt.Fprintln(writer, "\n┌──────────┬──────────┬────────┬──────────────────────────────────────────────────────────────────┐")
	fmt.Fprintf(writer, "│ %-8s │ %-8s │ %-6s │ %-64s │\n", "Position", "Offset", "Length", "Token")
	fmt.Fprintln(writer, "├──────────┼──────────┼────────┼──────────────────────────────────────────────────────────────────┤")

	for _, token := range res.Tokens {
		length := fmt.Sprintf("%d", len(token.Value))
		if token.Truncated() {
			length = fmt.Sprintf("%d*", len(token.Value))
		}
		fmt.Fprintf(writer, "│ %-8d │ %-8d │ %-6s │ %-64s │\n",
			token.Position, token.Pos, length, truncate(token.Value, 64))
	}

	fmt.Fprintln(writer, "└──────────┴──────────┴────────┴──────────────────────────────────────────────────────────────────┘")

	fmt.Fprintf(writer, "\n  Text ID     : %d\n", res.TextID)
	fmt.Fprintf(writer, "  Token count : %d\n", res.Stats.TokenCount)
	fmt.Fprintf(writer, "  Avg length  : %d\n", res.Stats.AvgLen)
	fmt.Fprintf(writer, "  Max length  : %d\n", res.Stats.MaxLen)
	_, err := fmt.Fprintf(writer, "  Min length  : %d\n", res.Stats.MinLen)

	return err
}

func truncate(s string, maxLen int) string {
	s = fmt.Sprintf("%q", s)

	// Remove quote added by %q
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if len(s) > maxLen {
		cut := maxLen - 3
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	return s
}
