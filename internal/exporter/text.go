package exporter

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/badele/textanalyzer/internal/processor"
)

const Prompt = "Please enter text to analyze: "

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// SetColor forces colored output on or off. By default color is enabled only
// when stdout is a terminal.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

func DisplayPrompt(w io.Writer) {
	fmt.Fprint(w, Prompt)
}

// DisplayTokens prints the token list the way the tokenize step reports it.
func DisplayTokens(w io.Writer, res *processor.Result) {
	fmt.Fprintf(w, "\nFound %d tokens:\n", len(res.Tokens))
	for _, token := range res.Tokens {
		fmt.Fprintln(w, token.String())
	}
}

// ExportText writes the human readable result of a run.
func ExportText(w io.Writer, res *processor.Result, verbose bool) error {
	if verbose {
		DisplayTokens(w, res)
	}

	if res.InputTruncated {
		warnColor.Fprintln(w, "Warning: input truncated to the maximum input length")
	}
	if res.Report.TruncatedCount > 0 {
		warnColor.Fprintf(w, "Warning: %d tokens truncated to the maximum token length\n", res.Report.TruncatedCount)
	}
	if res.Report.CapacityHit {
		warnColor.Fprintf(w, "Warning: token limit reached, input ignored from byte %d\n", res.Report.PosFirstDropped)
	}

	dimColor.Fprintf(w, "Tokens: %d  avg: %d  max: %d  min: %d\n",
		res.Stats.TokenCount, res.Stats.AvgLen, res.Stats.MaxLen, res.Stats.MinLen)

	_, err := successColor.Fprintf(w, "Analysis complete! Text ID: %d\n", res.TextID)
	return err
}

// DisplayError writes a failure message, as the CLI does on stderr.
func DisplayError(w io.Writer, msg string, err error) {
	errorColor.Fprintf(w, "%s: %v\n", msg, err)
}
