package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/badele/textanalyzer/internal/processor"
)

func ExportJSON(w io.Writer, res *processor.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON serialization error: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
