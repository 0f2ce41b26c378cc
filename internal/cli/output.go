package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fcstern/bfvcal/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatICS  OutputFormat = "ics"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatICS, FormatJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'ics' or 'json')", s)
	}
}

// WriteOutput writes a pipeline result in the specified format: the
// calendar document as-is, or the diagnostic report as indented JSON.
func WriteOutput(w io.Writer, res *pipeline.Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(res.Report)
	case FormatICS:
		_, err := io.WriteString(w, res.Calendar)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
