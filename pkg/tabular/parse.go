package tabular

import (
	"fmt"

	"github.com/jverma/quiz-solver/models"
)

// ParseError reports malformed table bytes for a single candidate. Dataset
// discovery treats it as skip-and-continue, never as a pipeline abort.
type ParseError struct {
	Format Format
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %s: %v", e.Format, e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse dispatches classified bytes to the matching parser.
func Parse(format Format, data []byte, source string) (*models.Table, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(data, source)
	case FormatXLSX:
		return ParseXLSX(data, source)
	case FormatPDF:
		return ParsePDF(data, source)
	default:
		return nil, &ParseError{Format: format, Source: source, Err: fmt.Errorf("no parser for format %q", string(format))}
	}
}
