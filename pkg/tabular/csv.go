package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jverma/quiz-solver/models"
)

// ParseCSV parses comma-delimited bytes with the first record as header.
func ParseCSV(data []byte, source string) (*models.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // tolerate ragged rows, normalization aligns them
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, &ParseError{Format: FormatCSV, Source: source, Err: fmt.Errorf("failed to read header: %w", err)}
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Source: source, Err: err}
		}
		rows = append(rows, record)
	}

	return &models.Table{Headers: header, Rows: rows}, nil
}
