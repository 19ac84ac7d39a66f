package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jverma/quiz-solver/models"
)

// ParseXLSX parses the first sheet of a spreadsheet, first row as header.
func ParseXLSX(data []byte, source string) (*models.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Source: source, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Format: FormatXLSX, Source: source, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Source: source, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Format: FormatXLSX, Source: source, Err: fmt.Errorf("sheet %q is empty", sheets[0])}
	}

	return &models.Table{Headers: rows[0], Rows: rows[1:]}, nil
}
