package tabular

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jverma/quiz-solver/models"
)

// ParsePDF scans pages in order and returns the first detected table with a
// header row and at least one data row. Pages whose content cannot be read
// are skipped; a document with no such table is a ParseError.
func ParsePDF(data []byte, source string) (*models.Table, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, &ParseError{Format: FormatPDF, Source: source, Err: fmt.Errorf("pdfcpu read: %w", err)}
	}

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		lines := extractPageLines(ctx, pageNr)
		if len(lines) == 0 {
			continue
		}
		if t := tableFromLines(lines); t != nil {
			return t, nil
		}
	}

	return nil, &ParseError{Format: FormatPDF, Source: source, Err: fmt.Errorf("no table found in document")}
}

// extractPageLines extracts text lines from a single page content stream.
func extractPageLines(ctx *model.Context, pageNr int) []string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return nil
	}
	return linesFromStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// linesFromStream parses PDF content stream operators for text, keeping the
// line structure implied by the positioning operators. Tj/TJ append to the
// current line; Td, TD, T* and ' start a new one.
func linesFromStream(data []byte) []string {
	var lines []string
	var cur strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		// Tj / TJ operators: show text on the current line.
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				cur.WriteString(decodePDFString(m[1]))
			}

		// ' operator: move to next line and show text.
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			flush()
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				cur.WriteString(decodePDFString(m[1]))
			}

		// Positioning operators: line break.
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")),
			bytes.Equal(line, []byte("T*")):
			flush()
		}
	}
	flush()
	return lines
}

// cellSplitRe splits a text line into cells on tabs or runs of two or more
// spaces, the layout a table renders to in a content stream.
var cellSplitRe = regexp.MustCompile(`\t|\s{2,}`)

// tableFromLines finds the first run of consecutive multi-cell lines that
// is at least a header plus one data row.
func tableFromLines(lines []string) *models.Table {
	var block [][]string
	for _, line := range lines {
		cells := splitCells(line)
		if len(cells) >= 2 {
			block = append(block, cells)
			continue
		}
		if t := tableFromBlock(block); t != nil {
			return t
		}
		block = nil
	}
	return tableFromBlock(block)
}

func tableFromBlock(block [][]string) *models.Table {
	// Reject tables with fewer than a header row and one data row.
	if len(block) < 2 {
		return nil
	}
	return &models.Table{Headers: block[0], Rows: block[1:]}
}

func splitCells(line string) []string {
	var cells []string
	for _, c := range cellSplitRe.Split(line, -1) {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '(':
				sb.WriteByte('(')
			case ')':
				sb.WriteByte(')')
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
						i++
						val = val*8 + int(raw[i]-'0')
						if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
							i++
							val = val*8 + int(raw[i]-'0')
						}
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
