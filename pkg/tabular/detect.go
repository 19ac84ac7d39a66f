// Package tabular turns fetched bytes or inline markup into rectangular
// tables and coerces their columns to numeric values where possible.
package tabular

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Format classifies candidate dataset bytes.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatPDF     Format = "pdf"
	FormatUnknown Format = ""
)

// Magic signatures. XLSX is a zip archive; legacy XLS is an OLE compound file.
var (
	magicPDF = []byte("%PDF-")
	magicZip = []byte{0x50, 0x4B, 0x03, 0x04}
	magicOLE = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat classifies a candidate in three passes: declared content
// type, magic-byte sniffing, then URL suffix. It never fails; FormatUnknown
// tells the caller to skip the candidate.
func DetectFormat(resolvedURL, contentType string, data []byte) Format {
	if contentType != "" {
		lc := strings.ToLower(contentType)
		switch {
		case strings.Contains(lc, "csv") || strings.Contains(lc, "text/plain"):
			return FormatCSV
		case strings.Contains(lc, "excel") || strings.Contains(lc, "spreadsheet") ||
			strings.Contains(lc, "xlsx") || strings.Contains(lc, "xls"):
			return FormatXLSX
		case strings.Contains(lc, "pdf"):
			return FormatPDF
		}
	}

	if f := sniffFormat(data); f != FormatUnknown {
		return f
	}

	lu := strings.ToLower(resolvedURL)
	switch {
	case strings.HasSuffix(lu, ".csv"):
		return FormatCSV
	case strings.HasSuffix(lu, ".xlsx") || strings.HasSuffix(lu, ".xls"):
		return FormatXLSX
	case strings.HasSuffix(lu, ".pdf"):
		return FormatPDF
	}

	return FormatUnknown
}

func sniffFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return FormatPDF
	case bytes.HasPrefix(data, magicZip), bytes.HasPrefix(data, magicOLE):
		return FormatXLSX
	case looksLikeText(data):
		return FormatCSV
	}
	return FormatUnknown
}

// looksLikeText accepts bytes that are plausibly a delimited text file:
// valid UTF-8, no NUL bytes, at least one comma or newline in the head.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	if bytes.IndexByte(head, 0) >= 0 || !utf8.Valid(head) {
		return false
	}
	return bytes.IndexByte(head, ',') >= 0 || bytes.IndexByte(head, '\n') >= 0
}
