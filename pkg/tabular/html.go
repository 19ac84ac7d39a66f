package tabular

import (
	"bufio"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jverma/quiz-solver/models"
)

// ParseHTMLTables extracts every <table> element of a document in order.
// Tables without usable headers or rows are dropped. A document that fails
// to parse yields no tables rather than an error; inline tables are only
// ever one candidate among several.
func ParseHTMLTables(html string) []*models.Table {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var tables []*models.Table
	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		if t := extractTable(s); !t.Empty() {
			tables = append(tables, t)
		}
	})
	return tables
}

func extractTable(s *goquery.Selection) *models.Table {
	var headers []string
	var rows [][]string

	// Try explicit headers
	s.Find("thead tr th").Each(func(i int, th *goquery.Selection) {
		headers = append(headers, collapseWhitespace(th.Text()))
	})

	headerInBody := false
	if len(headers) == 0 {
		// Fallback: first row
		s.Find("tr").First().Find("th,td").Each(func(i int, cell *goquery.Selection) {
			headers = append(headers, collapseWhitespace(cell.Text()))
		})
		headerInBody = true
	}

	s.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if headerInBody && i == 0 {
			return
		}
		var row []string
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			row = append(row, collapseWhitespace(td.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	return &models.Table{Headers: headers, Rows: rows}
}

// collapseWhitespace trims each line and joins them with single spaces.
func collapseWhitespace(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
