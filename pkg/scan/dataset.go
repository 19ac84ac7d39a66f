package scan

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jverma/quiz-solver/models"
	"github.com/jverma/quiz-solver/pkg/fetcher"
	"github.com/jverma/quiz-solver/pkg/tabular"
)

// ErrNoDataset means every candidate source came up empty. The pipeline
// treats it as a terminal outcome, not a failure: the payload still goes
// out with a sentinel answer.
var ErrNoDataset = errors.New("unable to locate dataset")

// ResourceFetcher downloads one linked candidate. *fetcher.Fetcher
// satisfies it; tests inject fakes.
type ResourceFetcher interface {
	Fetch(ctx context.Context, rawURL, baseURL string) (*fetcher.Resource, error)
}

// Dataset is the outcome of dataset discovery: either a parsed table with
// the URL it came from, or a literal answer lifted from a script blob that
// short-circuits the rest of the pipeline.
type Dataset struct {
	Table     *models.Table
	SourceURL string

	Answer    any
	HasAnswer bool
}

// datasetExts mark hyperlink targets worth downloading. Matched as
// substrings of the lowercased href, so query-string-bearing links count.
var datasetExts = []string{".csv", ".xls", ".xlsx", ".pdf"}

// answerBlobRe finds a script-embedded JSON object carrying an answer key.
var answerBlobRe = regexp.MustCompile(`\{[\s\S]*"answer"[\s\S]*\}`)

// Locator runs the dataset discovery candidates in priority order.
type Locator struct {
	Fetch  ResourceFetcher
	Logger *slog.Logger
}

// Locate tries, in order: inline HTML tables, linked csv/xlsx/pdf
// resources, a script-embedded literal answer. Every per-candidate failure
// is logged and swallowed. Returns ErrNoDataset when nothing worked.
func (l *Locator) Locate(ctx context.Context, s *Snapshot) (*Dataset, error) {
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}

	producers := []struct {
		name string
		run  func(context.Context, *Snapshot, *slog.Logger) *Dataset
	}{
		{"inline-table", l.inlineTable},
		{"linked-resource", l.linkedResource},
		{"script-answer", l.scriptAnswer},
	}

	for _, p := range producers {
		if ds := p.run(ctx, s, log); ds != nil {
			log.Debug("dataset located", "producer", p.name, "source", ds.SourceURL)
			return ds, nil
		}
	}
	return nil, ErrNoDataset
}

func (l *Locator) inlineTable(_ context.Context, s *Snapshot, _ *slog.Logger) *Dataset {
	tables := tabular.ParseHTMLTables(s.HTML)
	if len(tables) == 0 {
		return nil
	}
	return &Dataset{Table: tables[0], SourceURL: s.BaseURL}
}

func (l *Locator) linkedResource(ctx context.Context, s *Snapshot, log *slog.Logger) *Dataset {
	if l.Fetch == nil {
		return nil
	}
	for _, link := range datasetLinks(s.Doc()) {
		res, err := l.Fetch.Fetch(ctx, link, s.BaseURL)
		if err != nil {
			log.Debug("candidate fetch failed", "link", link, "error", err)
			continue
		}

		format := tabular.DetectFormat(res.URL, res.ContentType, res.Data)
		if format == tabular.FormatUnknown {
			log.Debug("candidate format unknown", "url", res.URL)
			continue
		}

		table, err := tabular.Parse(format, res.Data, res.URL)
		if err != nil {
			log.Debug("candidate parse failed", "url", res.URL, "format", string(format), "error", err)
			continue
		}
		if table.Empty() {
			log.Debug("candidate parsed to empty table", "url", res.URL)
			continue
		}
		return &Dataset{Table: table, SourceURL: res.URL}
	}
	return nil
}

func (l *Locator) scriptAnswer(_ context.Context, s *Snapshot, _ *slog.Logger) *Dataset {
	var ds *Dataset
	s.Doc().Find("script").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		blob := answerBlobRe.FindString(sel.Text())
		if blob == "" {
			return true
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(blob), &obj); err != nil {
			return true
		}
		answer, ok := obj["answer"]
		if !ok {
			return true
		}
		ds = &Dataset{Answer: answer, HasAnswer: true, SourceURL: s.BaseURL}
		return false
	})
	return ds
}

// datasetLinks returns hyperlink targets that look like tabular downloads,
// in document order.
func datasetLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		ll := strings.ToLower(href)
		for _, ext := range datasetExts {
			if strings.Contains(ll, ext) {
				links = append(links, href)
				return
			}
		}
	})
	return links
}
