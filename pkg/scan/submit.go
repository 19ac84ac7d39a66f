package scan

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jverma/quiz-solver/pkg/fetcher"
)

// ErrSubmitURLNotFound means no discovery rule matched. Without a
// destination the task cannot deliver an answer, so this is fatal.
var ErrSubmitURLNotFound = errors.New("submit url not found on page")

var (
	// Absolute URLs with a submission-style path segment.
	submitPathRe = regexp.MustCompile(`(?i)https?://[^\s'"<>]*(?:/submit|/scrape|/api/submit|/submit-answer|/submit_result)[^\s'"<>]*`)

	// "submit_url": "https://..." keys inside script text.
	submitKeyRe = regexp.MustCompile(`(?i)["']submit[_-]?url["']\s*:\s*["'](https?://[^"']+)["']`)

	// Any quoted absolute URL mentioning submit or scrape.
	quotedSubmitRe = regexp.MustCompile(`(?i)["'](https?://[^"']*(?:submit|scrape)[^"']*)["']`)

	// Loose fallback: any absolute URL mentioning submit or scrape.
	looseSubmitRe = regexp.MustCompile(`(?i)https?://[^\s'"<>]*(?:submit|scrape)[^\s'"<>]*`)

	// Hyperlink targets worth following.
	submitHrefRe = regexp.MustCompile(`(?i)(submit|scrape|api)`)

	// Origin placeholder marker span, e.g. <span class="origin">...</span>.
	originSpanRe = regexp.MustCompile(`(?i)<span[^>]*class=["']origin["'][^>]*>[\s\S]*?</span>`)
)

// submitRule is one discovery strategy. Rules are evaluated in order and
// the first non-empty result wins.
type submitRule struct {
	name string
	find func(s *Snapshot) string
}

var submitRules = []submitRule{
	{"absolute-path", findSubmitPath},
	{"script-key", findScriptSubmitURL},
	{"form-action", findFormAction},
	{"hyperlink", findSubmitHyperlink},
	{"embedded-json", findEmbeddedJSONURL},
	{"loose-absolute", findLooseSubmitURL},
}

// FindSubmitURL scans the snapshot with each rule in strict priority order
// and returns the first discovered absolute submission target.
func FindSubmitURL(s *Snapshot) (string, error) {
	for _, rule := range submitRules {
		if u := rule.find(s); u != "" {
			return u, nil
		}
	}
	return "", ErrSubmitURLNotFound
}

func findSubmitPath(s *Snapshot) string {
	return submitPathRe.FindString(s.Text())
}

func findScriptSubmitURL(s *Snapshot) string {
	var found string
	s.Doc().Find("script").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := sel.Text()
		if text == "" {
			return true
		}
		if m := submitKeyRe.FindStringSubmatch(text); m != nil {
			found = m[1]
			return false
		}
		if m := quotedSubmitRe.FindStringSubmatch(text); m != nil {
			found = m[1]
			return false
		}
		return true
	})
	return found
}

func findFormAction(s *Snapshot) string {
	var found string
	s.Doc().Find("form[action]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		action, _ := sel.Attr("action")
		if action == "" {
			return true
		}
		if strings.HasPrefix(action, "http") {
			found = action
		} else if s.BaseURL != "" {
			if resolved, err := fetcher.Resolve(action, s.BaseURL); err == nil {
				found = resolved
			}
		}
		return found == ""
	})
	return found
}

func findSubmitHyperlink(s *Snapshot) string {
	var found string
	s.Doc().Find("a[href]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if href == "" || !submitHrefRe.MatchString(href) {
			return true
		}
		if resolved, err := fetcher.Resolve(href, s.BaseURL); err == nil {
			found = resolved
		}
		return found == ""
	})
	return found
}

// findEmbeddedJSONURL handles pre/code blocks carrying a JSON payload with
// a url field, including templated origins that must be substituted with
// the live page origin before resolution.
func findEmbeddedJSONURL(s *Snapshot) string {
	var found string
	s.Doc().Find("pre,code").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		blob := firstJSONObject(sel.Text())
		if blob == "" {
			return true
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(blob), &obj); err != nil {
			return true
		}
		candidate, ok := obj["url"].(string)
		if !ok || candidate == "" {
			return true
		}

		if hasOriginPlaceholder(candidate) {
			origin := s.ResolveOrigin()
			if origin == "" {
				return true
			}
			fixed := originSpanRe.ReplaceAllString(candidate, origin)
			fixed = strings.ReplaceAll(fixed, "window.location.origin", origin)
			fixed = strings.ReplaceAll(fixed, "{{origin}}", origin)
			if resolved, err := fetcher.Resolve(fixed, origin); err == nil {
				found = resolved
			}
		} else if resolved, err := fetcher.Resolve(candidate, s.BaseURL); err == nil {
			found = resolved
		}
		return found == ""
	})
	return found
}

// firstJSONObject extracts the first brace-balanced block of text. Brace
// counting ignores string context, which is good enough here: template
// tokens like {{origin}} stay balanced inside their quotes.
func firstJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func hasOriginPlaceholder(candidate string) bool {
	return strings.Contains(candidate, "<span") ||
		strings.Contains(candidate, "window.location.origin") ||
		strings.Contains(candidate, "{{origin}}")
}

func findLooseSubmitURL(s *Snapshot) string {
	return looseSubmitRe.FindString(s.Text())
}
