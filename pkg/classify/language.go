package classify

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

// The classification rules are English phrasings. The language guard spots
// pages in other languages so operators can see why classification came
// back Unknown; it never blocks the rules from running.

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.French,
				lingua.German,
				lingua.Spanish,
				lingua.Hindi,
			).
			Build()
	})
	return detector
}

// IsEnglish reports whether the text reads as English. Unknown or
// undetectable text counts as English so the guard stays quiet on short or
// symbol-heavy pages.
func IsEnglish(text string) bool {
	if len(text) < 20 {
		return true
	}
	lang, ok := languageDetector().DetectLanguageOf(text)
	if !ok {
		return true
	}
	return lang == lingua.English
}
