// Package lemma reduces English tokens to their noun base form.
//
// Candidates come from the regular plural suffix rules plus an irregular
// plural table; a dictionary decides which candidate is a real word. Tokens
// that are not noun inflections, such as past-tense verbs, come back as-is.
package lemma

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Dictionary maps an inflected word to its base form. *golem.Lemmatizer
// satisfies it.
type Dictionary interface {
	Lemma(word string) string
	InDict(word string) bool
}

type suffixRule struct {
	suffix      string
	replacement string
}

var nounRules = []suffixRule{
	{suffix: "s", replacement: ""},
	{suffix: "ses", replacement: "s"},
	{suffix: "ves", replacement: "f"},
	{suffix: "xes", replacement: "x"},
	{suffix: "zes", replacement: "z"},
	{suffix: "ches", replacement: "ch"},
	{suffix: "shes", replacement: "sh"},
	{suffix: "men", replacement: "man"},
	{suffix: "ies", replacement: "y"},
}

var irregularNouns = map[string]string{
	"children":  "child",
	"men":       "man",
	"women":     "woman",
	"people":    "people",
	"mice":      "mouse",
	"geese":     "goose",
	"feet":      "foot",
	"teeth":     "tooth",
	"data":      "datum",
	"criteria":  "criterion",
	"analyses":  "analysis",
	"phenomena": "phenomenon",
	"indices":   "index",
	"matrices":  "matrix",
	"media":     "medium",
}

type Lemmatizer struct {
	dict Dictionary
}

func New(dict Dictionary) *Lemmatizer {
	return &Lemmatizer{dict: dict}
}

var (
	englishOnce sync.Once
	english     *Lemmatizer
	englishErr  error
)

// NewEnglish returns a Lemmatizer backed by the bundled English dictionary.
// The dictionary is decoded once per process and shared; lookups only read it.
func NewEnglish() (*Lemmatizer, error) {
	englishOnce.Do(func() {
		dict, err := golem.New(en.New())
		if err != nil {
			englishErr = fmt.Errorf("load english dictionary: %w", err)
			return
		}
		english = New(dict)
	})
	return english, englishErr
}

// Lemmatize returns the noun base form of a lowercase token.
func (l *Lemmatizer) Lemmatize(word string) string {
	if word == "" {
		return word
	}
	if base, ok := irregularNouns[word]; ok {
		return base
	}

	if l.dict == nil {
		return word
	}

	candidates := nounCandidates(word)
	if l.dict.InDict(word) {
		lemma := l.dict.Lemma(word)
		for _, candidate := range candidates {
			if candidate == lemma {
				return lemma
			}
		}
	}

	best := ""
	for _, candidate := range candidates[1:] {
		if !l.isBaseForm(candidate) {
			continue
		}
		if best == "" || len(candidate) < len(best) {
			best = candidate
		}
	}
	if best == "" {
		return word
	}
	return best
}

func (l *Lemmatizer) isBaseForm(word string) bool {
	return l.dict.InDict(word) && l.dict.Lemma(word) == word
}

// nounCandidates returns word followed by every suffix-rule rewrite of it.
func nounCandidates(word string) []string {
	candidates := []string{word}
	seen := map[string]struct{}{word: {}}
	for _, rule := range nounRules {
		if !strings.HasSuffix(word, rule.suffix) || len(word) <= len(rule.suffix) {
			continue
		}
		candidate := strings.TrimSuffix(word, rule.suffix) + rule.replacement
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		candidates = append(candidates, candidate)
	}
	return candidates
}
