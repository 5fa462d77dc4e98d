// Package textproc turns free-form task text into lemmatized tokens and
// categories.
package textproc

import (
	"strings"
	"unicode"

	"github.com/KimDantic/Worklog/lemma"
	"github.com/KimDantic/Worklog/stopwords"
	"github.com/KimDantic/Worklog/taxonomy"
	"github.com/KimDantic/Worklog/worklog"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

type Result struct {
	Tokens     []string
	Categories []string
}

type Pipeline struct {
	stopwords  *stopwords.Set
	lemmatizer *lemma.Lemmatizer
	taxonomy   *taxonomy.Taxonomy
}

// New builds a pipeline. Nil arguments default to the English stopword list,
// the English dictionary lemmatizer and the built-in taxonomy.
func New(stop *stopwords.Set, lemmatizer *lemma.Lemmatizer, tax *taxonomy.Taxonomy) (*Pipeline, error) {
	if stop == nil {
		stop = stopwords.English()
	}
	if lemmatizer == nil {
		english, err := lemma.NewEnglish()
		if err != nil {
			return nil, err
		}
		lemmatizer = english
	}
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Pipeline{stopwords: stop, lemmatizer: lemmatizer, taxonomy: tax}, nil
}

func (p *Pipeline) Taxonomy() *taxonomy.Taxonomy {
	return p.taxonomy
}

// StripPunctuation removes every ASCII punctuation character.
func StripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
}

// Tokenize lowercases text and splits it on runs of non-word characters.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

// isWordRune matches letters, numerics of every kind and underscore.
// Combining marks are separators.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Normalize runs punctuation stripping, tokenizing, stopword removal and
// lemmatization. Absent text is treated as the literal "nan".
func (p *Pipeline) Normalize(text string, present bool) []string {
	if !present {
		text = worklog.Missing
	}

	words := Tokenize(StripPunctuation(text))
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if p.stopwords.Contains(word) {
			continue
		}
		tokens = append(tokens, p.lemmatizer.Lemmatize(word))
	}
	return tokens
}

func (p *Pipeline) Process(text string, present bool) Result {
	tokens := p.Normalize(text, present)
	return Result{Tokens: tokens, Categories: p.taxonomy.Categorize(tokens)}
}

// Apply returns a copy of table with Tokens and Categories set on every record.
func (p *Pipeline) Apply(table worklog.Table) worklog.Table {
	out := worklog.Table{
		Columns: append([]string(nil), table.Columns...),
		Records: make([]worklog.Record, len(table.Records)),
	}
	for i, record := range table.Records {
		result := p.Process(record.Task, record.TaskPresent)
		record.Tokens = result.Tokens
		record.Categories = result.Categories
		out.Records[i] = record
	}
	return out
}
