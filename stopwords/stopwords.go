package stopwords

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed english.txt
var englishList []byte

// Set is an immutable set of lowercase stopwords.
type Set struct {
	words map[string]struct{}
}

// English returns the standard 179-word English stopword list.
func English() *Set {
	words, err := parseLines(englishList)
	if err != nil {
		panic(fmt.Sprintf("embedded stopword list: %v", err))
	}
	return New(words)
}

func New(words []string) *Set {
	set := &Set{words: make(map[string]struct{}, len(words))}
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		set.words[word] = struct{}{}
	}
	return set
}

func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

type yamlFile struct {
	Stopwords []string `yaml:"stopwords"`
}

// Load reads a stopword list from path. Files ending in .yaml or .yml hold a
// "stopwords" sequence; anything else is one word per line with # comments.
func Load(path string) (*Set, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stopwords file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var file yamlFile
		if err := yaml.Unmarshal(content, &file); err != nil {
			return nil, fmt.Errorf("parse stopwords yaml %s: %w", path, err)
		}
		return New(file.Stopwords), nil
	default:
		words, err := parseLines(content)
		if err != nil {
			return nil, fmt.Errorf("parse stopwords file %s: %w", path, err)
		}
		return New(words), nil
	}
}

func parseLines(content []byte) ([]string, error) {
	words := make([]string, 0, 256)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
