package taxonomy

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultFallback = "miscellaneous"

var ErrInvalidTaxonomy = errors.New("invalid taxonomy")

type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is an ordered keyword map. A token belongs to the first category,
// in declaration order, whose keywords contain it.
type Taxonomy struct {
	fallback   string
	categories []Category
	index      map[string]string
}

func New(fallback string, categories ...Category) (*Taxonomy, error) {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		return nil, fmt.Errorf("%w: fallback category is required", ErrInvalidTaxonomy)
	}

	t := &Taxonomy{
		fallback:   fallback,
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]string, 128),
	}
	seen := make(map[string]struct{}, len(categories))
	for i, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", ErrInvalidTaxonomy, i)
		}
		if name == fallback {
			return nil, fmt.Errorf("%w: category %q collides with the fallback", ErrInvalidTaxonomy, name)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidTaxonomy, name)
		}
		seen[name] = struct{}{}

		keywords := make([]string, 0, len(category.Keywords))
		for _, keyword := range category.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}
			keywords = append(keywords, keyword)
			if _, claimed := t.index[keyword]; !claimed {
				t.index[keyword] = name
			}
		}
		t.categories = append(t.categories, Category{Name: name, Keywords: keywords})
	}
	return t, nil
}

// Default returns the built-in worklog taxonomy.
func Default() *Taxonomy {
	t, err := New(DefaultFallback,
		Category{Name: "technology", Keywords: strings.Fields("website sql backend repository ai coding file database application program flask html css javascript")},
		Category{Name: "actions", Keywords: strings.Fields("reviewed created tested fixed debugged implemented researched planned updated designed documented analyzed optimized added removed")},
		Category{Name: "design", Keywords: strings.Fields("logo design styling layout responsive theme navbar icon image photo redesigning wireframes")},
		Category{Name: "writing", Keywords: strings.Fields("blog guide documentation report note summary draft content copywriting")},
		Category{Name: "meetings", Keywords: strings.Fields("meeting call discussion session presentation team")},
		Category{Name: "business", Keywords: strings.Fields("grant funding startup loan entrepreneur business government")},
		Category{Name: "errors", Keywords: strings.Fields("bug error issue fixing debugging problem mistake")},
		Category{Name: "time", Keywords: strings.Fields("hour day week month year")},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// CategoryOf returns the category owning token, or the fallback.
func (t *Taxonomy) CategoryOf(token string) string {
	if name, ok := t.index[token]; ok {
		return name
	}
	return t.fallback
}

// Categorize maps every token to its category and returns the sorted,
// deduplicated union. It never returns an empty slice.
func (t *Taxonomy) Categorize(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{t.fallback}
	}

	seen := make(map[string]struct{}, 4)
	out := make([]string, 0, 4)
	for _, token := range tokens {
		name := t.CategoryOf(token)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (t *Taxonomy) Fallback() string {
	return t.fallback
}

// Names returns the category names in declaration order followed by the fallback.
func (t *Taxonomy) Names() []string {
	names := make([]string, 0, len(t.categories)+1)
	for _, category := range t.categories {
		names = append(names, category.Name)
	}
	return append(names, t.fallback)
}

// Categories returns a copy of the declared categories.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, category := range t.categories {
		out[i] = Category{Name: category.Name, Keywords: append([]string(nil), category.Keywords...)}
	}
	return out
}

type yamlTaxonomy struct {
	Fallback   string     `yaml:"fallback"`
	Categories []Category `yaml:"categories"`
}

// Parse builds a taxonomy from YAML content. An omitted fallback defaults to
// "miscellaneous".
func Parse(content []byte) (*Taxonomy, error) {
	var doc yamlTaxonomy
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy yaml: %w", err)
	}
	if strings.TrimSpace(doc.Fallback) == "" {
		doc.Fallback = DefaultFallback
	}
	return New(doc.Fallback, doc.Categories...)
}

func LoadYAML(path string) (*Taxonomy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file %s: %w", path, err)
	}
	t, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", path, err)
	}
	return t, nil
}
