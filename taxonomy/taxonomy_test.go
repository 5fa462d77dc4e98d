package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_FirstMatchWins(t *testing.T) {
	t.Parallel()

	tax := Default()
	assert.Equal(t, "technology", tax.CategoryOf("database"))
	assert.Equal(t, "actions", tax.CategoryOf("reviewed"))
	assert.Equal(t, "errors", tax.CategoryOf("bug"))
	assert.Equal(t, DefaultFallback, tax.CategoryOf("lunch"))
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	tax := Default()
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{name: "empty", tokens: nil, want: []string{"miscellaneous"}},
		{name: "single", tokens: []string{"database"}, want: []string{"technology"}},
		{name: "sorted union", tokens: []string{"reviewed", "database", "bug"}, want: []string{"actions", "errors", "technology"}},
		{name: "duplicates", tokens: []string{"sql", "html", "sql"}, want: []string{"technology"}},
		{name: "with fallback", tokens: []string{"meeting", "lunch"}, want: []string{"meetings", "miscellaneous"}},
		{name: "nan", tokens: []string{"nan"}, want: []string{"miscellaneous"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tax.Categorize(tc.tokens))
		})
	}
}

func TestNew_KeywordClaimedByEarlierCategory(t *testing.T) {
	t.Parallel()

	tax, err := New("other",
		Category{Name: "first", Keywords: []string{"shared"}},
		Category{Name: "second", Keywords: []string{"Shared", "own"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "first", tax.CategoryOf("shared"))
	assert.Equal(t, "second", tax.CategoryOf("own"))
	assert.Equal(t, []string{"first", "second", "other"}, tax.Names())
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		fallback   string
		categories []Category
	}{
		{name: "no fallback", fallback: " "},
		{name: "unnamed category", fallback: "misc", categories: []Category{{Name: ""}}},
		{name: "duplicate", fallback: "misc", categories: []Category{{Name: "a"}, {Name: "a"}}},
		{name: "fallback reused", fallback: "misc", categories: []Category{{Name: "misc"}}},
	}

	for _, tc := range tests {
		_, err := New(tc.fallback, tc.categories...)
		require.ErrorIs(t, err, ErrInvalidTaxonomy, tc.name)
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	t.Parallel()

	tax := Default()
	categories := tax.Categories()
	require.Len(t, categories, 8)
	categories[0].Keywords[0] = "changed"
	assert.Equal(t, "website", tax.Categories()[0].Keywords[0])
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `categories:
  - name: infra
    keywords: [server, deploy]
  - name: people
    keywords: [hiring]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tax, err := LoadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFallback, tax.Fallback())
	assert.Equal(t, []string{"infra", "miscellaneous"}, tax.Categorize([]string{"deploy", "coffee"}))
}

func TestParse_RejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("fallback: misc\ncategories:\n  - name: a\n  - name: a\n"))
	require.ErrorIs(t, err, ErrInvalidTaxonomy)
}
