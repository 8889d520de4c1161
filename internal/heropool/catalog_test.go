package heropool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(CatalogConfig{
		Rules: []Rule{
			{Category: "ai", Keywords: []string{"ai", "machine learning"}},
			{Category: "cybersecurity", Keywords: []string{"cyber", "security"}},
			{Category: "music", Keywords: []string{"festival"}},
		},
		DefaultCategory: "keynote",
		Topics: map[string][]string{
			"ai":            {"ai-1", "ai-2", "u-1"},
			"cybersecurity": {"cyber-1"},
			"keynote":       {"key-1"},
			"music":         {},
		},
		Universal: []string{"u-1", "u-2"},
	})
	require.NoError(t, err)
	return catalog
}

func TestCatalogCategoryFirstMatchWins(t *testing.T) {
	catalog := testCatalog(t)
	assert.Equal(t, "ai", catalog.Category("AI Security Summit"))
	assert.Equal(t, "cybersecurity", catalog.Category("Cyber Defense"))
	assert.Equal(t, "keynote", catalog.Category("Pottery"))
	assert.Equal(t, "keynote", catalog.Category(""))
}

func TestCatalogPoolForAppendsUniversal(t *testing.T) {
	catalog := testCatalog(t)
	assert.Equal(t, Pool{"ai-1", "ai-2", "u-1", "u-2"}, catalog.PoolFor("machine learning"))
	assert.Equal(t, Pool{"u-1", "u-2"}, catalog.PoolFor("music festival"))
}

func TestCatalogUnknownCategoryUsesUniversal(t *testing.T) {
	catalog, err := NewCatalog(CatalogConfig{DefaultCategory: "missing", Universal: []string{"u"}})
	require.NoError(t, err)
	assert.Equal(t, Pool{"u"}, catalog.PoolFor("anything"))
}

func TestCatalogRequiresUniversal(t *testing.T) {
	_, err := NewCatalog(CatalogConfig{Topics: map[string][]string{"ai": {"x"}}})
	assert.ErrorIs(t, err, ErrEmptyPool)
}
