package heropool

import (
	"fmt"
	"strings"
)

// Rule maps free-text topics to a category when any keyword is a substring of
// the lowercased text.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// CatalogConfig is the raw material for a Catalog.
type CatalogConfig struct {
	Rules           []Rule
	DefaultCategory string
	Topics          map[string][]string
	Universal       []string
}

// Catalog narrows free-text topics to a sub-pool: the category's own entries
// followed by the universal entries.
type Catalog struct {
	rules           []Rule
	defaultCategory string
	pools           map[string]Pool
	universal       Pool
}

// NewCatalog validates config. The universal pool must be non-empty so every
// lookup can return a usable pool.
func NewCatalog(config CatalogConfig) (*Catalog, error) {
	universal, err := NewPool(config.Universal...)
	if err != nil {
		return nil, fmt.Errorf("universal pool: %w", err)
	}

	pools := make(map[string]Pool, len(config.Topics))
	for category, ids := range config.Topics {
		merged, err := NewPool(append(append([]string(nil), ids...), universal...)...)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", category, err)
		}
		pools[strings.ToLower(category)] = merged
	}

	rules := make([]Rule, 0, len(config.Rules))
	for _, rule := range config.Rules {
		if strings.TrimSpace(rule.Category) == "" {
			return nil, fmt.Errorf("hero rule without category")
		}
		keywords := make([]string, 0, len(rule.Keywords))
		for _, keyword := range rule.Keywords {
			if keyword = strings.ToLower(strings.TrimSpace(keyword)); keyword != "" {
				keywords = append(keywords, keyword)
			}
		}
		rules = append(rules, Rule{Category: strings.ToLower(rule.Category), Keywords: keywords})
	}

	return &Catalog{
		rules:           rules,
		defaultCategory: strings.ToLower(config.DefaultCategory),
		pools:           pools,
		universal:       universal,
	}, nil
}

// Category returns the first rule whose keyword occurs in text, or the
// default category.
func (c *Catalog) Category(text string) string {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) != "" {
		for _, rule := range c.rules {
			for _, keyword := range rule.Keywords {
				if strings.Contains(lowered, keyword) {
					return rule.Category
				}
			}
		}
	}
	return c.defaultCategory
}

// PoolFor returns the sub-pool for text, falling back to the universal pool.
func (c *Catalog) PoolFor(text string) Pool {
	if pool, ok := c.pools[c.Category(text)]; ok && len(pool) > 0 {
		return pool
	}
	return c.universal
}

// Universal returns the pool every category falls back to.
func (c *Catalog) Universal() Pool {
	return c.universal
}
