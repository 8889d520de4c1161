// Package catalog holds the static tables behind template generation: topic
// detection, tracks, speaker rosters, venues, pricing tiers, vibes, themes and
// the hero image pools.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"launchpad/internal/heropool"
)

//go:embed data.yaml
var embedded []byte

// Speaker is a roster entry.
type Speaker struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// Venue is a known venue for a city.
type Venue struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// Pricing is one budget tier.
type Pricing struct {
	EarlyBird string `yaml:"early_bird" json:"early_bird"`
	Regular   string `yaml:"regular" json:"regular"`
	VIP       string `yaml:"vip" json:"vip"`
	Currency  string `yaml:"currency" json:"currency"`
}

// Vibe carries the name suffixes and tagline format for an event vibe.
type Vibe struct {
	Names   []string `yaml:"names"`
	Tagline string   `yaml:"tagline"`
}

// Theme is a visual identity for the generated event page.
type Theme struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	FontDisplay     string `yaml:"font_display" json:"font_display"`
	FontMono        string `yaml:"font_mono" json:"font_mono"`
	Background      string `yaml:"bg" json:"bg"`
	BgGradient      string `yaml:"bg_gradient" json:"bg_gradient,omitempty"`
	Accent          string `yaml:"accent" json:"accent"`
	AccentSecondary string `yaml:"accent_secondary" json:"accent_secondary,omitempty"`
	Text            string `yaml:"text" json:"text"`
	TextMuted       string `yaml:"text_muted" json:"text_muted"`
	CardBg          string `yaml:"card_bg" json:"card_bg"`
	CardBorder      string `yaml:"card_border" json:"card_border"`
	ButtonRadius    string `yaml:"button_radius" json:"button_radius"`
}

// TopicRule matches a topic key when any prefix starts a word of the topic.
type TopicRule struct {
	Key      string   `yaml:"key"`
	Prefixes []string `yaml:"prefixes"`
}

// HeroTables configure the hero image catalog.
type HeroTables struct {
	DefaultCategory string              `yaml:"default_category"`
	Rules           []heropool.Rule     `yaml:"rules"`
	Topics          map[string][]string `yaml:"topics"`
	Universal       []string            `yaml:"universal"`
}

// Data is the raw document.
type Data struct {
	TopicRules     []TopicRule          `yaml:"topic_rules"`
	DefaultTopic   string               `yaml:"default_topic"`
	Tracks         map[string][]string  `yaml:"tracks"`
	DefaultTracks  []string             `yaml:"default_tracks"`
	Speakers       map[string][]Speaker `yaml:"speakers"`
	SpeakerAliases map[string]string    `yaml:"speaker_aliases"`
	Venues         map[string]Venue     `yaml:"venues"`
	Pricing        map[string]Pricing   `yaml:"pricing"`
	DefaultTier    string               `yaml:"default_tier"`
	Vibes          map[string]Vibe      `yaml:"vibes"`
	DefaultVibe    string               `yaml:"default_vibe"`
	SpeakerPhotos  []string             `yaml:"speaker_photos"`
	Themes         []Theme              `yaml:"themes"`
	Hero           HeroTables           `yaml:"hero"`
}

type compiledRule struct {
	key     string
	pattern *regexp.Regexp
}

// Catalog is an immutable, validated view over Data.
type Catalog struct {
	data  Data
	rules []compiledRule
	hero  *heropool.Catalog
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded tables.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embedded)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for program start-up paths.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Parse decodes and validates a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(data)
}

// New validates data and compiles its topic rules.
func New(data Data) (*Catalog, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	rules := make([]compiledRule, 0, len(data.TopicRules))
	for _, rule := range data.TopicRules {
		quoted := make([]string, 0, len(rule.Prefixes))
		for _, prefix := range rule.Prefixes {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(prefix)))
		}
		pattern, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)`)
		if err != nil {
			return nil, fmt.Errorf("topic rule %s: %w", rule.Key, err)
		}
		rules = append(rules, compiledRule{key: rule.Key, pattern: pattern})
	}

	hero, err := heropool.NewCatalog(heropool.CatalogConfig{
		Rules:           data.Hero.Rules,
		DefaultCategory: data.Hero.DefaultCategory,
		Topics:          data.Hero.Topics,
		Universal:       data.Hero.Universal,
	})
	if err != nil {
		return nil, fmt.Errorf("hero tables: %w", err)
	}

	return &Catalog{data: data, rules: rules, hero: hero}, nil
}

// Validate checks the invariants the generators rely on.
func (d Data) Validate() error {
	if d.DefaultTopic == "" {
		return fmt.Errorf("default_topic is required")
	}
	if len(d.Tracks[d.DefaultTopic]) == 0 {
		return fmt.Errorf("tracks for default topic %q are required", d.DefaultTopic)
	}
	if len(d.DefaultTracks) == 0 {
		return fmt.Errorf("default_tracks is required")
	}
	if len(d.Speakers[d.DefaultTopic]) == 0 {
		return fmt.Errorf("speakers for default topic %q are required", d.DefaultTopic)
	}
	for alias, target := range d.SpeakerAliases {
		if len(d.Speakers[target]) == 0 {
			return fmt.Errorf("speaker alias %s points at empty roster %q", alias, target)
		}
	}
	for _, rule := range d.TopicRules {
		if rule.Key == "" || len(rule.Prefixes) == 0 {
			return fmt.Errorf("topic rule needs a key and prefixes")
		}
	}
	if _, ok := d.Pricing[d.DefaultTier]; !ok {
		return fmt.Errorf("default_tier %q has no pricing", d.DefaultTier)
	}
	if vibe, ok := d.Vibes[d.DefaultVibe]; !ok || len(vibe.Names) == 0 || vibe.Tagline == "" {
		return fmt.Errorf("default_vibe %q is incomplete", d.DefaultVibe)
	}
	if len(d.SpeakerPhotos) == 0 {
		return fmt.Errorf("speaker_photos is required")
	}
	if len(d.Themes) == 0 {
		return fmt.Errorf("themes is required")
	}
	return nil
}

// DetectTopicKey maps free text to one of the topic keys.
func (c *Catalog) DetectTopicKey(topic string) string {
	lowered := strings.ToLower(topic)
	for _, rule := range c.rules {
		if rule.pattern.MatchString(lowered) {
			return rule.key
		}
	}
	return c.data.DefaultTopic
}

// KnownTopic reports whether key is a detectable topic key.
func (c *Catalog) KnownTopic(key string) bool {
	if key == c.data.DefaultTopic {
		return true
	}
	for _, rule := range c.rules {
		if rule.key == key {
			return true
		}
	}
	return false
}

// Tracks returns the four tracks for a topic key.
func (c *Catalog) Tracks(topicKey string) []string {
	tracks, ok := c.data.Tracks[topicKey]
	if !ok || len(tracks) == 0 {
		tracks = c.data.Tracks[c.data.DefaultTopic]
	}
	return append([]string(nil), tracks...)
}

// DefaultTracks is used when a schedule yields too few tracks.
func (c *Catalog) DefaultTracks() []string {
	return append([]string(nil), c.data.DefaultTracks...)
}

func (c *Catalog) roster(topicKey string) []Speaker {
	if alias, ok := c.data.SpeakerAliases[topicKey]; ok {
		topicKey = alias
	}
	if roster := c.data.Speakers[topicKey]; len(roster) > 0 {
		return roster
	}
	return c.data.Speakers[c.data.DefaultTopic]
}

// Speakers returns count speakers for a topic. The topic's own roster comes
// first, read from start modulo its length and wrapping around; when it is
// too short the other rosters are appended in key order, skipping names
// already present, and the result cycles if still short.
func (c *Catalog) Speakers(topicKey string, count int, start uint32) []Speaker {
	if count <= 0 {
		return nil
	}
	primary := c.roster(topicKey)
	if len(primary) > 0 {
		offset := int(start % uint32(len(primary)))
		primary = append(append([]Speaker(nil), primary[offset:]...), primary[:offset]...)
	}
	out := make([]Speaker, 0, count)
	seen := make(map[string]struct{}, count)
	add := func(list []Speaker) {
		for _, s := range list {
			if len(out) == count {
				return
			}
			if _, dup := seen[s.Name]; dup {
				continue
			}
			seen[s.Name] = struct{}{}
			out = append(out, s)
		}
	}
	add(primary)

	if len(out) < count {
		keys := make([]string, 0, len(c.data.Speakers))
		for key := range c.data.Speakers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			add(c.data.Speakers[key])
		}
	}

	for i := 0; len(out) < count && len(out) > 0; i++ {
		out = append(out, out[i])
	}
	return out
}

// Venue looks up a known venue by city, case-insensitively.
func (c *Catalog) Venue(city string) (Venue, bool) {
	venue, ok := c.data.Venues[strings.ToLower(strings.TrimSpace(city))]
	return venue, ok
}

// Pricing returns the tier for budget, or the default tier.
func (c *Catalog) Pricing(budget string) Pricing {
	if tier, ok := c.data.Pricing[strings.ToLower(strings.TrimSpace(budget))]; ok {
		return tier
	}
	return c.data.Pricing[c.data.DefaultTier]
}

// Vibe returns the vibe table entry, or the default vibe.
func (c *Catalog) Vibe(vibe string) Vibe {
	if entry, ok := c.data.Vibes[strings.ToLower(strings.TrimSpace(vibe))]; ok && len(entry.Names) > 0 {
		return entry
	}
	return c.data.Vibes[c.data.DefaultVibe]
}

// SpeakerPhoto cycles through the portrait pool.
func (c *Catalog) SpeakerPhoto(index int) string {
	if index < 0 {
		index = -index
	}
	return c.data.SpeakerPhotos[index%len(c.data.SpeakerPhotos)]
}

// Themes returns the theme list in declaration order.
func (c *Catalog) Themes() []Theme {
	return append([]Theme(nil), c.data.Themes...)
}

// Hero returns the hero image catalog.
func (c *Catalog) Hero() *heropool.Catalog {
	return c.hero
}
