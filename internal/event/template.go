package event

import (
	"fmt"
	"strings"

	"launchpad/internal/catalog"
	"launchpad/internal/heropool"
)

// TemplateGenerator builds events from static tables without any network
// access. Output depends only on the input.
type TemplateGenerator struct {
	catalog *catalog.Catalog
}

// NewTemplateGenerator returns a generator over cat.
func NewTemplateGenerator(cat *catalog.Catalog) *TemplateGenerator {
	return &TemplateGenerator{catalog: cat}
}

// Catalog exposes the tables the generator reads.
func (g *TemplateGenerator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Generate produces a complete event for in. The hero image is the stable
// assignment for the event's hero key; uniqueness across events is applied by
// the caller.
func (g *TemplateGenerator) Generate(in Input) Event {
	in = in.Normalize()
	topicKey := g.catalog.DetectTopicKey(in.Topic)
	tracks := g.catalog.Tracks(topicKey)
	speakers := g.Speakers(topicKey, in.SpeakerCount(), heropool.Hash(HeroKey(in.Topic, in.City, in.Slug)))

	return Event{
		Slug:          in.Slug,
		Name:          g.Name(in),
		Topic:         in.Topic,
		City:          in.City,
		Date:          in.Date,
		Capacity:      in.Capacity,
		Budget:        in.Budget,
		Vibe:          in.Vibe,
		Days:          in.Days,
		Venue:         g.Venue(in.City, in.Capacity),
		Tracks:        tracks,
		Speakers:      speakers,
		Schedule:      BuildSchedule(in.Topic, speakers, tracks, in.Days),
		Pricing:       g.catalog.Pricing(in.Budget),
		Description:   Description(in),
		Tagline:       g.Tagline(in.Topic, in.Vibe),
		TopicKey:      topicKey,
		Theme:         SelectTheme(g.catalog.Themes(), in.Topic, in.Vibe, in.Slug),
		HeroImageURL:  g.StableHero(in),
		HeroMediaType: "image",
		Status:        StatusDraft,
		Generation:    Metadata{Mode: ModeTemplate},
	}
}

// Speakers converts count roster entries, starting at seed, into event
// speakers with initials and portraits.
func (g *TemplateGenerator) Speakers(topicKey string, count int, seed uint32) []Speaker {
	roster := g.catalog.Speakers(topicKey, count, seed)
	out := make([]Speaker, 0, len(roster))
	for i, s := range roster {
		out = append(out, Speaker{
			Name:     s.Name,
			Role:     s.Role,
			Initials: Initials(s.Name),
			PhotoURL: g.catalog.SpeakerPhoto(i),
		})
	}
	return out
}

// Venue returns the known venue for city or a generic one sized for capacity.
func (g *TemplateGenerator) Venue(city string, capacity int) Venue {
	if known, ok := g.catalog.Venue(city); ok {
		return Venue{Name: known.Name, Address: known.Address}
	}
	return Venue{
		Name:         city + " Convention Center",
		Address:      "Downtown " + city,
		CapacityNote: fmt.Sprintf("Configured for %d attendees", capacity),
	}
}

// Name is "<first three topic words> <vibe word> <city>". The vibe word is
// chosen by hash so it is stable per input.
func (g *TemplateGenerator) Name(in Input) string {
	words := g.catalog.Vibe(in.Vibe).Names
	suffix := words[heropool.Hash(heropool.Key(in.Topic, in.City, in.Vibe))%uint32(len(words))]
	topicWords := strings.Fields(in.Topic)
	if len(topicWords) > 3 {
		topicWords = topicWords[:3]
	}
	return strings.Join(append(topicWords, suffix, in.City), " ")
}

// Tagline formats the vibe's tagline with the lowercased topic.
func (g *TemplateGenerator) Tagline(topic, vibe string) string {
	return fmt.Sprintf(g.catalog.Vibe(vibe).Tagline, strings.ToLower(topic))
}

// StableHero is the hero image assigned without regard to other events.
func (g *TemplateGenerator) StableHero(in Input) string {
	in = in.Normalize()
	return heropool.Assign(g.HeroPool(in.Topic), HeroKey(in.Topic, in.City, in.Slug), nil)
}

// HeroPool is the candidate pool for a topic.
func (g *TemplateGenerator) HeroPool(topic string) heropool.Pool {
	return g.catalog.Hero().PoolFor(topic)
}

// Description is the standard or enhanced event blurb.
func Description(in Input) string {
	topic := strings.ToLower(in.Topic)
	if in.Enhanced {
		plural := ""
		if in.Days > 1 {
			plural = "s"
		}
		return fmt.Sprintf("Join %d leaders in %s for a %s experience in %s. World-class speakers, hands-on workshops, case studies, and unmatched networking across %d day%s.",
			in.Capacity, topic, in.Vibe, in.City, in.Days, plural)
	}
	return fmt.Sprintf("Join %d leaders in %s for a %s experience in %s. Featuring world-class speakers, hands-on workshops, and unmatched networking.",
		in.Capacity, topic, in.Vibe, in.City)
}
