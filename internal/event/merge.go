package event

import (
	"strconv"
	"strings"

	"launchpad/internal/swarm"
)

// Agent task names.
const (
	TaskSpeakers = "speakers"
	TaskVenue    = "venue"
	TaskSchedule = "schedule"
	TaskPricing  = "pricing"
	TaskBranding = "branding"
)

// TopicKeys are the topic keys an event may carry.
var TopicKeys = []string{"ai", "web3", "climate", "health", "fintech", "general"}

const defaultTopicKey = "general"

var defaultTracks = []string{"Main Stage", "Workshop", "Panel", "Lightning Talks"}

// DefaultTracks returns the tracks used when a schedule names fewer than two.
func DefaultTracks() []string {
	return append([]string(nil), defaultTracks...)
}

const maxTracks = 4

// Fallbacks carry the request context and one fallback value per agent.
type Fallbacks struct {
	Input    Input
	TopicKey string
	Theme    Theme
	HeroURL  string

	Speakers []Speaker
	Venue    Venue
	Schedule []ScheduleItem
	Pricing  Pricing
	Branding Branding
}

// SwarmFallbacks builds the per-agent fallbacks for in: template speakers and
// schedule, a generic venue, mid-range pricing and plain branding keyed to the
// detected topic.
func (g *TemplateGenerator) SwarmFallbacks(in Input) Fallbacks {
	in = in.Normalize()
	template := g.Generate(in)
	topicLower := strings.ToLower(in.Topic)

	return Fallbacks{
		Input:    in,
		TopicKey: template.TopicKey,
		Theme:    template.Theme,
		HeroURL:  template.HeroImageURL,
		Speakers: template.Speakers,
		Venue:    Venue{Name: in.City + " Convention Center", Address: "Downtown " + in.City},
		Schedule: template.Schedule,
		Pricing:  Pricing{EarlyBird: "$199", Regular: "$349", VIP: "$799", Currency: "USD"},
		Branding: Branding{
			Name:        in.Topic + " Summit " + in.City,
			Tagline:     "The future of " + topicLower,
			Description: "Join " + strconv.Itoa(in.Capacity) + " leaders for a " + in.Vibe + " " + topicLower + " experience in " + in.City + ".",
			TopicKey:    template.TopicKey,
		},
	}
}

// withDefaults fills every empty fallback so Merge is total even for a zero
// Fallbacks value.
func (fb Fallbacks) withDefaults() Fallbacks {
	in := fb.Input
	if in.Capacity <= 0 {
		in.Capacity = DefaultCapacity
	}
	if in.Budget == "" {
		in.Budget = DefaultBudget
	}
	if in.Vibe == "" {
		in.Vibe = DefaultVibe
	}
	if in.Days < 1 || in.Days > 3 {
		in.Days = 1
	}
	if in.Slug == "" {
		in.Slug = Slug(in.Topic, in.City, in.Date)
	}
	fb.Input = in

	place := strings.TrimSpace(in.City)
	if place == "" {
		place = "Main"
	}
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		topic = "Launchpad"
	}

	if fb.TopicKey == "" {
		fb.TopicKey = defaultTopicKey
	}
	if fb.Theme.ID == "" {
		fb.Theme = DefaultTheme
	}
	if fb.Speakers == nil {
		fb.Speakers = []Speaker{}
	}
	if fb.Venue.Name == "" {
		fb.Venue.Name = place + " Convention Center"
	}
	if fb.Venue.Address == "" {
		fb.Venue.Address = "Downtown " + place
	}
	if fb.Schedule == nil {
		fb.Schedule = BuildSchedule(topic, fb.Speakers, defaultTracks, in.Days)
	}
	if fb.Pricing.Regular == "" || fb.Pricing.EarlyBird == "" {
		fb.Pricing = Pricing{EarlyBird: "$199", Regular: "$349", VIP: "$799", Currency: "USD"}
	}
	if fb.Pricing.Currency == "" {
		fb.Pricing.Currency = "USD"
	}
	if fb.Branding.Name == "" {
		fb.Branding.Name = strings.TrimSpace(topic + " Summit " + strings.TrimSpace(in.City))
	}
	if fb.Branding.Tagline == "" {
		fb.Branding.Tagline = "The future of " + strings.ToLower(topic)
	}
	if fb.Branding.Description == "" {
		fb.Branding.Description = "Join " + strconv.Itoa(in.Capacity) + " leaders for a " + in.Vibe + " " + strings.ToLower(topic) + " experience in " + place + "."
	}
	return fb
}

// Merge combines agent outcomes into an event. Missing, failed or mistyped
// outcomes resolve to the matching fallback; the result is total.
func Merge(fb Fallbacks, outcomes swarm.Outcomes) Event {
	fb = fb.withDefaults()
	in := fb.Input

	speakers := swarm.ValueOf(outcomes, TaskSpeakers, fb.Speakers)
	venue := swarm.ValueOf(outcomes, TaskVenue, fb.Venue)
	schedule := swarm.ValueOf(outcomes, TaskSchedule, fb.Schedule)
	pricing := swarm.ValueOf(outcomes, TaskPricing, fb.Pricing)
	branding := swarm.ValueOf(outcomes, TaskBranding, fb.Branding)

	if speakers == nil {
		speakers = fb.Speakers
	}
	if schedule == nil {
		schedule = fb.Schedule
	}
	if venue.Name == "" {
		venue = fb.Venue
	}
	if pricing.Regular == "" {
		pricing = fb.Pricing
	}
	if branding.Name == "" {
		branding.Name = fb.Branding.Name
	}
	if branding.Tagline == "" {
		branding.Tagline = fb.Branding.Tagline
	}
	if branding.Description == "" {
		branding.Description = fb.Branding.Description
	}

	return Event{
		Slug:          in.Slug,
		Name:          branding.Name,
		Topic:         in.Topic,
		City:          in.City,
		Date:          in.Date,
		Capacity:      in.Capacity,
		Budget:        in.Budget,
		Vibe:          in.Vibe,
		Days:          in.Days,
		Venue:         venue,
		Tracks:        DeriveTracks(schedule),
		Speakers:      speakers,
		Schedule:      schedule,
		Pricing:       pricing,
		Description:   branding.Description,
		Tagline:       branding.Tagline,
		TopicKey:      resolveTopicKey(branding.TopicKey, fb.TopicKey),
		Theme:         fb.Theme,
		HeroImageURL:  fb.HeroURL,
		HeroMediaType: "image",
		Status:        StatusDraft,
		Generation:    Metadata{Mode: ModeSwarm},
	}
}

// DeriveTracks collects the distinct non-empty schedule tracks in order,
// capped at four. Fewer than two yields the default tracks.
func DeriveTracks(schedule []ScheduleItem) []string {
	seen := make(map[string]struct{}, maxTracks)
	tracks := make([]string, 0, maxTracks)
	for _, item := range schedule {
		track := strings.TrimSpace(item.Track)
		if track == "" {
			continue
		}
		if _, ok := seen[track]; ok {
			continue
		}
		seen[track] = struct{}{}
		tracks = append(tracks, track)
		if len(tracks) == maxTracks {
			break
		}
	}
	if len(tracks) < 2 {
		return DefaultTracks()
	}
	return tracks
}

// IsTopicKey reports whether key is one of TopicKeys.
func IsTopicKey(key string) bool {
	for _, known := range TopicKeys {
		if key == known {
			return true
		}
	}
	return false
}

func resolveTopicKey(branded, detected string) string {
	if key := strings.ToLower(strings.TrimSpace(branded)); IsTopicKey(key) {
		return key
	}
	if IsTopicKey(detected) {
		return detected
	}
	return defaultTopicKey
}
