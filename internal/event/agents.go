package event

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"launchpad/internal/catalog"
	"launchpad/internal/llm"
	jsonx "launchpad/internal/shared/json"
	"launchpad/internal/swarm"
)

// Agents turns the five content domains into swarm tasks backed by an LLM.
type Agents struct {
	client  llm.Client
	catalog *catalog.Catalog
}

// NewAgents returns agents that call client and take portraits from cat.
func NewAgents(client llm.Client, cat *catalog.Catalog) *Agents {
	return &Agents{client: client, catalog: cat}
}

// Tasks returns one task per agent with fb supplying the fallbacks.
func (a *Agents) Tasks(fb Fallbacks) []swarm.Task {
	in := fb.Input
	return []swarm.Task{
		swarm.Spec[[]Speaker]{
			Name:     TaskSpeakers,
			Work:     func(ctx context.Context) ([]Speaker, error) { return a.speakers(ctx, in) },
			Fallback: fb.Speakers,
			Validate: validateSpeakers,
		},
		swarm.Spec[Venue]{
			Name:     TaskVenue,
			Work:     func(ctx context.Context) (Venue, error) { return a.venue(ctx, in) },
			Fallback: fb.Venue,
			Validate: validateVenue,
		},
		swarm.Spec[[]ScheduleItem]{
			Name:     TaskSchedule,
			Work:     func(ctx context.Context) ([]ScheduleItem, error) { return a.schedule(ctx, in) },
			Fallback: fb.Schedule,
			Validate: validateSchedule,
		},
		swarm.Spec[Pricing]{
			Name:     TaskPricing,
			Work:     func(ctx context.Context) (Pricing, error) { return a.pricing(ctx, in) },
			Fallback: fb.Pricing,
			Validate: validatePricing,
		},
		swarm.Spec[Branding]{
			Name:     TaskBranding,
			Work:     func(ctx context.Context) (Branding, error) { return a.branding(ctx, in) },
			Fallback: fb.Branding,
			Validate: validateBranding,
		},
	}
}

type speakerPayload struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Bio  string `json:"bio"`
}

func (a *Agents) speakers(ctx context.Context, in Input) ([]Speaker, error) {
	hint := ""
	if in.SpeakersHint != "" {
		hint = " Preferences: " + in.SpeakersHint
	}
	raw, err := a.client.CompleteJSON(ctx, llm.JSONRequest{
		Task:   TaskSpeakers,
		System: "You are a conference speaker curator. Generate diverse, realistic speakers. Return ONLY JSON.",
		User: fmt.Sprintf(`Generate %d speakers for a %s %s conference in %s (%d attendees, %s budget).%s

Return JSON: { "speakers": [{ "name": "Full Name", "role": "Title at Company", "bio": "One sentence bio" }] }
Ensure gender/ethnic diversity. Include mix of industry leaders, academics, and practitioners.`,
			in.SpeakerCount(), in.Vibe, in.Topic, in.City, in.Capacity, in.Budget, hint),
		Temperature: 0.9,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}
	payload, err := jsonx.DecodeList[speakerPayload](raw, "speakers")
	if err != nil {
		return nil, err
	}

	speakers := make([]Speaker, 0, len(payload))
	for _, s := range payload {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		speakers = append(speakers, Speaker{
			Name:     name,
			Role:     strings.TrimSpace(s.Role),
			Initials: Initials(name),
			Bio:      strings.TrimSpace(s.Bio),
			PhotoURL: a.catalog.SpeakerPhoto(len(speakers)),
		})
	}
	return speakers, nil
}

func (a *Agents) venue(ctx context.Context, in Input) (Venue, error) {
	raw, err := a.client.CompleteJSON(ctx, llm.JSONRequest{
		Task:   TaskVenue,
		System: "You select conference venues. Return ONLY JSON.",
		User: fmt.Sprintf(`Pick a specific, real venue in %s for a %s %s conference with %d attendees (%s budget).
Return JSON: { "name": "Venue Name", "address": "Full street address" }`,
			in.City, in.Vibe, in.Topic, in.Capacity, in.Budget),
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return Venue{}, err
	}
	var venue Venue
	if err := jsonx.DecodeLenient(raw, &venue); err != nil {
		return Venue{}, err
	}
	venue.Name = strings.TrimSpace(venue.Name)
	venue.Address = strings.TrimSpace(venue.Address)
	if venue.Address == "" {
		venue.Address = in.City
	}
	return venue, nil
}

func (a *Agents) schedule(ctx context.Context, in Input) ([]ScheduleItem, error) {
	shape := `Build a full-day schedule (9AM-6PM) for a %s %s conference. 12 sessions.
Return JSON: { "schedule": [{ "time": "9:00 AM", "title": "Session Title", "speaker": "Speaker Name", "track": "Track Name" }] }
Include keynotes, panels, workshops, breaks, and networking. Use 4 tracks.`
	user := fmt.Sprintf(shape, in.Vibe, in.Topic)
	if in.Days > 1 {
		user = fmt.Sprintf(`Build a %d-day schedule (9AM-6PM each day) for a %s %s conference. 12 sessions per day.
Return JSON: { "schedule": [{ "time": "Day 1 · 9:00 AM", "title": "Session Title", "speaker": "Speaker Name", "track": "Track Name" }] }
Use "Day N · HH:MM AM/PM" for time. Include keynotes, panels, workshops, breaks, and networking. Use 4 tracks.`,
			in.Days, in.Vibe, in.Topic)
	}

	raw, err := a.client.CompleteJSON(ctx, llm.JSONRequest{
		Task:        TaskSchedule,
		System:      "You build conference schedules. Return ONLY JSON.",
		User:        user,
		Temperature: 0.8,
		MaxTokens:   1500 * in.Days,
	})
	if err != nil {
		return nil, err
	}
	items, err := jsonx.DecodeList[ScheduleItem](raw, "schedule")
	if err != nil {
		return nil, err
	}

	schedule := make([]ScheduleItem, 0, len(items))
	for _, item := range items {
		item.Title = strings.TrimSpace(item.Title)
		if item.Title == "" {
			continue
		}
		item.Time = strings.TrimSpace(item.Time)
		item.Track = strings.TrimSpace(item.Track)
		if item.Speaker = strings.TrimSpace(item.Speaker); item.Speaker == "" {
			item.Speaker = speakerTBA
		}
		schedule = append(schedule, item)
	}
	return schedule, nil
}

func (a *Agents) pricing(ctx context.Context, in Input) (Pricing, error) {
	raw, err := a.client.CompleteJSON(ctx, llm.JSONRequest{
		Task:   TaskPricing,
		System: "You set conference ticket pricing. Return ONLY JSON.",
		User: fmt.Sprintf(`Set ticket pricing for a %s %s conference in %s. Budget tier: %s. Capacity: %d.
Return JSON: { "early_bird": "$XXX", "regular": "$XXX", "vip": "$X,XXX", "currency": "USD" }
Price appropriately for the city and budget tier.`,
			in.Vibe, in.Topic, in.City, in.Budget, in.Capacity),
		Temperature: 0.5,
		MaxTokens:   200,
	})
	if err != nil {
		return Pricing{}, err
	}
	var pricing Pricing
	if err := jsonx.DecodeLenient(raw, &pricing); err != nil {
		return Pricing{}, err
	}
	if pricing.Currency = strings.TrimSpace(pricing.Currency); pricing.Currency == "" {
		pricing.Currency = "USD"
	}
	return pricing, nil
}

func (a *Agents) branding(ctx context.Context, in Input) (Branding, error) {
	raw, err := a.client.CompleteJSON(ctx, llm.JSONRequest{
		Task:   TaskBranding,
		System: "You name and brand conferences. Return ONLY JSON.",
		User: fmt.Sprintf(`Create branding for a %s %s conference in %s.
Return JSON: {
  "name": "Catchy conference name (max 40 chars)",
  "tagline": "One-line tagline",
  "description": "2-sentence description for the event page",
  "topic_key": "one of: %s"
}`, in.Vibe, in.Topic, in.City, strings.Join(TopicKeys, ", ")),
		Temperature: 0.9,
		MaxTokens:   300,
	})
	if err != nil {
		return Branding{}, err
	}
	var branding Branding
	if err := jsonx.DecodeLenient(raw, &branding); err != nil {
		return Branding{}, err
	}
	branding.Name = strings.TrimSpace(branding.Name)
	branding.Tagline = strings.TrimSpace(branding.Tagline)
	branding.Description = strings.TrimSpace(branding.Description)
	branding.TopicKey = strings.ToLower(strings.TrimSpace(branding.TopicKey))
	return branding, nil
}

func validateSpeakers(speakers []Speaker) error {
	if len(speakers) == 0 {
		return errors.New("no speakers")
	}
	return nil
}

func validateVenue(venue Venue) error {
	if venue.Name == "" {
		return errors.New("venue name is empty")
	}
	return nil
}

func validateSchedule(schedule []ScheduleItem) error {
	if len(schedule) == 0 {
		return errors.New("no sessions")
	}
	return nil
}

func validatePricing(pricing Pricing) error {
	if strings.TrimSpace(pricing.EarlyBird) == "" || strings.TrimSpace(pricing.Regular) == "" {
		return errors.New("early_bird and regular prices are required")
	}
	return nil
}

func validateBranding(branding Branding) error {
	if branding.Name == "" {
		return errors.New("name is empty")
	}
	return nil
}
