// Package event builds conference content packages, either from static
// templates or by merging the outputs of parallel generation agents.
package event

import (
	"time"

	"launchpad/internal/catalog"
)

// Generation modes recorded in Metadata.Mode.
const (
	ModeTemplate = "template"
	ModeSwarm    = "swarm"
)

// StatusDraft is the status of every freshly generated event.
const StatusDraft = "draft"

// Venue is where the event takes place.
type Venue struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	CapacityNote string `json:"capacity_note"`
}

// Speaker is a person on the programme.
type Speaker struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Initials string `json:"initials"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
}

// ScheduleItem is one slot of the programme.
type ScheduleItem struct {
	Time    string `json:"time"`
	Title   string `json:"title"`
	Speaker string `json:"speaker"`
	Track   string `json:"track"`
}

// Pricing and Theme share the catalog's shape.
type (
	Pricing = catalog.Pricing
	Theme   = catalog.Theme
)

// Branding is the naming block produced by the branding agent.
type Branding struct {
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	TopicKey    string `json:"topic_key"`
}

// Metadata describes how an event was produced. It never changes the content
// fields.
type Metadata struct {
	Mode    string           `json:"mode"`
	RunID   string           `json:"run_id,omitempty"`
	Timings map[string]int64 `json:"timings"`
	Errors  []string         `json:"errors"`
}

// Event is a complete generated content package.
type Event struct {
	ID            string         `json:"id"`
	Slug          string         `json:"slug"`
	Name          string         `json:"name"`
	Topic         string         `json:"topic"`
	City          string         `json:"city"`
	Date          string         `json:"date"`
	Capacity      int            `json:"capacity"`
	Budget        string         `json:"budget"`
	Vibe          string         `json:"vibe"`
	Days          int            `json:"days"`
	Venue         Venue          `json:"venue"`
	Tracks        []string       `json:"tracks"`
	Speakers      []Speaker      `json:"speakers"`
	Schedule      []ScheduleItem `json:"schedule"`
	Pricing       Pricing        `json:"pricing"`
	Description   string         `json:"description"`
	Tagline       string         `json:"tagline"`
	TopicKey      string         `json:"topic_key"`
	Theme         Theme          `json:"theme"`
	HeroImageURL  string         `json:"hero_image_url"`
	HeroMediaType string         `json:"hero_media_type"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	Generation    Metadata       `json:"generation"`
}
