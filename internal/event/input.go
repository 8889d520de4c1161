package event

import (
	"errors"
	"fmt"
	"strings"
)

// Input defaults applied by Normalize.
const (
	DefaultCapacity = 500
	DefaultBudget   = "growth"
	DefaultVibe     = "professional"
)

// ErrInvalidInput is wrapped by every Validate failure.
var ErrInvalidInput = errors.New("invalid event input")

// Input is what a caller supplies to generate an event.
type Input struct {
	Topic        string `json:"topic"`
	City         string `json:"city"`
	Date         string `json:"date"`
	Capacity     int    `json:"capacity,omitempty"`
	Budget       string `json:"budget,omitempty"`
	Vibe         string `json:"vibe,omitempty"`
	SpeakersHint string `json:"speakers_hint,omitempty"`
	Days         int    `json:"days,omitempty"`
	Enhanced     bool   `json:"enhanced,omitempty"`
	// Slug pins the event slug; when empty one is derived from the input.
	Slug string `json:"slug,omitempty"`
}

// Validate requires topic, city and date.
func (in Input) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(in.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(in.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// Normalize trims text fields and fills defaults. Days outside 1..3 become 1.
func (in Input) Normalize() Input {
	in.Topic = strings.TrimSpace(in.Topic)
	in.City = strings.TrimSpace(in.City)
	in.Date = strings.TrimSpace(in.Date)
	in.SpeakersHint = strings.TrimSpace(in.SpeakersHint)
	if in.Capacity <= 0 {
		in.Capacity = DefaultCapacity
	}
	if in.Budget = strings.ToLower(strings.TrimSpace(in.Budget)); in.Budget == "" {
		in.Budget = DefaultBudget
	}
	if in.Vibe = strings.ToLower(strings.TrimSpace(in.Vibe)); in.Vibe == "" {
		in.Vibe = DefaultVibe
	}
	if in.Days < 1 || in.Days > 3 {
		in.Days = 1
	}
	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = Slug(in.Topic, in.City, in.Date)
	}
	return in
}

// SpeakerCount is 12 in enhanced mode and 8 otherwise.
func (in Input) SpeakerCount() int {
	if in.Enhanced {
		return 12
	}
	return 8
}
