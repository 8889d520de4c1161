// Package promo generates promotion kits for generated events: social posts,
// community targets, email drips, partner outreach, SEO copy and ad variants.
package promo

import (
	"errors"
	"fmt"
	"strings"

	"launchpad/internal/event"
)

// ErrInvalidInput is wrapped by every Validate failure.
var ErrInvalidInput = errors.New("invalid promotion input")

// SpeakerRef is the slice of a speaker the bots need.
type SpeakerRef struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Input describes the event being promoted.
type Input struct {
	Name        string        `json:"name"`
	Topic       string        `json:"topic"`
	City        string        `json:"city"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Tagline     string        `json:"tagline"`
	Speakers    []SpeakerRef  `json:"speakers"`
	Tracks      []string      `json:"tracks"`
	Pricing     event.Pricing `json:"pricing"`
	Venue       event.Venue   `json:"venue"`
	Slug        string        `json:"slug"`
}

// Validate requires an event name and topic.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("%w: event name and topic required", ErrInvalidInput)
	}
	return nil
}

// FromEvent builds promotion input from a generated event.
func FromEvent(ev event.Event) Input {
	speakers := make([]SpeakerRef, 0, len(ev.Speakers))
	for _, s := range ev.Speakers {
		speakers = append(speakers, SpeakerRef{Name: s.Name, Role: s.Role})
	}
	return Input{
		Name:        ev.Name,
		Topic:       ev.Topic,
		City:        ev.City,
		Date:        ev.Date,
		Description: ev.Description,
		Tagline:     ev.Tagline,
		Speakers:    speakers,
		Tracks:      append([]string(nil), ev.Tracks...),
		Pricing:     ev.Pricing,
		Venue:       ev.Venue,
		Slug:        ev.Slug,
	}
}

// Post is one social media post.
type Post struct {
	Text        string `json:"text"`
	Hashtags    string `json:"hashtags"`
	OptimalTime string `json:"optimal_time"`
	VariantB    string `json:"variant_b"`
}

// Social groups posts per network.
type Social struct {
	LinkedIn  []Post `json:"linkedin"`
	Twitter   []Post `json:"twitter"`
	Instagram []Post `json:"instagram"`
}

// CommunityTarget is an online community worth posting in.
type CommunityTarget struct {
	Platform  string `json:"platform"`
	Name      string `json:"name"`
	Relevance string `json:"relevance"`
	DraftPost string `json:"draft_post"`
	RulesNote string `json:"rules_note"`
}

// EmailDraft is one email of the drip sequence.
type EmailDraft struct {
	Name     string `json:"name"`
	SubjectA string `json:"subject_a"`
	SubjectB string `json:"subject_b"`
	BodyText string `json:"body_text"`
	SendDay  int    `json:"send_day"`
}

// EmailSequence is the drip campaign.
type EmailSequence struct {
	Emails []EmailDraft `json:"emails"`
}

// PartnerOutreach is a suggested cross-promotion partner.
type PartnerOutreach struct {
	Name               string `json:"name"`
	Type               string `json:"type"`
	Relevance          string `json:"relevance"`
	OutreachEmailDraft string `json:"outreach_email_draft"`
	PartnershipType    string `json:"partnership_type"`
}

// BlogOutline is a suggested article.
type BlogOutline struct {
	Title   string `json:"title"`
	Outline string `json:"outline"`
}

// SEO is search metadata for the event page.
type SEO struct {
	MetaTitle       string         `json:"meta_title"`
	MetaDescription string         `json:"meta_description"`
	SchemaJSON      map[string]any `json:"schema_json"`
	BlogOutlines    []BlogOutline  `json:"blog_outlines"`
}

// AdVariant is one ad creative.
type AdVariant struct {
	Headline             string `json:"headline"`
	Body                 string `json:"body"`
	AudienceTargeting    string `json:"audience_targeting"`
	SuggestedDailyBudget string `json:"suggested_daily_budget"`
}

// Ads groups ad variants per network.
type Ads struct {
	Meta     []AdVariant `json:"meta"`
	Google   []AdVariant `json:"google"`
	LinkedIn []AdVariant `json:"linkedin"`
}

// Kit is a complete promotion package.
type Kit struct {
	Social      Social            `json:"social"`
	Communities []CommunityTarget `json:"communities"`
	Emails      EmailSequence     `json:"emails"`
	Partners    []PartnerOutreach `json:"partners"`
	SEO         SEO               `json:"seo"`
	Ads         Ads               `json:"ads"`
	Generation  event.Metadata    `json:"generation"`
}
