package promo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"launchpad/internal/event"
)

const tweetLimit = 280

// Template builds a promotion kit from in alone, with no network access.
func Template(in Input) Kit {
	topic := strings.Join(strings.Fields(in.Topic), "")
	post := fmt.Sprintf("🚀 %s is coming to %s on %s! Join %d world-class speakers across %d tracks. Early bird: %s 🎟️ #%s",
		in.Name, in.City, in.Date, len(in.Speakers), len(in.Tracks), in.Pricing.EarlyBird, topic)

	description := in.Description
	if description == "" {
		description = in.Tagline
	}

	return Kit{
		Social: Social{
			LinkedIn:  []Post{{Text: post, Hashtags: "#" + topic + " #Event #Conference"}},
			Twitter:   []Post{{Text: truncate(post, tweetLimit), Hashtags: "#" + topic}},
			Instagram: []Post{{Text: post, Hashtags: "#" + topic + " #Event"}},
		},
		Communities: []CommunityTarget{
			{Platform: "Reddit", Name: "r/" + strings.ToLower(topic), Relevance: "High", DraftPost: "Sharing our upcoming event - would love feedback from the community."},
			{Platform: "LinkedIn", Name: topic + " Professionals", Relevance: "High", DraftPost: post},
		},
		Emails: EmailSequence{Emails: []EmailDraft{
			{
				Name:     "Announcement",
				SubjectA: in.Name + " — Tickets Now Available",
				SubjectB: "Join us in " + in.City + " for " + in.Name,
				BodyText: fmt.Sprintf("Hi {first_name},\n\n%s\n\n%s\n\nGet your ticket: %s early bird.", in.Tagline, in.Description, in.Pricing.EarlyBird),
				SendDay:  0,
			},
			{
				Name:     "Speaker Spotlight",
				SubjectA: "Meet the speakers at " + in.Name,
				SubjectB: "Your speaker lineup is here",
				BodyText: fmt.Sprintf("Hi {first_name},\n\nWe're excited to share our speaker lineup for %s.", in.Name),
				SendDay:  7,
			},
			{
				Name:     "Last Chance",
				SubjectA: "Final tickets: " + in.Name,
				SubjectB: "Don't miss out",
				BodyText: fmt.Sprintf("Hi {first_name},\n\nLast chance to secure your spot at %s in %s.", in.Name, in.City),
				SendDay:  14,
			},
		}},
		Partners: []PartnerOutreach{{
			Name:               fmt.Sprintf("Local %s org in %s", in.Topic, in.City),
			Type:               "Community",
			Relevance:          "High",
			OutreachEmailDraft: fmt.Sprintf("Hi, we're organizing %s and would love to cross-promote.", in.Name),
			PartnershipType:    "Cross-Promo",
		}},
		SEO: SEO{
			MetaTitle:       truncate(fmt.Sprintf("%s — %s | %s", in.Name, in.City, in.Date), 60),
			MetaDescription: truncate(description, 155),
			SchemaJSON:      map[string]any{"@type": "Event", "name": in.Name, "startDate": in.Date},
			BlogOutlines: []BlogOutline{
				{Title: "Why attend " + in.Name},
				{Title: "Speaker spotlight: " + in.Name},
				{Title: in.City + " events guide"},
			},
		},
		Ads: Ads{
			Meta:     []AdVariant{{Headline: in.Name, Body: in.Tagline, AudienceTargeting: in.City + ", " + in.Topic, SuggestedDailyBudget: "$20"}},
			Google:   []AdVariant{{Headline: in.Name, Body: in.Tagline, AudienceTargeting: "Event keywords", SuggestedDailyBudget: "$15"}},
			LinkedIn: []AdVariant{{Headline: in.Name, Body: in.Tagline, AudienceTargeting: "Professionals", SuggestedDailyBudget: "$25"}},
		},
		Generation: event.Metadata{Mode: event.ModeTemplate},
	}
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
