package promo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"launchpad/internal/llm"
	jsonx "launchpad/internal/shared/json"
	"launchpad/internal/swarm"
)

// Bot task names.
const (
	TaskSocial      = "social"
	TaskCommunities = "communities"
	TaskEmails      = "emails"
	TaskPartners    = "partners"
	TaskSEO         = "seo"
	TaskAds         = "ads"
)

// Bots turn the six promotion channels into swarm tasks.
type Bots struct {
	client llm.Client
}

// NewBots returns bots backed by client.
func NewBots(client llm.Client) *Bots {
	return &Bots{client: client}
}

// Tasks returns one task per bot; fallback supplies every fallback value.
func (b *Bots) Tasks(in Input, fallback Kit) []swarm.Task {
	return []swarm.Task{
		swarm.Spec[Social]{
			Name:     TaskSocial,
			Work:     func(ctx context.Context) (Social, error) { return b.social(ctx, in) },
			Fallback: fallback.Social,
			Validate: validateSocial,
		},
		swarm.Spec[[]CommunityTarget]{
			Name:     TaskCommunities,
			Work:     func(ctx context.Context) ([]CommunityTarget, error) { return b.communities(ctx, in) },
			Fallback: fallback.Communities,
			Validate: nonEmpty[CommunityTarget]("communities"),
		},
		swarm.Spec[EmailSequence]{
			Name:     TaskEmails,
			Work:     func(ctx context.Context) (EmailSequence, error) { return b.emails(ctx, in) },
			Fallback: fallback.Emails,
			Validate: validateEmails,
		},
		swarm.Spec[[]PartnerOutreach]{
			Name:     TaskPartners,
			Work:     func(ctx context.Context) ([]PartnerOutreach, error) { return b.partners(ctx, in) },
			Fallback: fallback.Partners,
			Validate: nonEmpty[PartnerOutreach]("partners"),
		},
		swarm.Spec[SEO]{
			Name:     TaskSEO,
			Work:     func(ctx context.Context) (SEO, error) { return b.seo(ctx, in) },
			Fallback: fallback.SEO,
			Validate: validateSEO,
		},
		swarm.Spec[Ads]{
			Name:     TaskAds,
			Work:     func(ctx context.Context) (Ads, error) { return b.ads(ctx, in) },
			Fallback: fallback.Ads,
			Validate: validateAds,
		},
	}
}

func speakerNames(in Input) string {
	names := make([]string, 0, len(in.Speakers))
	for _, s := range in.Speakers {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func (b *Bots) ask(ctx context.Context, task, system, user string, maxTokens int) (string, error) {
	return b.client.CompleteJSON(ctx, llm.JSONRequest{
		Task:        task,
		System:      system,
		User:        user,
		Temperature: 0.8,
		MaxTokens:   maxTokens,
	})
}

func (b *Bots) social(ctx context.Context, in Input) (Social, error) {
	raw, err := b.ask(ctx, TaskSocial, "Generate social media posts for an event. Return JSON only.",
		fmt.Sprintf("Event: %s. %s. %s. %s. Speakers: %s. Tracks: %s. Pricing: %s early bird. Generate 3 posts each for LinkedIn, Twitter, Instagram. Each: text, hashtags, optimal_time, variant_b. Return JSON: { linkedin: Post[], twitter: Post[], instagram: Post[] }",
			in.Name, in.Tagline, in.City, in.Date, speakerNames(in), strings.Join(in.Tracks, ", "), in.Pricing.EarlyBird),
		1500)
	if err != nil {
		return Social{}, err
	}
	var social Social
	if err := jsonx.DecodeLenient(raw, &social); err != nil {
		return Social{}, err
	}
	for i := range social.Twitter {
		social.Twitter[i].Text = truncate(social.Twitter[i].Text, tweetLimit)
	}
	return social, nil
}

func (b *Bots) communities(ctx context.Context, in Input) ([]CommunityTarget, error) {
	raw, err := b.ask(ctx, TaskCommunities, "Suggest relevant online communities for event promotion. Return JSON only.",
		fmt.Sprintf("Event: %s. Topic: %s. City: %s. Find 10 relevant communities (Reddit, Slack, Discord, FB, LinkedIn). Each: platform, name, relevance, draft_post (non-spammy), rules_note. Return JSON: { communities: CommunityTarget[] }",
			in.Name, in.Topic, in.City),
		1500)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList[CommunityTarget](raw, "communities")
}

func (b *Bots) emails(ctx context.Context, in Input) (EmailSequence, error) {
	raw, err := b.ask(ctx, TaskEmails, "Generate a 3-email drip sequence. Return JSON only.",
		fmt.Sprintf("Event: %s. %s. %s. %s. Speakers: %s. Tiers: %s early bird. Generate 3 emails: Announcement (day 0), Speaker Spotlight (day 7), Last Chance (day 14). Each: name, subject_a, subject_b, body_text with {first_name} tokens, send_day. Return JSON: { emails: EmailDraft[] }",
			in.Name, in.Tagline, in.City, in.Date, speakerNames(in), in.Pricing.EarlyBird),
		1500)
	if err != nil {
		return EmailSequence{}, err
	}
	emails, err := jsonx.DecodeList[EmailDraft](raw, "emails")
	if err != nil {
		return EmailSequence{}, err
	}
	return EmailSequence{Emails: emails}, nil
}

func (b *Bots) partners(ctx context.Context, in Input) ([]PartnerOutreach, error) {
	raw, err := b.ask(ctx, TaskPartners, "Suggest cross-promo partners. Return JSON only.",
		fmt.Sprintf("Event: %s. Topic: %s. City: %s. Find 6 cross-promo partners. Each: name, type, relevance, outreach_email_draft, partnership_type (Media/Community/Cross-Promo). Return JSON: { partners: PartnerOutreach[] }",
			in.Name, in.Topic, in.City),
		1000)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeList[PartnerOutreach](raw, "partners")
}

func (b *Bots) seo(ctx context.Context, in Input) (SEO, error) {
	raw, err := b.ask(ctx, TaskSEO, "Generate SEO content. Return JSON only.",
		fmt.Sprintf("Event: %s. %s. %s. %s. Generate: meta_title (60 chars), meta_description (155 chars), schema.org Event JSON-LD object, 3 blog post outlines with titles. Return JSON: { meta_title, meta_description, schema_json, blog_outlines }",
			in.Name, in.Description, in.City, in.Date),
		1000)
	if err != nil {
		return SEO{}, err
	}
	var seo SEO
	if err := jsonx.DecodeLenient(raw, &seo); err != nil {
		return SEO{}, err
	}
	if seo.MetaTitle == "" {
		seo.MetaTitle = in.Name
	}
	if seo.MetaDescription == "" {
		seo.MetaDescription = in.Tagline
	}
	if seo.SchemaJSON == nil {
		seo.SchemaJSON = map[string]any{}
	}
	if seo.BlogOutlines == nil {
		seo.BlogOutlines = []BlogOutline{}
	}
	return seo, nil
}

func (b *Bots) ads(ctx context.Context, in Input) (Ads, error) {
	raw, err := b.ask(ctx, TaskAds, "Generate ad copy variants. Return JSON only.",
		fmt.Sprintf("Event: %s. %s. %s. %s. Generate 2 ad variants each for Meta, Google Display, LinkedIn. Each: headline, body, audience_targeting, suggested_daily_budget. Return JSON: { meta: AdVariant[], google: AdVariant[], linkedin: AdVariant[] }",
			in.Name, in.Tagline, in.City, in.Date),
		1000)
	if err != nil {
		return Ads{}, err
	}
	var ads Ads
	if err := jsonx.DecodeLenient(raw, &ads); err != nil {
		return Ads{}, err
	}
	return ads, nil
}

func validateSocial(social Social) error {
	if len(social.LinkedIn)+len(social.Twitter)+len(social.Instagram) == 0 {
		return errors.New("no posts")
	}
	return nil
}

func validateEmails(seq EmailSequence) error {
	if len(seq.Emails) == 0 {
		return errors.New("no emails")
	}
	return nil
}

func validateSEO(seo SEO) error {
	if strings.TrimSpace(seo.MetaTitle) == "" {
		return errors.New("meta_title is empty")
	}
	return nil
}

func validateAds(ads Ads) error {
	if len(ads.Meta)+len(ads.Google)+len(ads.LinkedIn) == 0 {
		return errors.New("no ad variants")
	}
	return nil
}

func nonEmpty[T any](what string) func([]T) error {
	return func(list []T) error {
		if len(list) == 0 {
			return fmt.Errorf("no %s", what)
		}
		return nil
	}
}
