package promo

import (
	"launchpad/internal/event"
	"launchpad/internal/swarm"
)

// Merge assembles a kit from bot outcomes. A missing or mistyped outcome
// keeps the matching part of fallback, so the result is always complete.
// Networks and outlines a bot left empty are filled from fallback too.
func Merge(fallback Kit, outcomes swarm.Outcomes) Kit {
	return Kit{
		Social:      mergeSocial(swarm.ValueOf(outcomes, TaskSocial, fallback.Social), fallback.Social),
		Communities: swarm.ValueOf(outcomes, TaskCommunities, fallback.Communities),
		Emails:      swarm.ValueOf(outcomes, TaskEmails, fallback.Emails),
		Partners:    swarm.ValueOf(outcomes, TaskPartners, fallback.Partners),
		SEO:         mergeSEO(swarm.ValueOf(outcomes, TaskSEO, fallback.SEO), fallback.SEO),
		Ads:         mergeAds(swarm.ValueOf(outcomes, TaskAds, fallback.Ads), fallback.Ads),
		Generation:  event.Metadata{Mode: event.ModeSwarm},
	}
}

func orFallback[T any](got, fallback []T) []T {
	if len(got) == 0 {
		return fallback
	}
	return got
}

func mergeSocial(got, fallback Social) Social {
	got.LinkedIn = orFallback(got.LinkedIn, fallback.LinkedIn)
	got.Twitter = orFallback(got.Twitter, fallback.Twitter)
	got.Instagram = orFallback(got.Instagram, fallback.Instagram)
	return got
}

func mergeAds(got, fallback Ads) Ads {
	got.Meta = orFallback(got.Meta, fallback.Meta)
	got.Google = orFallback(got.Google, fallback.Google)
	got.LinkedIn = orFallback(got.LinkedIn, fallback.LinkedIn)
	return got
}

func mergeSEO(got, fallback SEO) SEO {
	got.BlogOutlines = orFallback(got.BlogOutlines, fallback.BlogOutlines)
	if got.SchemaJSON == nil {
		got.SchemaJSON = fallback.SchemaJSON
	}
	return got
}
