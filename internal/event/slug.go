package event

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"launchpad/internal/heropool"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

const slugSuffixLen = 4

// Slug derives "<topic>-<city>-<suffix>" where the suffix is the base36
// hash of topic, city and date. The same input always yields the same slug.
func Slug(topic, city, date string) string {
	topicPart := slugPart(topic, 20, "event")
	cityPart := slugPart(city, 15, "city")

	suffix := strconv.FormatUint(uint64(heropool.Hash(heropool.Key(topic, city, date))), 36)
	if len(suffix) < slugSuffixLen {
		suffix = strings.Repeat("0", slugSuffixLen-len(suffix)) + suffix
	}
	suffix = suffix[len(suffix)-slugSuffixLen:]

	return topicPart + "-" + cityPart + "-" + suffix
}

func slugPart(text string, limit int, fallback string) string {
	part := nonSlugChars.ReplaceAllString(strings.ToLower(text), "-")
	part = strings.Trim(part, "-")
	if len(part) > limit {
		part = strings.TrimRight(part[:limit], "-")
	}
	if part == "" {
		return fallback
	}
	return part
}

// HeroKey is the assignment key for an event's hero image.
func HeroKey(topic, city, slug string) string {
	return heropool.Key(topic, city, slug)
}

// Initials returns up to two uppercase initials, skipping honorifics such as
// "Dr." so "Dr. Sarah Chen" becomes "SC".
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		if strings.HasSuffix(word, ".") && len(strings.Fields(name)) > 2 {
			continue
		}
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				out = append(out, unicode.ToUpper(r))
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
