package event

import (
	"strings"

	"launchpad/internal/heropool"
)

// DefaultTheme is used when no theme table is available.
var DefaultTheme = Theme{
	ID:           "supernova",
	Name:         "SuperNova",
	FontDisplay:  "'Instrument Serif', Georgia, serif",
	FontMono:     "'JetBrains Mono', monospace",
	Background:   "#050505",
	Accent:       "#4FFFDF",
	Text:         "#f5f5f5",
	TextMuted:    "#888888",
	CardBg:       "rgba(255,255,255,0.03)",
	CardBorder:   "rgba(255,255,255,0.06)",
	ButtonRadius: "0.5rem",
}

// SelectTheme picks a theme from topic, vibe and slug so events sharing a
// topic still look different.
func SelectTheme(themes []Theme, topic, vibe, slug string) Theme {
	if len(themes) == 0 {
		return DefaultTheme
	}
	seed := strings.ToLower(topic) + "|" + strings.ToLower(vibe) + "|" + slug
	return themes[heropool.Hash(seed)%uint32(len(themes))]
}
