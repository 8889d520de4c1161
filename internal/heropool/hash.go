package heropool

import (
	"net/url"
	"strings"
	"unicode/utf16"
)

// KeySeparator joins escaped key fields. Escaping guarantees no field
// contains it.
const KeySeparator = "|"

// Hash is a rolling polynomial hash (h*31 + c) over the UTF-16 code units of
// key with 32-bit signed wraparound, returned as an absolute value. It has no
// seed, so a key hashes identically across processes and restarts.
func Hash(key string) uint32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(key)) {
		h = (h << 5) - h + int32(unit)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}

// Key builds an assignment key from stable consumer attributes. Each field is
// query-escaped before joining, so "a|b","c" and "a","b|c" never collide.
func Key(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = url.QueryEscape(field)
	}
	return strings.Join(escaped, KeySeparator)
}
