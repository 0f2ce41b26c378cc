package match

import (
	"regexp"
	"strings"
)

// Venue blocks on BFV pages look like
// "Bezirkssportanlage Feldbergstraße Feldbergstraße 55 81825 München".
// The primary pattern requires a venue-type keyword followed by a
// street name with house number and a 5-digit postal code; the fallback
// anchors on the postal code alone and only checks that a venue keyword
// appears nearby.
var (
	venueKeyword = regexp.MustCompile(`(?i)sportanlage|sportplatz|sportpark|sportgel(ä|ae)nde|stadion|sporthalle`)

	fullAddress = regexp.MustCompile(`(?i)(?:sportanlage|sportplatz|sportpark|sportgel(?:ä|ae)nde|stadion|sporthalle)[\p{L}ß\s.\-]{0,80}?` +
		`([\p{L}ß.\-]+(?:straße|strasse|str\.|weg|platz|allee|ring|gasse)\s+\d+[a-z]?\s*,?\s*\d{5}\s+[\p{L}ß.\-]+)`)

	postalAddress = regexp.MustCompile(`([\p{L}ß.\-]+\s+\d+[a-z]?\s*,?\s*)?(\d{5})\s+([\p{L}ß.\-]+)`)
)

// proximity is how far around a bare postal code a venue keyword may
// sit for the loose fallback to accept the match.
const proximity = 120

// ExtractAddress searches a plain-text window for a venue address.
// It returns the address and true on success.
func ExtractAddress(text string) (string, bool) {
	if m := fullAddress.FindStringSubmatch(text); m != nil {
		return collapse(m[1]), true
	}

	// Loose fallback: any postal code with a venue keyword nearby.
	for _, loc := range postalAddress.FindAllStringSubmatchIndex(text, -1) {
		lo := loc[0] - proximity
		if lo < 0 {
			lo = 0
		}
		hi := loc[1] + proximity
		if hi > len(text) {
			hi = len(text)
		}
		if venueKeyword.MatchString(text[lo:hi]) {
			return collapse(text[loc[0]:loc[1]]), true
		}
	}

	return "", false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
