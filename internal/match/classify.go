package match

import (
	"regexp"
	"strings"

	"github.com/fcstern/bfvcal/internal/event"
)

// Location sentinels emitted when the source provides no venue.
const (
	// AwaySentinel marks away (or presumed-away) fixtures.
	AwaySentinel = "Auswärts"
	// NoInfoSentinel marks fixtures whose home/away status could not be
	// determined on the ICS path. The HTML path falls through to
	// AwaySentinel instead; see the classifier config.
	NoInfoSentinel = "Ort nicht im BFV-ICS"
)

// festivalMarker labels youth-festival fixtures, which use a
// "Host - Kinderfestival - VisitingTeam" summary instead of the normal
// "Home - Away" form.
const festivalMarker = "Kinderfestival"

// placeholderSep is the observed " - : - " placeholder between host and
// visitor when no result is published yet.
const placeholderSep = " - : - "

var summarySep = regexp.MustCompile(`\s+[-–—]\s+`)

// Verdict is the outcome of classifying one summary.
type Verdict struct {
	HomeAway event.HomeAway
	// Festival is true when the summary carried the Kinderfestival
	// marker and the strict comparison rule was applied.
	Festival bool
}

// Classifier decides home/away for a configured team identity.
type Classifier struct {
	identity Identity
}

// NewClassifier creates a classifier for one team identity.
func NewClassifier(id Identity) *Classifier {
	return &Classifier{identity: id}
}

// Classify inspects a cleaned summary and returns the home/away verdict.
// The summary must already have passed through the normalizer; raw HTML
// text windows produce garbage token matches.
func (c *Classifier) Classify(summary string) Verdict {
	if strings.Contains(summary, festivalMarker) {
		return c.classifyFestival(summary)
	}

	host, visitor := splitHostVisitor(summary)
	if host == "" {
		return Verdict{HomeAway: event.Unknown}
	}

	if c.hits(host) {
		return Verdict{HomeAway: event.Home}
	}
	if visitor != "" && c.hits(visitor) {
		return Verdict{HomeAway: event.Away}
	}
	return Verdict{HomeAway: event.Unknown}
}

// classifyFestival applies the stricter Kinderfestival rule: location is
// frequently blank for these rows, so host and visitor club names
// (stripped of age/team suffixes) are compared for exact equality after
// normalization rather than by token overlap.
func (c *Classifier) classifyFestival(summary string) Verdict {
	idx := strings.Index(summary, festivalMarker)
	host := strings.Trim(summary[:idx], " -–—")
	visitor := strings.Trim(summary[idx+len(festivalMarker):], " -–—")

	hostClub := StripTeamSuffix(Normalize(host))
	visitorClub := StripTeamSuffix(Normalize(visitor))

	switch c.identity.ClubName {
	case "":
		return Verdict{HomeAway: event.Unknown, Festival: true}
	case hostClub:
		return Verdict{HomeAway: event.Home, Festival: true}
	case visitorClub:
		return Verdict{HomeAway: event.Away, Festival: true}
	}
	return Verdict{HomeAway: event.Unknown, Festival: true}
}

// hits reports whether the identity overlaps the given side text
// non-trivially: at least 2 token hits by substring containment, or 1
// when the identity has only a single token.
func (c *Classifier) hits(side string) bool {
	if len(c.identity.Tokens) == 0 {
		return false
	}
	normalized := Normalize(side)
	count := 0
	for _, tok := range c.identity.Tokens {
		if strings.Contains(normalized, tok) {
			count++
		}
	}
	need := 2
	if len(c.identity.Tokens) == 1 {
		need = 1
	}
	return count >= need
}

// splitHostVisitor divides a summary into host and visitor text. The
// " - : - " placeholder form wins over the plain dash split; dash
// variants are accepted because not every caller routes text through
// the summary cleaner first.
func splitHostVisitor(summary string) (host, visitor string) {
	if idx := strings.Index(summary, placeholderSep); idx >= 0 {
		return strings.TrimSpace(summary[:idx]), strings.TrimSpace(summary[idx+len(placeholderSep):])
	}
	parts := summarySep.Split(summary, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", ""
}

// InferLocation fills in a venue string for an event the source left
// blank. homeVenue is the configured home ground; unknownSentinel is
// what to emit when even the home/away status is unknown (the ICS path
// uses NoInfoSentinel, the HTML path falls through to AwaySentinel).
func InferLocation(verdict event.HomeAway, homeVenue, unknownSentinel string) string {
	switch verdict {
	case event.Home:
		return homeVenue
	case event.Away:
		return AwaySentinel
	default:
		return unknownSentinel
	}
}
