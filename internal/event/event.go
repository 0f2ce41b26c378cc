package event

import (
	"crypto/sha1"
	"fmt"
	"time"
	"unicode/utf8"
)

// DefaultDuration is assumed when a source gives no end time.
const DefaultDuration = 90 * time.Minute

// maxFallbackUID bounds synthesized UIDs so identifiers never grow with
// arbitrarily long summaries.
const maxFallbackUID = 200

// HomeAway is the tri-state home/away classification of an event.
// Unknown must never be coerced to Away (or Home) downstream; callers
// decide explicitly how to treat it.
type HomeAway int

const (
	Unknown HomeAway = iota
	Home
	Away
)

// String returns a short label for logging and debug payloads.
func (h HomeAway) String() string {
	switch h {
	case Home:
		return "home"
	case Away:
		return "away"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the tri-state as true, false or null so JSON
// consumers cannot mistake an unknown verdict for a real one.
func (h HomeAway) MarshalJSON() ([]byte, error) {
	switch h {
	case Home:
		return []byte("true"), nil
	case Away:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the same tri-state encoding.
func (h *HomeAway) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*h = Home
	case "false":
		*h = Away
	case "null":
		*h = Unknown
	default:
		return fmt.Errorf("invalid isHome value %q", data)
	}
	return nil
}

// Event represents a single calendar entry flowing through the pipeline.
// Events are value objects: transformations produce new values rather
// than mutating in place.
type Event struct {
	UID         string    `json:"uid"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Summary     string    `json:"summary"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	HomeAway    HomeAway  `json:"isHome"`
}

// Key creates the de-duplication identity for an event based on its
// kickoff time and cleaned summary.
func Key(start time.Time, summary string) string {
	h := sha1.New()
	h.Write([]byte(start.Format("20060102T150405") + "|" + summary))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// DeriveUID creates a deterministic UID for an event whose source
// provides none. Same inputs always yield the same UID.
func DeriveUID(start time.Time, summary string) string {
	return Key(start, summary)
}

// FallbackUID synthesizes a human-readable UID from start and summary,
// truncated to a bounded length on a rune boundary. Used by the ICS
// parser when the feed omits the UID field.
func FallbackUID(start, summary string) string {
	uid := start + "-" + summary
	if len(uid) <= maxFallbackUID {
		return uid
	}
	cut := maxFallbackUID
	for cut > 0 && !utf8.RuneStart(uid[cut]) {
		cut--
	}
	return uid[:cut]
}

// Dedupe drops events whose identity was already seen, keeping the
// first occurrence. Identity is the event UID when set, otherwise
// Key(start, summary). The seen-set is allocated fresh per call so
// repeated runs do not accumulate state.
func Dedupe(events []Event) (unique []Event, dropped int) {
	seen := make(map[string]bool, len(events))
	unique = make([]Event, 0, len(events))
	for _, evt := range events {
		id := evt.UID
		if id == "" {
			id = Key(evt.Start, evt.Summary)
		}
		if seen[id] {
			dropped++
			continue
		}
		seen[id] = true
		unique = append(unique, evt)
	}
	return unique, dropped
}
