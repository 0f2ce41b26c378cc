package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fcstern/bfvcal/internal/event"
	"github.com/fcstern/bfvcal/internal/match"
	"github.com/fcstern/bfvcal/internal/textclean"
)

const (
	// windowSize is how much raw HTML behind each anchor is considered
	// when carving summary and location. Large enough to span the full
	// match card markup, small enough that adjacent fixtures rarely
	// bleed in before the trailing marker cuts them off.
	windowSize = 5200

	// fallbackSummaryLen bounds the raw-window fallback when carving
	// yields nothing.
	fallbackSummaryLen = 220

	// trailingMarker is the link text ending every match card.
	trailingMarker = "Zum Spiel"
)

// anchorPattern finds a kickoff: a German date followed within a short
// non-digit gap by a wall-clock time, optionally suffixed "Uhr".
var (
	anchorPattern = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})[^\d]{0,120}?(\d{1,2}):(\d{2})(\s*Uhr)?`)
	uhrPrefix     = regexp.MustCompile(`^\s*Uhr\b\s*`)
)

// Stats counts what the extractor saw and why rows were dropped.
type Stats struct {
	Anchors     int `json:"anchors"`
	SeasonNoise int `json:"seasonNoise"`
	Cancelled   int `json:"cancelled"`
	Fallbacks   int `json:"fallbacks"`
	Duplicates  int `json:"duplicates"`
}

// Extractor turns schedule HTML into events for one team.
type Extractor struct {
	classifier *match.Classifier
	homeVenue  string
	loc        *time.Location
	log        zerolog.Logger
}

// New creates an extractor. Kickoff times are interpreted as wall-clock
// time in loc; pass nil for time.Local.
func New(classifier *match.Classifier, homeVenue string, loc *time.Location, log zerolog.Logger) *Extractor {
	if loc == nil {
		loc = time.Local
	}
	return &Extractor{classifier: classifier, homeVenue: homeVenue, loc: loc, log: log}
}

// Extract scans the HTML for kickoff anchors and builds one event per
// surviving anchor. Duplicate fixtures (same kickoff and summary, a
// normal artifact of paginated input) are dropped, first occurrence
// wins.
func (e *Extractor) Extract(html string) ([]event.Event, Stats) {
	var stats Stats
	var events []event.Event

	for _, m := range anchorPattern.FindAllStringSubmatchIndex(html, -1) {
		stats.Anchors++

		start, ok := e.kickoff(html, m)
		if !ok {
			continue
		}

		window := html[m[0]:min(m[0]+windowSize, len(html))]
		text := textclean.StripMarkup(window)

		summary := e.carveSummary(text, html[m[8]:m[9]]+":"+html[m[10]:m[11]], &stats)
		if summary == "" {
			continue
		}

		lower := strings.ToLower(summary)
		if strings.Contains(lower, "historie") || strings.Contains(lower, "saison") {
			stats.SeasonNoise++
			continue
		}
		if strings.Contains(lower, "abgesetzt") {
			stats.Cancelled++
			continue
		}

		ev := event.Event{
			UID:     event.DeriveUID(start, summary),
			Start:   start,
			End:     start.Add(event.DefaultDuration),
			Summary: summary,
		}

		verdict := e.classifier.Classify(summary)
		ev.HomeAway = verdict.HomeAway
		if addr, found := match.ExtractAddress(text); found {
			ev.Location = addr
		} else {
			ev.Location = match.InferLocation(verdict.HomeAway, e.homeVenue, match.AwaySentinel)
		}

		events = append(events, ev)
	}

	unique, dropped := event.Dedupe(events)
	stats.Duplicates = dropped

	e.log.Debug().
		Int("anchors", stats.Anchors).
		Int("events", len(unique)).
		Int("seasonNoise", stats.SeasonNoise).
		Int("cancelled", stats.Cancelled).
		Int("duplicates", stats.Duplicates).
		Msg("html extraction done")
	return unique, stats
}

// kickoff builds the local wall-clock start time from the anchor
// submatch indexes.
func (e *Extractor) kickoff(html string, m []int) (time.Time, bool) {
	day, _ := strconv.Atoi(html[m[2]:m[3]])
	month, _ := strconv.Atoi(html[m[4]:m[5]])
	year, _ := strconv.Atoi(html[m[6]:m[7]])
	hour, _ := strconv.Atoi(html[m[8]:m[9]])
	minute, _ := strconv.Atoi(html[m[10]:m[11]])

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, e.loc), true
}

// carveSummary cuts the fixture name out of the plain-text window:
// everything through the matched time is removed, everything from the
// trailing marker on is removed, and the rest is cleaned. An empty
// result falls back to the cleaned head of the raw window.
func (e *Extractor) carveSummary(text, timeStr string, stats *Stats) string {
	carved := text
	if idx := strings.Index(carved, timeStr); idx >= 0 {
		carved = carved[idx+len(timeStr):]
	}
	carved = uhrPrefix.ReplaceAllString(carved, "")
	if idx := strings.Index(carved, trailingMarker); idx >= 0 {
		carved = carved[:idx]
	}

	summary := textclean.CleanSummary(carved)
	if summary != "" {
		return summary
	}

	stats.Fallbacks++
	head := text[:min(fallbackSummaryLen, len(text))]
	if idx := strings.Index(head, trailingMarker); idx >= 0 {
		head = head[:idx]
	}
	return textclean.CleanSummary(head)
}
