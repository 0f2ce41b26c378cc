package ics

import (
	"regexp"
	"strings"
	"time"

	"github.com/fcstern/bfvcal/internal/event"
)

// ParseStats counts per-event anomalies encountered while parsing.
// Incomplete rows are expected in the upstream feed and are dropped
// silently rather than failing the whole document.
type ParseStats struct {
	Blocks          int `json:"blocks"`
	MissingRequired int `json:"missingRequired"`
	BadTimestamps   int `json:"badTimestamps"`
}

// fieldPattern matches a recognized field name at line start, optionally
// followed by parameter text (e.g. ;TZID=Europe/Berlin), up to the first
// unparameterized colon. Matching is case-insensitive.
var fieldPattern = regexp.MustCompile(`(?i)^(UID|DTSTART|DTEND|SUMMARY|LOCATION|DESCRIPTION|STATUS)(?:;[^:]*)?:(.*)$`)

// Parse tokenizes an iCalendar document into events. Content outside
// BEGIN:VEVENT/END:VEVENT is ignored. Events missing DTSTART or DTEND
// are dropped and counted, never reported as errors.
func Parse(body string) ([]event.Event, ParseStats) {
	var stats ParseStats
	events := make([]event.Event, 0)

	for _, block := range eventBlocks(Unfold(body)) {
		stats.Blocks++

		fields := make(map[string]string, 8)
		for _, line := range strings.Split(block, "\n") {
			m := fieldPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := strings.ToUpper(m[1])
			if _, dup := fields[name]; dup {
				continue
			}
			fields[name] = m[2]
		}

		rawStart, okStart := fields["DTSTART"]
		rawEnd, okEnd := fields["DTEND"]
		if !okStart || !okEnd {
			stats.MissingRequired++
			continue
		}

		start, err := ParseTime(rawStart)
		if err != nil {
			stats.BadTimestamps++
			continue
		}
		end, err := ParseTime(rawEnd)
		if err != nil {
			stats.BadTimestamps++
			continue
		}

		summary := Unescape(fields["SUMMARY"])
		uid := fields["UID"]
		if uid == "" {
			uid = event.FallbackUID(rawStart, summary)
		}

		events = append(events, event.Event{
			UID:         uid,
			Start:       start,
			End:         end,
			Summary:     summary,
			Location:    Unescape(fields["LOCATION"]),
			Description: Unescape(fields["DESCRIPTION"]),
			Status:      fields["STATUS"],
		})
	}

	return events, stats
}

// Unfold normalizes all line breaks to \n and reverses iCalendar line
// folding: a break immediately followed by a single space or tab is a
// continuation of the previous line.
func Unfold(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	body = strings.ReplaceAll(body, "\n ", "")
	body = strings.ReplaceAll(body, "\n\t", "")
	return body
}

// blockPattern matches one BEGIN:VEVENT/END:VEVENT pair,
// case-insensitively. Matching on the original text matters: an
// upper-cased copy can differ in byte length (case mapping is not
// length-preserving in UTF-8), so offsets taken from it must never be
// used to slice the original.
var blockPattern = regexp.MustCompile(`(?is)BEGIN:VEVENT(.*?)END:VEVENT`)

// eventBlocks returns the content between each BEGIN:VEVENT/END:VEVENT
// pair.
func eventBlocks(body string) []string {
	var blocks []string
	for _, m := range blockPattern.FindAllStringSubmatch(body, -1) {
		blocks = append(blocks, strings.TrimSpace(m[1]))
	}
	return blocks
}

// ParseTime parses the basic iCalendar date/date-time value forms:
// UTC ("20250101T090000Z"), floating local ("20250101T090000") and
// date-only ("20250101"). TZID parameters are not resolved; feeds on
// the allow-listed hosts publish UTC or local wall-clock values.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
