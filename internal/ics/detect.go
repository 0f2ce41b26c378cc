package ics

import "strings"

// IsCalendar reports whether a fetched body looks like an iCalendar
// document. This is a cheap substring probe, not a parse: a body counts
// as calendar format iff it carries a VCALENDAR marker and at least one
// VEVENT block. Everything else is routed to the HTML scraping path.
func IsCalendar(body []byte) bool {
	upper := strings.ToUpper(string(body))
	return strings.Contains(upper, "BEGIN:VCALENDAR") && strings.Contains(upper, "BEGIN:VEVENT")
}
