package ics

import (
	"strings"
	"time"

	"github.com/fcstern/bfvcal/internal/event"
)

// ProdID identifies generated calendars.
const ProdID = "-//FC Stern//bfvcal//DE"

// Serialize re-emits the event set as an iCalendar document: header,
// one VEVENT block per event in input order, footer. Line terminators
// are CRLF. Long lines are intentionally not re-folded; the consuming
// clients tolerate unfolded lines and folding would complicate the
// DTSTART/DTEND round-trip.
func Serialize(events []event.Event, now time.Time) string {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+ProdID)
	writeLine(&b, "CALSCALE:GREGORIAN")

	dtstamp := now.UTC().Format("20060102T150405Z")

	for _, evt := range events {
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+evt.UID)
		writeLine(&b, "DTSTAMP:"+dtstamp)
		writeLine(&b, "DTSTART:"+FormatTime(evt.Start))
		writeLine(&b, "DTEND:"+FormatTime(evt.End))
		writeLine(&b, "SUMMARY:"+Escape(evt.Summary))
		if evt.Location != "" {
			writeLine(&b, "LOCATION:"+Escape(evt.Location))
		}
		if evt.Description != "" {
			writeLine(&b, "DESCRIPTION:"+Escape(evt.Description))
		}
		if evt.Status != "" {
			writeLine(&b, "STATUS:"+evt.Status)
		}
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

// FormatTime renders a timestamp as an iCalendar date-time value.
// UTC times keep the Z suffix; everything else is emitted as a
// floating local wall-clock value, matching how the HTML path
// interprets kickoff times.
func FormatTime(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format("20060102T150405Z")
	}
	return t.Format("20060102T150405")
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
