// Package ics implements reading and writing of the iCalendar text format
// as used by the BFV calendar feeds.
//
// The parser and serializer are deliberately hand-rolled: the pipeline's
// idempotence guarantees depend on the exact line-unfolding and
// backslash-escaping rules, so escape and unescape are implemented as
// exact inverses of each other rather than delegated to a library.
package ics
