// Package pipeline runs one ingestion pass: fetch, detect format,
// parse or extract, normalize, classify, de-duplicate, serialize.
//
// A pipeline run is request-scoped and stateless: every seen-set and
// identity is allocated fresh, so two runs over identical input produce
// identical calendars. The format detector picks the path at runtime —
// calendar input goes through the ICS parser, everything else through
// the HTML extractor with optional pagination in front.
package pipeline
