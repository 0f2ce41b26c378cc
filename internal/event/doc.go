// Package event provides the calendar event value type for the BFV ingestion pipeline.
//
// The event package handles event representation, deterministic identity derivation,
// and per-run de-duplication. When a source supplies no UID, one is derived from the
// kickoff time and the normalized summary via a SHA1 hash, so repeated runs over
// unchanged input yield the same identity.
package event
