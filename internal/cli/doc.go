// Package cli implements the command-line interface for bfvcal.
//
// The cli package provides the Cobra-based CLI with three modes: serving
// the calendar endpoint over HTTP, running the ingestion pipeline once
// for a single URL, and scanning a list of team feeds through the worker
// pool. It wires together the config, fetch, pipeline, scan and server
// packages.
package cli
