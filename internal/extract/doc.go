// Package extract pulls fixture events out of BFV schedule HTML.
//
// The schedule markup carries no stable ids or microdata, so extraction
// anchors on the visible kickoff timestamp pattern (DD.MM.YYYY followed
// shortly by H:MM, optionally "Uhr") and carves the match summary out of
// the plain text behind each anchor. Administrative rows (season
// summaries, history links, cancelled fixtures) are filtered with
// counters kept for diagnostics.
package extract
