// Package match classifies BFV fixtures as home or away games for a
// configured club and infers venue strings when the source omits them.
//
// Classification is a fuzzy token-overlap heuristic over normalized
// club/team names. It returns a tri-state verdict: an event whose host
// text shares no token with the team identity stays Unknown and is
// never silently defaulted to away.
package match
