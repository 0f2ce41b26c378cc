// Package textclean repairs and normalizes text pulled out of BFV HTML
// pages before it is trusted as an event summary.
//
// Cleaning is expressed as an ordered list of named rules, each applied
// exactly once. The upstream markup is not under our control: windows
// cut out of it contain half-stripped tags, attribute debris, layout
// separators and mis-decoded German characters.
package textclean
