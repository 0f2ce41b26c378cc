package textclean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Rule is a single named text transformation. Rules are applied once
// each, in declaration order, so every step stays independently
// testable and no substitution runs in a loop.
type Rule struct {
	Name  string
	Apply func(string) string
}

var (
	scriptBlocks = regexp.MustCompile(`(?is)<(script|style|svg)[^>]*>.*?</\s*(script|style|svg)\s*>`)
	anyTag       = regexp.MustCompile(`<[^>]*>`)
	attrDebris   = regexp.MustCompile(`(?i)\bdata-[\w-]+=("[^"]*"|\S+)\s*/?`)
	loadingAttr  = regexp.MustCompile(`(?i)\bloading=("[^"]*"|\S+)`)
	lazyToken    = regexp.MustCompile(`\blazy\b`)
	whitespace   = regexp.MustCompile(`\s+`)

	leadingDate  = regexp.MustCompile(`^\s*\d{1,2}\.\d{1,2}\.\d{4}\s*`)
	leadingTime  = regexp.MustCompile(`^\s*\d{1,2}:\d{2}(\s*Uhr)?\s*`)
	pipeSlash    = regexp.MustCompile(`\s*[|]\s*|\s+/\s+`)
	dashVariants = regexp.MustCompile(`[–—−]`)
	edgeSeps     = regexp.MustCompile(`^[\s\-|/,;:]+|[\s\-|/,;:]+$`)
)

// encodingRepairs maps the recurring UTF-8-as-Latin-1 manglings seen in
// upstream pages to their intended characters. Word-level entries come
// first so the common venue names are fixed even when the byte-level
// pairs were further damaged in transit.
var encodingRepairs = [][2]string{
	{"FeldbergstraÃŸe", "Feldbergstraße"},
	{"StraÃŸe", "Straße"},
	{"MÃ¼nchen", "München"},
	{"Ã¼", "ü"},
	{"Ã¶", "ö"},
	{"Ã¤", "ä"},
	{"Ãœ", "Ü"},
	{"Ã–", "Ö"},
	{"Ã„", "Ä"},
	{"ÃŸ", "ß"},
}

// markupRules turn a raw HTML fragment into plain text.
var markupRules = []Rule{
	{"strip-script-style-svg", func(s string) string {
		return scriptBlocks.ReplaceAllString(s, " ")
	}},
	{"tags-to-spaces", func(s string) string {
		return anyTag.ReplaceAllString(s, " ")
	}},
	{"decode-entities", func(s string) string {
		s = html.UnescapeString(s)
		return strings.ReplaceAll(s, "\u00a0", " ")
	}},
	{"drop-attribute-debris", func(s string) string {
		s = attrDebris.ReplaceAllString(s, " ")
		s = loadingAttr.ReplaceAllString(s, " ")
		s = strings.ReplaceAll(s, "BfvImage", " ")
		return lazyToken.ReplaceAllString(s, " ")
	}},
	{"repair-encoding", RepairEncoding},
	{"collapse-whitespace", func(s string) string {
		return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	}},
}

// summaryRules apply on top of markupRules for text that is about to
// become an event summary.
var summaryRules = []Rule{
	{"strip-leading-date", func(s string) string {
		return leadingDate.ReplaceAllString(s, "")
	}},
	{"strip-leading-time", func(s string) string {
		return leadingTime.ReplaceAllString(s, "")
	}},
	{"strip-layout-separators", func(s string) string {
		return pipeSlash.ReplaceAllString(s, " ")
	}},
	{"normalize-dashes", func(s string) string {
		return dashVariants.ReplaceAllString(s, "-")
	}},
	{"collapse-whitespace", func(s string) string {
		return whitespace.ReplaceAllString(s, " ")
	}},
	{"trim-edge-separators", func(s string) string {
		return edgeSeps.ReplaceAllString(s, "")
	}},
}

// apply runs rules in order, once each.
func apply(s string, rules []Rule) string {
	for _, r := range rules {
		s = r.Apply(s)
	}
	return s
}

// StripMarkup flattens an HTML fragment to plain text. Script, style
// and svg subtrees are removed through a real (fault-tolerant) HTML
// parse, remaining tags become single spaces, and the regex rules clear
// the debris that survives when upstream markup was already
// half-flattened before reaching us.
func StripMarkup(fragment string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment)); err == nil {
		doc.Find("script,style,svg").Remove()
		if cleaned, herr := doc.Html(); herr == nil {
			fragment = cleaned
		}
	}
	return apply(fragment, markupRules)
}

// CleanSummary normalizes a plain-text candidate summary: leaked
// date/time fragments, pipe and slash layout separators, dash variants
// and edge punctuation are removed.
func CleanSummary(s string) string {
	return apply(s, summaryRules)
}

// RepairEncoding fixes the known recurring mis-decoded German character
// sequences via literal replacement.
func RepairEncoding(s string) string {
	for _, pair := range encodingRepairs {
		s = strings.ReplaceAll(s, pair[0], pair[1])
	}
	return s
}
