package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// clubStopWords are generic club-type abbreviations that carry no
// identity: nearly every opponent is an FC, SV or TSV of something.
var clubStopWords = map[string]bool{
	"fc": true, "sv": true, "tsv": true, "sc": true, "spvgg": true,
	"sg": true, "djk": true, "fsv": true, "vfb": true, "vfl": true,
	"asv": true, "esv": true, "ev": true,
}

var (
	ageGroup    = regexp.MustCompile(`^u\d{1,2}$`)
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	teamSuffix  = regexp.MustCompile(`(?i)\s+u\d{1,2}([\s-]*[ivx]+)?$`)
	romanSuffix = regexp.MustCompile(`(?i)[\s-]+[ivx]{1,3}$`)
)

// Identity is the normalized token set of a club/team name, recomputed
// per request and used only as input to the classifier.
type Identity struct {
	// Tokens are the distinguishing name parts after normalization and
	// stop-word removal.
	Tokens []string

	// ClubName is the normalized full club name with age/team suffixes
	// stripped, used by the strict Kinderfestival comparison.
	ClubName string
}

// NewIdentity builds a team identity from a club name and an optional
// team name. cityTokens are home-city name parts to drop: a token like
// "münchen" matches half the league and would classify everything as
// home.
func NewIdentity(clubName, teamName string, cityTokens []string) Identity {
	city := make(map[string]bool, len(cityTokens))
	for _, c := range cityTokens {
		city[Normalize(c)] = true
	}

	seen := make(map[string]bool)
	var tokens []string
	for _, raw := range []string{clubName, teamName} {
		for _, tok := range strings.Fields(Normalize(raw)) {
			if len(tok) < 3 || clubStopWords[tok] || city[tok] || ageGroup.MatchString(tok) || seen[tok] {
				continue
			}
			seen[tok] = true
			tokens = append(tokens, tok)
		}
	}

	return Identity{
		Tokens:   tokens,
		ClubName: StripTeamSuffix(Normalize(clubName)),
	}
}

// Normalize lowercases a name, strips diacritics, maps ß to ss and
// collapses all non-alphanumeric runs to single spaces.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "ß", "ss")
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripTeamSuffix removes trailing age-group and squad-number markers
// ("U9", "U11-II", "III") from a normalized team name, leaving the bare
// club-name portion.
func StripTeamSuffix(s string) string {
	s = teamSuffix.ReplaceAllString(s, "")
	s = romanSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
