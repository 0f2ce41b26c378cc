package pipeline

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// moreURLTemplate is the partial-HTML "load more" endpoint keyed by the
// permanent team id embedded in schedule page URLs.
const moreURLTemplate = "https://www.bfv.de/partial/spieltage/mannschaft/%s?from=0&size=5"

// teamIDSegment matches the fixed-length alphanumeric team id the BFV
// site uses as a path segment, e.g. 016PE2BMKK.
var teamIDSegment = regexp.MustCompile(`^[0-9A-Z]{10}$`)

// DeriveMoreURL builds the pagination endpoint from a schedule page URL
// by locating the team-id path segment. Returns "" when no segment
// qualifies; pagination is then skipped.
func DeriveMoreURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if teamIDSegment.MatchString(seg) && strings.ContainsAny(seg, "0123456789") {
			return fmt.Sprintf(moreURLTemplate, seg)
		}
	}
	return ""
}
