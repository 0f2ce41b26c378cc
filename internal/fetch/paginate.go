package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize matches the BFV "load more" endpoint default.
	DefaultPageSize = 5

	// MaxPages bounds the walk; the endpoint keeps answering with the
	// last page forever instead of signalling the end.
	MaxPages = 12

	// minPageContent is the threshold below which a page is considered
	// empty and pagination stops.
	minPageContent = 50
)

// ErrPaginationAborted marks a pagination walk that stopped on a fetch
// failure rather than a natural end. Pages collected before the failure
// are still returned; callers treat this as partial data, not a hard
// error.
var ErrPaginationAborted = errors.New("pagination aborted")

// LoadPages walks the "load more" endpoint starting at the given URL,
// advancing the from parameter by the page size until the endpoint runs
// dry. Pages are detected as exhausted when a response is shorter than
// minPageContent characters or byte-identical to one already seen.
//
// Returns the fetched pages joined by newlines and the page count. On a
// mid-walk fetch failure the partial result is returned together with an
// error wrapping ErrPaginationAborted.
func (c *Client) LoadPages(ctx context.Context, moreURL string) (string, int, error) {
	u, err := c.Normalize(moreURL)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrPaginationAborted, err)
	}

	q := u.Query()
	size := DefaultPageSize
	if v, err := strconv.Atoi(q.Get("size")); err == nil && v > 0 {
		size = v
	}
	from := 0
	if v, err := strconv.Atoi(q.Get("from")); err == nil && v >= 0 {
		from = v
	}

	var (
		pages []string
		seen  = make(map[string]bool)
	)
	for page := 0; page < MaxPages; page++ {
		q.Set("from", strconv.Itoa(from))
		q.Set("size", strconv.Itoa(size))
		u.RawQuery = q.Encode()

		body, err := c.Get(ctx, u.String())
		if err != nil {
			c.log.Warn().Err(err).Int("page", page).Msg("pagination stopped on fetch failure")
			return strings.Join(pages, "\n"), len(pages), fmt.Errorf("%w after %d pages: %v", ErrPaginationAborted, len(pages), err)
		}

		content := strings.TrimSpace(string(body))
		if len(content) < minPageContent {
			break
		}
		sum := sha256.Sum256(body)
		digest := hex.EncodeToString(sum[:])
		if seen[digest] {
			break
		}
		seen[digest] = true

		pages = append(pages, content)
		from += size
	}

	c.log.Debug().Int("pages", len(pages)).Msg("pagination complete")
	return strings.Join(pages, "\n"), len(pages), nil
}
