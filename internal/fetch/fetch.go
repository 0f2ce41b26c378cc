package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	// UserAgent mimics a desktop browser; the BFV site serves reduced
	// markup to obvious bots.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

	acceptLanguage = "de-DE,de;q=0.9,en;q=0.8"

	// maxSnippet bounds the upstream body carried inside an error so
	// diagnostics never grow with the payload.
	maxSnippet = 1200

	// maxBody caps how much of any upstream response is read.
	maxBody = 5 * 1024 * 1024

	defaultTimeout = 20 * time.Second
)

// Request validation errors. Each maps to a distinct client-facing
// condition; the HTTP layer must never collapse them into a generic
// failure.
var (
	ErrInvalidURL        = errors.New("invalid url")
	ErrUnsupportedScheme = errors.New("unsupported scheme, only https is allowed")
	ErrHostNotAllowed    = errors.New("host not on allow-list")
)

// UpstreamError reports a transport failure or non-2xx upstream answer.
type UpstreamError struct {
	URL     string
	Status  int
	Snippet string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: upstream status %d", e.URL, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client fetches from the allow-listed host set.
type Client struct {
	http         *http.Client
	hosts        map[string]bool
	hostSuffixes []string
	log          zerolog.Logger
}

// NewClient creates a fetcher allowing exactly the given hosts plus any
// subdomain of the given parent domains.
func NewClient(hosts []string, parentDomains []string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hostSet := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		hostSet[strings.ToLower(h)] = true
	}
	suffixes := make([]string, 0, len(parentDomains))
	for _, d := range parentDomains {
		suffixes = append(suffixes, "."+strings.TrimPrefix(strings.ToLower(d), "."))
	}
	return &Client{
		http:         &http.Client{Timeout: timeout},
		hosts:        hostSet,
		hostSuffixes: suffixes,
		log:          log,
	}
}

// Normalize validates a raw source URL: webcal:// is rewritten to
// https://, any other non-https scheme is rejected, and the host must
// pass the allow-list.
func (c *Client) Normalize(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if u.Scheme == "webcal" {
		u.Scheme = "https"
	}
	if u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if !c.hostAllowed(u.Hostname()) {
		return nil, fmt.Errorf("%w: %q", ErrHostNotAllowed, u.Hostname())
	}
	return u, nil
}

func (c *Client) hostAllowed(host string) bool {
	host = strings.ToLower(host)
	if c.hosts[host] {
		return true
	}
	for _, suffix := range c.hostSuffixes {
		if strings.HasSuffix(host, suffix) || host == strings.TrimPrefix(suffix, ".") {
			return true
		}
	}
	return false
}

// Get validates the URL and issues a single GET, following redirects,
// with no caching and no retries. A transport error or non-2xx status
// yields an UpstreamError carrying the status and a truncated body
// snippet.
func (c *Client) Get(ctx context.Context, raw string) ([]byte, error) {
	u, err := c.Normalize(raw)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/calendar,text/html,application/xhtml+xml,*/*;q=0.8")
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Cache-Control", "no-cache")

	c.log.Debug().Str("url", u.String()).Msg("fetching upstream")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &UpstreamError{URL: u.String(), Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			URL:     u.String(),
			Status:  resp.StatusCode,
			Snippet: Snippet(string(body)),
		}
	}

	c.log.Debug().Str("url", u.String()).Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("fetched")
	return body, nil
}

// Snippet truncates diagnostic text to a bounded length, backing off to
// a rune boundary so error payloads stay valid UTF-8.
func Snippet(s string) string {
	if len(s) <= maxSnippet {
		return s
	}
	cut := maxSnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
