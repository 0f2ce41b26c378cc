package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

func testClient(srv *httptest.Server) *Client {
	u, _ := url.Parse(srv.URL)
	c := NewClient([]string{u.Hostname()}, nil, 5*time.Second, zerolog.Nop())
	c.http = srv.Client()
	return c
}

func TestNormalize(t *testing.T) {
	c := NewClient([]string{"www.bfv.de"}, []string{"bfv.de"}, 0, zerolog.Nop())

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"https passes", "https://www.bfv.de/spielplan", "https://www.bfv.de/spielplan", nil},
		{"webcal rewritten", "webcal://www.bfv.de/cal.ics", "https://www.bfv.de/cal.ics", nil},
		{"subdomain of parent domain", "https://service-prod.bfv.de/api", "https://service-prod.bfv.de/api", nil},
		{"parent domain itself", "https://bfv.de/", "https://bfv.de/", nil},
		{"http rejected", "http://www.bfv.de/spielplan", "", ErrUnsupportedScheme},
		{"ftp rejected", "ftp://www.bfv.de/", "", ErrUnsupportedScheme},
		{"foreign host rejected", "https://example.com/cal.ics", "", ErrHostNotAllowed},
		{"suffix spoof rejected", "https://evilbfv.de/", "", ErrHostNotAllowed},
		{"empty rejected", "", "", ErrUnsupportedScheme},
		{"garbage rejected", "https://", "", ErrInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := c.Normalize(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize(%q) error = %v, expected %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) failed: %v", tt.in, err)
			}
			if u.String() != tt.want {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.in, u.String(), tt.want)
			}
		})
	}
}

func TestGetSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotLang, gotCache string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		gotCache = r.Header.Get("Cache-Control")
		w.Write([]byte("BEGIN:VCALENDAR"))
	}))
	defer srv.Close()

	c := testClient(srv)
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != "BEGIN:VCALENDAR" {
		t.Errorf("unexpected body %q", body)
	}
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, expected a browser identity", gotUA)
	}
	if !strings.HasPrefix(gotLang, "de-DE") {
		t.Errorf("Accept-Language = %q, expected German first", gotLang)
	}
	if gotCache != "no-cache" {
		t.Errorf("Cache-Control = %q, expected no-cache", gotCache)
	}
}

func TestGetUpstreamError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(strings.Repeat("x", 3000)))
	}))
	defer srv.Close()

	c := testClient(srv)
	_, err := c.Get(context.Background(), srv.URL)
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, expected 503", upErr.Status)
	}
	if len(upErr.Snippet) != maxSnippet {
		t.Errorf("snippet length = %d, expected cap at %d", len(upErr.Snippet), maxSnippet)
	}
}

func TestGetNoRetry(t *testing.T) {
	var calls int
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv)
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error on 502")
	}
	if calls != 1 {
		t.Errorf("upstream called %d times, expected exactly once", calls)
	}
}

func TestGetDisallowedHostNeverDials(t *testing.T) {
	c := NewClient([]string{"www.bfv.de"}, nil, time.Second, zerolog.Nop())
	_, err := c.Get(context.Background(), "https://internal.example.com/secrets")
	if !errors.Is(err, ErrHostNotAllowed) {
		t.Fatalf("expected ErrHostNotAllowed, got %v", err)
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("short"); got != "short" {
		t.Errorf("Snippet(short) = %q", got)
	}
	long := strings.Repeat("a", maxSnippet+100)
	if got := Snippet(long); len(got) != maxSnippet {
		t.Errorf("Snippet length = %d, expected %d", len(got), maxSnippet)
	}

	// The cap must not split a multi-byte rune; "x" shifts the "ä" runs
	// so the byte limit lands mid-rune.
	mangled := "x" + strings.Repeat("ä", maxSnippet)
	got := Snippet(mangled)
	if len(got) > maxSnippet {
		t.Errorf("Snippet length = %d, expected at most %d", len(got), maxSnippet)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Snippet produced invalid UTF-8: %q", got[len(got)-4:])
	}
}
