package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func pageHandler(pages []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := r.URL.Query().Get("from")
		size := r.URL.Query().Get("size")
		idx := 0
		fmt.Sscanf(from, "%d", &idx)
		sz := DefaultPageSize
		fmt.Sscanf(size, "%d", &sz)
		if sz > 0 {
			idx /= sz
		}
		if idx >= len(pages) {
			// The real endpoint repeats the last page instead of
			// returning an empty one.
			idx = len(pages) - 1
		}
		w.Write([]byte(pages[idx]))
	}
}

func TestLoadPagesStopsOnRepeatedContent(t *testing.T) {
	pages := []string{
		strings.Repeat("match row one ", 10),
		strings.Repeat("match row two ", 10),
		strings.Repeat("match row three ", 10),
	}
	srv := httptest.NewTLSServer(pageHandler(pages))
	defer srv.Close()

	c := testClient(srv)
	combined, n, err := c.LoadPages(context.Background(), srv.URL+"/?from=0&size=5")
	if err != nil {
		t.Fatalf("LoadPages failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("fetched %d pages, expected 3 (stop on first repeat)", n)
	}
	for _, p := range pages {
		if !strings.Contains(combined, strings.TrimSpace(p)) {
			t.Errorf("combined output missing page content %q", p[:20])
		}
	}
}

func TestLoadPagesStopsOnShortPage(t *testing.T) {
	var calls int
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(strings.Repeat("schedule content ", 10)))
			return
		}
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := testClient(srv)
	_, n, err := c.LoadPages(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("LoadPages failed: %v", err)
	}
	if n != 1 {
		t.Errorf("fetched %d pages, expected 1 (second page below threshold)", n)
	}
}

func TestLoadPagesAdvancesFromBySize(t *testing.T) {
	var froms []string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		froms = append(froms, r.URL.Query().Get("from"))
		if len(froms) > 2 {
			w.Write([]byte("{}"))
			return
		}
		w.Write([]byte(strings.Repeat(r.URL.Query().Get("from")+" row ", 20)))
	}))
	defer srv.Close()

	c := testClient(srv)
	if _, _, err := c.LoadPages(context.Background(), srv.URL+"/?size=7"); err != nil {
		t.Fatalf("LoadPages failed: %v", err)
	}
	want := []string{"0", "7", "14"}
	if len(froms) != len(want) {
		t.Fatalf("observed from values %v, expected %v", froms, want)
	}
	for i := range want {
		if froms[i] != want[i] {
			t.Errorf("page %d: from = %q, expected %q", i, froms[i], want[i])
		}
	}
}

func TestLoadPagesCapsPageCount(t *testing.T) {
	var calls int
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Every page unique and long enough: only the cap stops the walk.
		fmt.Fprintf(w, "%s %s", r.URL.Query().Get("from"), strings.Repeat("unique row ", 10))
	}))
	defer srv.Close()

	c := testClient(srv)
	_, n, err := c.LoadPages(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("LoadPages failed: %v", err)
	}
	if n != MaxPages || calls != MaxPages {
		t.Errorf("fetched %d pages over %d calls, expected cap at %d", n, calls, MaxPages)
	}
}

func TestLoadPagesPartialOnFailure(t *testing.T) {
	var calls int
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "%d %s", calls, strings.Repeat("row ", 20))
	}))
	defer srv.Close()

	c := testClient(srv)
	combined, n, err := c.LoadPages(context.Background(), srv.URL)
	if !errors.Is(err, ErrPaginationAborted) {
		t.Fatalf("expected ErrPaginationAborted, got %v", err)
	}
	if n != 2 {
		t.Errorf("fetched %d pages before failure, expected 2", n)
	}
	if !strings.Contains(combined, "1 row") || !strings.Contains(combined, "2 row") {
		t.Errorf("partial result missing collected pages: %q", combined[:40])
	}
}

func TestLoadPagesDisallowedHost(t *testing.T) {
	c := NewClient([]string{"www.bfv.de"}, nil, 0, zerolog.Nop())
	_, n, err := c.LoadPages(context.Background(), "https://example.com/more")
	if !errors.Is(err, ErrPaginationAborted) {
		t.Fatalf("expected ErrPaginationAborted, got %v", err)
	}
	if n != 0 {
		t.Errorf("fetched %d pages from disallowed host, expected 0", n)
	}
}
