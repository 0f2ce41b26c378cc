package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fcstern/bfvcal/internal/event"
	"github.com/fcstern/bfvcal/internal/extract"
	"github.com/fcstern/bfvcal/internal/fetch"
	"github.com/fcstern/bfvcal/internal/ics"
	"github.com/fcstern/bfvcal/internal/match"
	"github.com/fcstern/bfvcal/internal/textclean"
)

// ErrMissingParameter is returned when the required source URL is
// absent from a request.
var ErrMissingParameter = errors.New("missing required parameter")

// reportEventLimit caps how many parsed events the debug report embeds.
const reportEventLimit = 10

// Source fetches raw content. Satisfied by fetch.Client; tests swap in
// a canned implementation.
type Source interface {
	Get(ctx context.Context, url string) ([]byte, error)
	LoadPages(ctx context.Context, moreURL string) (string, int, error)
}

// Config is the fixed per-deployment half of a pipeline run: the team
// whose fixtures are being ingested and its home ground.
type Config struct {
	ClubName   string
	TeamName   string
	CityTokens []string
	HomeVenue  string
	Location   *time.Location
}

// Request is the variable half, taken from the triggering call.
type Request struct {
	URL     string
	MoreURL string
	// Clean passes ICS summaries through the summary cleaner; the ICS
	// path otherwise preserves upstream text as-is.
	Clean bool
	// HomeOnly drops everything not classified as a home fixture.
	HomeOnly bool
}

// Report is the diagnostic payload returned for debug requests.
type Report struct {
	URL            string          `json:"url"`
	Format         string          `json:"format"`
	FetchedBytes   int             `json:"fetchedBytes"`
	MoreURL        string          `json:"moreUrl,omitempty"`
	Pages          int             `json:"pages,omitempty"`
	PaginationNote string          `json:"paginationNote,omitempty"`
	ParseStats     *ics.ParseStats `json:"parseStats,omitempty"`
	ExtractStats   *extract.Stats  `json:"extractStats,omitempty"`
	Duplicates     int             `json:"duplicates"`
	EventCount     int             `json:"eventCount"`
	Unrecognized   bool            `json:"unrecognizedFormat,omitempty"`
	Events         []event.Event   `json:"events"`
}

// Result carries the serialized calendar, the full event list and the
// run diagnostics (which embed only the first few events).
type Result struct {
	Calendar string
	Events   []event.Event
	Report   Report
}

// Pipeline wires the stages together around one Source.
type Pipeline struct {
	source Source
	cfg    Config
	now    func() time.Time
	log    zerolog.Logger
}

// New creates a pipeline. now is the DTSTAMP clock; pass nil for
// time.Now.
func New(source Source, cfg Config, now func() time.Time, log zerolog.Logger) *Pipeline {
	if now == nil {
		now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Pipeline{source: source, cfg: cfg, now: now, log: log}
}

// Run executes one full ingestion pass for the request. Fetch and
// validation failures on the primary URL are fatal; pagination failures
// and per-event anomalies are not.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if req.URL == "" {
		return nil, ErrMissingParameter
	}

	body, err := p.source.Get(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	report := Report{URL: req.URL, FetchedBytes: len(body)}
	classifier := match.NewClassifier(match.NewIdentity(p.cfg.ClubName, p.cfg.TeamName, p.cfg.CityTokens))

	var events []event.Event
	if ics.IsCalendar(body) {
		report.Format = "ics"
		events = p.runCalendar(body, classifier, req, &report)
	} else {
		report.Format = "html"
		events = p.runHTML(ctx, body, classifier, req, &report)
		report.Unrecognized = len(events) == 0
	}

	if req.HomeOnly {
		events = filterHome(events)
	}

	report.EventCount = len(events)
	report.Events = events
	if len(report.Events) > reportEventLimit {
		report.Events = report.Events[:reportEventLimit]
	}

	p.log.Info().
		Str("url", req.URL).
		Str("format", report.Format).
		Int("events", report.EventCount).
		Msg("pipeline run complete")

	return &Result{
		Calendar: ics.Serialize(events, p.now()),
		Events:   events,
		Report:   report,
	}, nil
}

// runCalendar is the ICS pass-through path: parse, optionally clean,
// classify for location fill, de-duplicate.
func (p *Pipeline) runCalendar(body []byte, classifier *match.Classifier, req Request, report *Report) []event.Event {
	events, stats := ics.Parse(string(body))
	report.ParseStats = &stats

	for i := range events {
		if req.Clean {
			events[i].Summary = textclean.CleanSummary(events[i].Summary)
		}
		verdict := classifier.Classify(events[i].Summary)
		events[i].HomeAway = verdict.HomeAway
		if events[i].Location == "" {
			events[i].Location = match.InferLocation(verdict.HomeAway, p.cfg.HomeVenue, match.NoInfoSentinel)
		}
	}

	unique, dropped := event.Dedupe(events)
	report.Duplicates = dropped
	return unique
}

// runHTML is the scraping path: gather paginated content behind the
// primary page, then extract.
func (p *Pipeline) runHTML(ctx context.Context, body []byte, classifier *match.Classifier, req Request, report *Report) []event.Event {
	combined := string(body)

	moreURL := req.MoreURL
	if moreURL == "" {
		moreURL = DeriveMoreURL(req.URL)
	}
	if moreURL != "" {
		report.MoreURL = moreURL
		pages, n, err := p.source.LoadPages(ctx, moreURL)
		report.Pages = n
		if err != nil {
			// Partial pages are still used.
			report.PaginationNote = fetch.Snippet(err.Error())
			p.log.Warn().Err(err).Str("moreUrl", moreURL).Msg("pagination incomplete")
		}
		if pages != "" {
			combined += "\n" + pages
		}
	}

	extractor := extract.New(classifier, p.cfg.HomeVenue, p.cfg.Location, p.log)
	events, stats := extractor.Extract(combined)
	report.ExtractStats = &stats
	report.Duplicates = stats.Duplicates
	return events
}

func filterHome(events []event.Event) []event.Event {
	kept := events[:0]
	for _, ev := range events {
		if ev.HomeAway == event.Home {
			kept = append(kept, ev)
		}
	}
	return kept
}
