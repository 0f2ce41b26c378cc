// Package scan fans one pipeline out over many team feeds through a
// fixed-size worker pool.
package scan

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fcstern/bfvcal/internal/event"
	"github.com/fcstern/bfvcal/internal/pipeline"
)

// DefaultWorkers bounds concurrent outbound fetches during a scan.
const DefaultWorkers = 4

// Team is one feed to scan.
type Team struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	MoreURL string `json:"moreUrl,omitempty"`
}

// Result is the outcome for one team. A failed team carries its error
// and an empty event list; other teams are unaffected.
type Result struct {
	Team   Team
	Events []event.Event
	Err    error
}

// Scanner runs pipelines for several teams concurrently. Each worker
// processes one team to completion before taking the next.
type Scanner struct {
	pipe    *pipeline.Pipeline
	workers int
	log     zerolog.Logger
}

func New(pipe *pipeline.Pipeline, workers int, log zerolog.Logger) *Scanner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Scanner{pipe: pipe, workers: workers, log: log}
}

// Scan fetches and ingests every team's feed and returns results in
// input order regardless of completion order.
func (s *Scanner) Scan(ctx context.Context, teams []Team) []Result {
	results := make([]Result, len(teams))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.scanOne(ctx, teams[i])
			}
		}()
	}

	for i := range teams {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (s *Scanner) scanOne(ctx context.Context, team Team) Result {
	res, err := s.pipe.Run(ctx, pipeline.Request{URL: team.URL, MoreURL: team.MoreURL})
	if err != nil {
		s.log.Warn().Err(err).Str("team", team.Name).Msg("scan failed for team")
		return Result{Team: team, Err: err}
	}
	return Result{Team: team, Events: res.Events}
}

// Merge flattens scan results into one de-duplicated event list,
// preserving team input order.
func Merge(results []Result) []event.Event {
	var all []event.Event
	for _, r := range results {
		all = append(all, r.Events...)
	}
	unique, _ := event.Dedupe(all)
	return unique
}
