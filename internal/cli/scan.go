package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fcstern/bfvcal/internal/ics"
	"github.com/fcstern/bfvcal/internal/scan"
)

var flagTeamsFile string

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan multiple team feeds and print one merged calendar",
		Long: `Reads a JSON array of teams ({"name","url","moreUrl"}) and runs the
pipeline for each through a fixed-size worker pool, printing the merged
de-duplicated calendar to stdout. Failed teams are reported on stderr
and skipped.`,
		RunE: runScan,
	}

	cmd.Flags().StringVar(&flagTeamsFile, "teams", "", "Path to teams JSON file (required)")
	_ = cmd.MarkFlagRequired("teams")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(flagTeamsFile)
	if err != nil {
		return fmt.Errorf("reading teams file: %w", err)
	}

	var teams []scan.Team
	if err := json.Unmarshal(raw, &teams); err != nil {
		return fmt.Errorf("parsing teams file: %w", err)
	}
	if len(teams) == 0 {
		return fmt.Errorf("teams file %s lists no teams", flagTeamsFile)
	}

	pipe, cfg, log, err := buildPipeline()
	if err != nil {
		return err
	}

	results := scan.New(pipe, cfg.ScanWorkers, log).Scan(cmd.Context(), teams)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "team %s: %v\n", r.Team.Name, r.Err)
		}
	}
	if failed == len(results) {
		return fmt.Errorf("all %d teams failed", failed)
	}

	merged := scan.Merge(results)
	_, err = fmt.Fprint(os.Stdout, ics.Serialize(merged, time.Now()))
	return err
}
