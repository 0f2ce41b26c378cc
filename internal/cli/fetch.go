package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fcstern/bfvcal/internal/pipeline"
)

var (
	flagMoreURL  string
	flagClean    bool
	flagHomeOnly bool
	flagFormat   string
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Run the ingestion pipeline once and print the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}

	cmd.Flags().StringVar(&flagMoreURL, "more-url", "", "Explicit pagination endpoint (HTML path)")
	cmd.Flags().BoolVar(&flagClean, "clean", false, "Apply the summary cleaner on the ICS path")
	cmd.Flags().BoolVar(&flagHomeOnly, "home-only", false, "Keep only home fixtures")
	cmd.Flags().StringVar(&flagFormat, "format", "ics", "Output format: ics or json")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, err := ParseFormat(strings.ToLower(flagFormat))
	if err != nil {
		return err
	}

	pipe, _, _, err := buildPipeline()
	if err != nil {
		return err
	}

	res, err := pipe.Run(cmd.Context(), pipeline.Request{
		URL:      args[0],
		MoreURL:  flagMoreURL,
		Clean:    flagClean,
		HomeOnly: flagHomeOnly,
	})
	if err != nil {
		return err
	}

	return WriteOutput(os.Stdout, res, format)
}
