package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fcstern/bfvcal/internal/config"
	"github.com/fcstern/bfvcal/internal/fetch"
	"github.com/fcstern/bfvcal/internal/logging"
	"github.com/fcstern/bfvcal/internal/pipeline"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bfvcal",
		Short: "Fetch and normalize BFV match calendars",
		Long: `bfvcal turns BFV calendar feeds and schedule pages into clean,
de-duplicated, home/away-classified ICS calendars.

Configuration is read from environment variables (a local .env file is
honored); see internal/config for the full list.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd(), newFetchCmd(), newScanCmd())

	return cmd
}

// buildPipeline loads configuration and assembles the pipeline all
// subcommands share.
func buildPipeline() (*pipeline.Pipeline, *config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), err
	}

	log := logging.New(cfg.AppEnv)
	client := fetch.NewClient(cfg.AllowedHosts, cfg.AllowedDomains, cfg.FetchTimeout, log)

	pipe := pipeline.New(client, pipeline.Config{
		ClubName:   cfg.ClubName,
		TeamName:   cfg.TeamName,
		CityTokens: cfg.CityTokens,
		HomeVenue:  cfg.HomeVenue,
		Location:   cfg.Location(),
	}, nil, log)

	return pipe, cfg, log, nil
}
