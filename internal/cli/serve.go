package cli

import (
	"github.com/spf13/cobra"

	"github.com/fcstern/bfvcal/internal/server"
)

var flagListenAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar endpoint over HTTP",
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&flagListenAddr, "listen", "", "Listen address (overrides LISTEN_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	pipe, cfg, log, err := buildPipeline()
	if err != nil {
		return err
	}

	addr := cfg.ListenAddr
	if flagListenAddr != "" {
		addr = flagListenAddr
	}

	return server.New(pipe, log).ListenAndServe(addr)
}
