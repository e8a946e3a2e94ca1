package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuemby/sdesim/pkg/simlog"
	"github.com/cuemby/sdesim/pkg/simrepo"
	"github.com/cuemby/sdesim/pkg/simserver"
	"github.com/cuemby/sdesim/pkg/simstore"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP surface for running models as a service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		metrics, _ := cmd.Flags().GetBool("enable-metrics")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		logger := simlog.WithComponent("serve")

		repo, err := openRepo(dataDir)
		if err != nil {
			return err
		}
		defer repo.Close()

		srv := simserver.New(metrics, repo)

		errCh := make(chan error, 1)
		go func() {
			fmt.Printf("✓ sdesim serving on %s (/healthz, /metrics, /runs, /models)\n", addr)
			errCh <- srv.Start(addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case sig := <-sigCh:
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
			fmt.Println("✓ shutting down")
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("enable-metrics", true, "Report run outcomes to the Prometheus collectors exposed at /metrics")
	serveCmd.Flags().String("data-dir", "./sdesim-data", "Directory for the model/run BoltDB store")
}

// openRepo opens (creating the directory if necessary) the BoltDB
// store at dataDir and wraps it in a simrepo.Repository.
func openRepo(dataDir string) (*simrepo.Repository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}
	store, err := simstore.NewBoltStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return simrepo.New(store), nil
}
