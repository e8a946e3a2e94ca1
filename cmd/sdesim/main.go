package main

import (
	"fmt"
	"os"

	"github.com/cuemby/sdesim/pkg/simlog"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sdesim",
	Short: "sdesim - a discrete-event simulation engine",
	Long: `sdesim runs SDESA-style discrete-event simulations from a
declarative model file: activities, flow entities, and resources,
each with a sampled duration.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("sdesim version %s\nCommit: %s\n", Version, Commit))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")

	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replicateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(modelCmd)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	simlog.Init(simlog.Config{
		Level:      simlog.Level(logLevel),
		JSONOutput: logJSON,
	})
}
