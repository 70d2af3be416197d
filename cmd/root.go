package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/styx-analyse/styx-session/internal"
)

var (
	verbose  bool
	dataDir  string
	timezone string
	version  string = "dev"
	commit   string = "unknown"
	date     string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "styx-session",
	Short: "Import and analyse e-bike telemetry sessions",
	Long: `A CLI to import, browse and analyse rides recorded by an e-bike telemetry logger.

Each recording is cleaned (speed, voltage, altitude and current outliers),
enriched with a GPS distance and stored as one session. Lifetime totals are
kept up to date as sessions are imported and deleted.

Features:
  • Import recorder CSV exports and SQLite dumps
  • Range summaries: distance, duration, speed, altitude, energy
  • Instant readout at any sample
  • Export as Markdown, JSON, YAML, JSONL, CSV, GeoJSON or HTML charts
  • Lifetime statistics with consistency checks

Quick Start:
  styx-session import ride.csv                       # Import a recording
  styx-session list                                  # List recent sessions
  styx-session show <session-id> --from 20 --to 80   # Summarise part of a ride
  styx-session export <session-id> --format html     # Chart a ride`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetLogOutput(cmd.ErrOrStderr())
		internal.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default $STYX_SESSION_HOME or ~/.styx-session)")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "Time zone session ids are expressed in (default from config, Europe/Paris)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig resolves the configuration from the data directory and flags
func loadConfig() (internal.Config, error) {
	cfg, err := internal.LoadConfig(dataDir)
	if err != nil {
		return internal.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if timezone != "" {
		cfg.Timezone = timezone
		if err := cfg.Validate(); err != nil {
			return internal.Config{}, err
		}
	}
	return cfg, nil
}

// openStore opens the session store of the configured data directory
func openStore() (*internal.Store, internal.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, internal.Config{}, err
	}
	store, err := internal.OpenStore(cfg)
	if err != nil {
		return nil, internal.Config{}, fmt.Errorf("failed to open data directory %s: %w", cfg.DataDir, err)
	}
	return store, cfg, nil
}

// sessionIDArg accepts a full session id or its stamp, with or without the
// prefix and extension
func sessionIDArg(arg string) string {
	id := strings.TrimSpace(arg)
	if !strings.HasPrefix(id, "session_") {
		id = "session_" + id
	}
	if !strings.HasSuffix(id, ".csv") {
		id += ".csv"
	}
	return id
}
