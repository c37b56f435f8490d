// skyhop is a side-scrolling jump game for the terminal, a desktop window
// and SSH.
//
// Usage:
//
//	skyhop play              - Play in the terminal
//	skyhop play -f window    - Play in a desktop window
//	skyhop serve             - Start SSH server for remote play
//	skyhop replay list       - Browse recorded tapes
//	skyhop replay run <id>   - Verify a tape headlessly
//	skyhop config            - Print the effective configuration
//	skyhop frontends         - List available frontends
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Load a custom configuration file
//	--db <path>           - Set database path (default: ~/.skyhop/skyhop.db)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyhop/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	// Set up by the root command before any subcommand runs.
	logger *log.Logger
	cfg    config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyhop",
	Short: "skyhop - Hop between the pipes",
	Long: `skyhop is a side-scrolling jump game. Tap jump to rise, fall between
taps, and pass through the openings of the obstacle pairs.

Available commands:
  play       - Play locally in the terminal or a window
  serve      - Start SSH server for remote play
  replay     - List, verify and delete recorded tapes
  config     - Print the effective configuration
  frontends  - List available frontends

Examples:
  skyhop play
  skyhop play --frontend window --record
  skyhop serve --ssh :2222
  skyhop replay list`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyhop/skyhop.db", "Path to tape database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(frontendsCmd)
}

// setup builds the logger and loads the configuration.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "skyhop",
		Level:           level,
	})

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}
	return nil
}

// resolveSeed returns the --seed value, or a time-based seed when it is 0.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
