package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cardstack/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath   string
	visibleCount int
	debug        bool
	logFile      string

	// Set up by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd runs the interactive card stack.
var rootCmd = &cobra.Command{
	Use:   "cardstack",
	Short: "Swipeable card stack in the terminal",
	Long: `cardstack shows a stack of cards that can be dragged with the mouse
and flung off the stack in one of four directions.

Drag the top card and release it with enough momentum to swipe it away,
or use the arrow keys. Press ? for all keys.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().IntVar(&visibleCount, "visible", 0, "number of stacked cards (1-10, overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file (overrides config)")

	rootCmd.AddCommand(simulateCmd)
}

// setup loads configuration and builds the logger shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("visible") {
		loaded.VisibleCount = visibleCount
	}
	if logFile != "" {
		loaded.Log.File = logFile
	}
	if debug {
		loaded.Log.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	logger, err = newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.Int("visible_count", cfg.VisibleCount),
		zap.Duration("settle_delay", cfg.SettleDelay),
		zap.Int("cards", len(cfg.Deck())))
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
