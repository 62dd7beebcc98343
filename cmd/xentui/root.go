package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rapidmidiex/xentui/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	digits     int

	// Loaded by the root command before any subcommand runs.
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xentui",
	Short: "Explore xenharmonic chords and keyboards",
	Long: `xentui parses chords written as ratios, cents, equal temperament steps and
monzos, colours keyboards for any equal division of the octave and serves both
over HTTP. Without a subcommand it starts the terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("digits") {
			loaded.Format.FractionDigits = digits
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		cfg = loaded
		slog.Debug("config loaded", "path", configPath, "divisions", cfg.Keyboard.Divisions)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().IntVar(&digits, "digits", 3, "Digits after the decimal point")
}
