// Package main provides the harvester command-line tool for downloading and
// normalizing cuadros.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"spcuadros/internal/config"
	"spcuadros/internal/logger"
)

var (
	configFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:           "harvester",
	Short:         "Download, validate and normalize cuadros published as HTML tables",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (overrides config)")

	rootCmd.AddCommand(runCmd, previewCmd, longCmd, auditCmd, configCmd)
}

// loadConfig reads --config (or the defaults) and applies the logging flags.
// Callers validate after their own overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()

	if configFile != "" {
		var err error

		cfg, err = config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
