package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spcuadros/internal/discovery"
	"spcuadros/internal/pipeline"
	"spcuadros/internal/session"
)

var (
	runURLs     string
	runRawDir   string
	runCSVDir   string
	runContext  string
	runWorkers  int
	runStrategy string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, validate, normalize and persist every URL of a list",
	Example: `  harvester run --urls cuadros_202501.txt --raw-dir data/html/202501 --csv-dir data/csv/202501 --context 202501
  cat urls.txt | harvester run --urls - --raw-dir out/html --csv-dir out/csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if runRawDir != "" {
			cfg.Output.RawDir = runRawDir
		}
		if runCSVDir != "" {
			cfg.Output.NormalizedDir = runCSVDir
		}
		if runContext != "" {
			cfg.Batch.Context = runContext
		}
		if runWorkers > 0 {
			cfg.Batch.MaxWorkers = runWorkers
		}
		if runStrategy != "" {
			cfg.Extraction.Strategy = runStrategy
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log := newLogger(cfg)
		ctx := cmd.Context()

		refs, err := discovery.FromFile(ctx, runURLs)
		if err != nil {
			return err
		}

		client, err := session.New(cfg.HTTP, log)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		orch, err := pipeline.New(client, log, pipeline.OptionsFromConfig(cfg))
		if err != nil {
			return err
		}

		summary, _, err := orch.Run(ctx, refs, cfg.Output.RawDir, cfg.Output.NormalizedDir, cfg.Batch.Context)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), summary)

		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runURLs, "urls", "-", "File with one URL per line, or - for stdin")
	runCmd.Flags().StringVar(&runRawDir, "raw-dir", "", "Directory for raw artifacts (overrides config)")
	runCmd.Flags().StringVar(&runCSVDir, "csv-dir", "", "Directory for normalized CSV tables (overrides config)")
	runCmd.Flags().StringVar(&runContext, "context", "", "Label attached to every log line of the batch")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Maximum concurrent workers (overrides config)")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "", "Numeric normalization strategy: node or global (overrides config)")
}
