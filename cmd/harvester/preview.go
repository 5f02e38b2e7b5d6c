package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spcuadros/internal/discovery"
	"spcuadros/internal/formatter"
	"spcuadros/internal/pipeline"
	"spcuadros/internal/session"
)

var previewRows int

var previewCmd = &cobra.Command{
	Use:   "preview URL",
	Short: "Fetch one cuadro and print its normalized table without writing files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		refs, err := discovery.StaticSource(args).Refs(cmd.Context())
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			return fmt.Errorf("%w: empty url", discovery.ErrInvalidURL)
		}

		log := newLogger(cfg)

		client, err := session.New(cfg.HTTP, log)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		orch, err := pipeline.New(client, log, pipeline.OptionsFromConfig(cfg))
		if err != nil {
			return err
		}

		name, tbl, err := orch.Preview(cmd.Context(), refs[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%d rows x %d cols)\n\n", name, tbl.NumRows(), tbl.NumCols())
		fmt.Fprint(out, formatter.RenderTable(tbl, previewRows))

		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewRows, "rows", 20, "Maximum rows to print, 0 for all")
}
