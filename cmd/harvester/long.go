package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"spcuadros/internal/persist"
	"spcuadros/internal/table"
)

var (
	longPeriod string
	longIn     string
	longOut    string
)

var longCmd = &cobra.Command{
	Use:   "long",
	Short: "Reshape a normalized CSV into periodo, variable, serie, medida, valor rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		wide, err := persist.ReadTable(longIn)
		if err != nil {
			return err
		}

		long := table.ToLong(wide, longPeriod, cfg.Extraction.HeaderSeparator)

		out := longOut
		if out == "" {
			out = strings.TrimSuffix(longIn, filepath.Ext(longIn)) + "_long.csv"
		}

		data, err := persist.EncodeCSV(long)
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", long.NumRows(), out)

		return nil
	},
}

func init() {
	longCmd.Flags().StringVar(&longPeriod, "period", "", "Period label written to every row, e.g. 202501")
	longCmd.Flags().StringVar(&longIn, "in", "", "Normalized CSV to reshape")
	longCmd.Flags().StringVar(&longOut, "out", "", "Output CSV (default: <in>_long.csv)")
	_ = longCmd.MarkFlagRequired("period")
	_ = longCmd.MarkFlagRequired("in")
}
