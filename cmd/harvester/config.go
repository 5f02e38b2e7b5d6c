package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spcuadros/internal/config"
)

var (
	initRawDir string
	initCSVDir string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or check a configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init PATH",
	Short: "Write the default configuration to PATH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		cfg.Output.RawDir = initRawDir
		cfg.Output.NormalizedDir = initCSVDir

		if err := cfg.SaveConfig(args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "configuration written to %s\n", args[0])

		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check PATH",
	Short: "Load and validate the configuration at PATH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), cfg)

		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&initRawDir, "raw-dir", "out/html", "Raw artifact directory written to the file")
	configInitCmd.Flags().StringVar(&initCSVDir, "csv-dir", "out/csv", "Normalized CSV directory written to the file")

	configCmd.AddCommand(configInitCmd, configCheckCmd)
}
