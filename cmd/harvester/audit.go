package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spcuadros/internal/discovery"
	"spcuadros/internal/persist"
)

var (
	auditURLs     string
	auditExpected int
	auditDir      string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Compare the number of published cuadros with the CSV files on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		expected := auditExpected

		if auditURLs != "" {
			refs, err := discovery.FromFile(cmd.Context(), auditURLs)
			if err != nil {
				return err
			}
			expected = len(refs)
		}

		report, err := persist.Audit(expected, auditDir)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), report)

		return nil
	},
}

func init() {
	auditCmd.Flags().StringVar(&auditURLs, "urls", "", "URL list whose length is the expected count")
	auditCmd.Flags().IntVar(&auditExpected, "expected", 0, "Expected number of cuadros when no --urls is given")
	auditCmd.Flags().StringVar(&auditDir, "dir", "", "Normalized CSV directory to audit")
	_ = auditCmd.MarkFlagRequired("dir")
}
