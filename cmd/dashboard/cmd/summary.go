package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print every dashboard section as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ov, err := newDashboard().Overview(cmd.Context())
		if err != nil {
			return err
		}

		output, err := json.MarshalIndent(ov, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to generate JSON summary: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	},
}
