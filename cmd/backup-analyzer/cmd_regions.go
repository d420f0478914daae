package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/collector"
)

// regionsCmd represents the regions command
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the AWS regions enabled for the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collector.New(cmd.Context(), collector.Config{Region: "us-east-1"})
		if err != nil {
			return fmt.Errorf("initialize AWS clients (check your credentials): %w", err)
		}

		regions, err := col.AvailableRegions(cmd.Context())
		if err != nil {
			return fmt.Errorf("list available regions: %w", err)
		}

		for _, region := range regions {
			fmt.Println(region)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
