package main

import (
	"github.com/spf13/cobra"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/config"
)

var (
	analyzeRegion string
	analyzeDays   int
	analyzeOutDir string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze backup activity and generate the report files",
	Long: `Analyze backup activity in one region.

Fetches backup jobs for the selected period, backup plans with their rules
and selections, EBS volumes, and snapshots, then writes:
- aws_backup_report_<timestamp>.json   (raw report document)
- aws_backup_analysis_<timestamp>.xlsx (multi-sheet analysis)`,
	Example: `  backup-analyzer analyze                      # prompt for a region
  backup-analyzer analyze --region us-east-1   # analyze a specific region
  backup-analyzer analyze --days 30            # shorter analysis window
  backup-analyzer analyze --out ./reports      # write files elsewhere`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeRegion, "region", "r", "", "AWS region to analyze (prompted when empty)")
	analyzeCmd.Flags().IntVarP(&analyzeDays, "days", "d", 0, "Analysis period in days (default 90)")
	analyzeCmd.Flags().StringVarP(&analyzeOutDir, "out", "o", "", "Directory for the report files (default \".\")")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeRegion != "" {
		cfg.Region = analyzeRegion
	}
	if analyzeDays > 0 {
		cfg.PeriodDays = analyzeDays
	}
	if analyzeOutDir != "" {
		cfg.OutputDir = analyzeOutDir
	}

	analyze := &AnalyzeCommand{Config: cfg}
	return analyze.Run(cmd.Context())
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
