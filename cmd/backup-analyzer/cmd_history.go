package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/history"
)

var historyDir string

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir := historyDir
		if dir == "" {
			dir = cfg.HistoryDir
		}
		if dir == "" {
			dir = cfg.OutputDir
		}

		store, err := history.Open(dir)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		runs := store.List()
		if len(runs) == 0 {
			fmt.Println("No previous runs recorded.")
			return nil
		}

		for _, run := range runs {
			fmt.Printf("%s  region=%s  days=%d  backups=%d  size_gb=%.2f\n",
				run.GeneratedAt, run.Region, run.PeriodDays, run.TotalBackups, run.TotalSizeGB)
			fmt.Printf("    json=%s\n    xlsx=%s\n", run.JSONPath, run.WorkbookPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDir, "dir", "", "Directory containing the history database")
}
