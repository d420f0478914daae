package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/collector"
	"github.com/pcfeduardo/aws-backup-analyzer/internal/config"
	"github.com/pcfeduardo/aws-backup-analyzer/internal/export"
	"github.com/pcfeduardo/aws-backup-analyzer/internal/history"
	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
	"github.com/pcfeduardo/aws-backup-analyzer/internal/tabular"
)

// AnalyzeCommand runs the full collection and report pipeline.
type AnalyzeCommand struct {
	Config *config.Config
}

// Run executes the pipeline: collect, assemble, project, write, record.
func (a *AnalyzeCommand) Run(ctx context.Context) error {
	region, err := a.resolveRegion(ctx)
	if err != nil {
		return err
	}

	col, err := collector.New(ctx, collector.Config{Region: region})
	if err != nil {
		return fmt.Errorf("initialize AWS clients (check your credentials and region): %w", err)
	}

	log.Info().Str("region", region).Int("days", a.Config.PeriodDays).Msg("starting analysis")

	doc := report.Assemble(a.collect(ctx, col, region))
	if doc.TotalBackups == 0 {
		log.Warn().Int("days", a.Config.PeriodDays).Msg("no backup jobs found for period")
	}

	tables := tabular.Project(doc)

	timestamp := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(a.Config.OutputDir, fmt.Sprintf("aws_backup_report_%s.json", timestamp))
	workbookPath := filepath.Join(a.Config.OutputDir, fmt.Sprintf("aws_backup_analysis_%s.xlsx", timestamp))

	if err := export.WriteJSON(doc, jsonPath); err != nil {
		return err
	}
	if err := export.WriteWorkbook(tables, workbookPath); err != nil {
		return err
	}

	a.recordRun(doc, jsonPath, workbookPath)
	printSummary(doc, jsonPath, workbookPath)
	return nil
}

// collect gathers all inputs; any collector failure degrades to an empty
// partial result so the rest of the report still assembles.
func (a *AnalyzeCommand) collect(ctx context.Context, col *collector.Collector, region string) report.AssembleInput {
	jobs, err := col.ListBackupJobs(ctx, a.Config.PeriodDays)
	if err != nil {
		log.Warn().Err(err).Msg("backup job collection failed, report will cover partial data")
	}
	plans, err := col.ListBackupPlans(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("backup plan collection failed, report will cover partial data")
	}
	volumes, err := col.ListVolumes(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("volume collection failed, report will cover partial data")
	}
	snapshots, err := col.ListSnapshots(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("snapshot collection failed, report will cover partial data")
	}

	return report.AssembleInput{
		Region:     region,
		PeriodDays: a.Config.PeriodDays,
		Jobs:       jobs,
		Plans:      plans,
		Volumes:    volumes,
		Snapshots:  snapshots,
	}
}

// resolveRegion uses the configured region, or prompts interactively with
// the regions enabled for the account.
func (a *AnalyzeCommand) resolveRegion(ctx context.Context) (string, error) {
	if a.Config.Region != "" {
		return a.Config.Region, nil
	}

	// A regionless client is enough to list regions.
	col, err := collector.New(ctx, collector.Config{Region: "us-east-1"})
	if err != nil {
		return "", fmt.Errorf("initialize AWS clients (check your credentials): %w", err)
	}
	regions, err := col.AvailableRegions(ctx)
	if err != nil {
		return "", fmt.Errorf("list available regions (check your credentials): %w", err)
	}

	return promptRegion(regions)
}

// recordRun appends the run to the local history store. History failures
// never fail the run; the report files are already on disk.
func (a *AnalyzeCommand) recordRun(doc *report.ReportDocument, jsonPath, workbookPath string) {
	dir := a.Config.HistoryDir
	if dir == "" {
		dir = a.Config.OutputDir
	}

	store, err := history.Open(dir)
	if err != nil {
		log.Warn().Err(err).Msg("run history unavailable")
		return
	}
	defer func() { _ = store.Close() }()

	totalGB := 0.0
	for _, job := range doc.Backups {
		totalGB += job.BackupSizeGB
	}

	if _, err := store.Record(history.RunRecord{
		GeneratedAt:   doc.GeneratedAt,
		Region:        doc.Region,
		PeriodDays:    doc.PeriodDays,
		TotalBackups:  doc.TotalBackups,
		TotalSizeGB:   totalGB,
		StatusSummary: doc.StatusSummary,
		JSONPath:      jsonPath,
		WorkbookPath:  workbookPath,
	}); err != nil {
		log.Warn().Err(err).Msg("failed to record run history")
	}
}

func printSummary(doc *report.ReportDocument, jsonPath, workbookPath string) {
	fmt.Printf("JSON report written: %s\n", jsonPath)
	fmt.Printf("Analysis workbook written: %s\n", workbookPath)
	fmt.Printf("Total backups: %d\n", doc.TotalBackups)
	fmt.Println()
	fmt.Println("Status Summary:")
	for _, status := range []report.Status{
		report.StatusCompleted,
		report.StatusCompletedWithIssues,
		report.StatusFailed,
		report.StatusExpired,
		report.StatusPartial,
	} {
		if count, ok := doc.StatusSummary[status]; ok {
			fmt.Printf("%s: %d\n", status, count)
		}
	}
	for status, count := range doc.StatusSummary {
		if !isCanonical(status) {
			fmt.Printf("%s: %d\n", status, count)
		}
	}
}

func isCanonical(status report.Status) bool {
	switch status {
	case report.StatusCompleted, report.StatusCompletedWithIssues,
		report.StatusFailed, report.StatusExpired, report.StatusPartial:
		return true
	}
	return false
}
