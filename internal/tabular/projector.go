package tabular

import (
	"sort"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

// Sheet names, in workbook order.
const (
	SheetSummary         = "Summary"
	SheetUniqueResources = "Unique Resources"
	SheetBackupPlans     = "Backup Plans"
	SheetBackupJobs      = "Backup Jobs"
	SheetResourceSummary = "Resource Summary"
	SheetMonthlySummary  = "Monthly Resource Summary"
	SheetVolumes         = "EBS Volumes"
	SheetSnapshots       = "Snapshots"
)

// Project converts the report document into the fixed set of flat tables.
// Pure: it mutates nothing and returns identical output on every call for
// the same document.
func Project(doc *report.ReportDocument) []Table {
	return []Table{
		summaryTable(doc),
		uniqueResourcesTable(doc),
		plansTable(doc),
		jobsTable(doc),
		resourceSummaryTable(doc),
		monthlyPivotTable(doc),
		volumesTable(doc),
		snapshotsTable(doc),
	}
}

// summaryTable builds the label/value overview pairs. With an empty job set
// the first/last backup rows carry the N/A sentinel instead of a bogus
// zero date.
func summaryTable(doc *report.ReportDocument) Table {
	firstBackup := report.NotApplicable
	lastBackup := report.NotApplicable
	totalGB := 0.0
	for i, job := range doc.Backups {
		if i == 0 || job.CreationDate < firstBackup {
			firstBackup = job.CreationDate
		}
		if i == 0 || job.CreationDate > lastBackup {
			lastBackup = job.CreationDate
		}
		totalGB += job.BackupSizeGB
	}

	rows := [][]Cell{
		{"Report Generation Date", doc.GeneratedAt},
		{"Region", doc.Region},
		{"Period (days)", doc.PeriodDays},
		{"First Backup Date", firstBackup},
		{"Last Backup Date", lastBackup},
		{"Total Unique Resources", len(doc.UniqueResources)},
		{"Total Backups", doc.TotalBackups},
		{"Total Size (TB)", round2(totalGB / 1024)},
		{"", ""},
		{"Job Status Summary:", ""},
	}
	// Fixed five status rows; any other raw state stays JSON-only.
	for _, status := range []report.Status{
		report.StatusCompleted,
		report.StatusCompletedWithIssues,
		report.StatusFailed,
		report.StatusExpired,
		report.StatusPartial,
	} {
		rows = append(rows, []Cell{string(status), doc.StatusSummary[status]})
	}

	return Table{
		Name:   SheetSummary,
		Header: []string{"Report Information", "Values"},
		Rows:   rows,
	}
}

func uniqueResourcesTable(doc *report.ReportDocument) Table {
	t := Table{
		Name:   SheetUniqueResources,
		Header: []string{"Resource ID", "Resource Type", "Resource ARN", "Last Backup", "Backup Vault"},
	}
	for _, r := range doc.UniqueResources {
		t.Rows = append(t.Rows, []Cell{r.ResourceID, r.ResourceType, r.ResourceArn, r.LastBackup, r.BackupVault})
	}
	return t
}

// plansTable flattens plans to one row per (plan, rule).
func plansTable(doc *report.ReportDocument) Table {
	t := Table{
		Name: SheetBackupPlans,
		Header: []string{
			"Plan Name", "Plan ID", "Creation Date", "Rule Name",
			"Schedule", "Vault", "Retention Days", "Resources Count",
		},
	}
	for _, plan := range doc.Plans {
		resourceCount := 0
		for _, sel := range plan.Selections {
			resourceCount += len(sel.Resources)
		}
		for _, rule := range plan.Rules {
			t.Rows = append(t.Rows, []Cell{
				plan.Name, plan.ID, plan.CreationDate, rule.Name,
				rule.ScheduleExpression, rule.TargetVault,
				retentionDays(rule), resourceCount,
			})
		}
	}
	return t
}

// retentionDays pulls the delete-after lifecycle setting out of the loosely
// typed lifecycle mapping.
func retentionDays(rule report.Rule) Cell {
	v, ok := rule.Lifecycle["DeleteAfterDays"]
	if !ok {
		return report.NotApplicable
	}
	switch days := v.(type) {
	case int64:
		return int(days)
	case int:
		return days
	case float64:
		return int(days)
	default:
		return report.NotApplicable
	}
}

func jobsTable(doc *report.ReportDocument) Table {
	t := Table{
		Name: SheetBackupJobs,
		Header: []string{
			"Backup Job ID", "Resource ID", "Resource Type", "Backup Size (GB)",
			"Creation Date", "Completion Date", "State", "Status Message",
			"Vault Name", "Recovery Point ARN",
		},
	}
	for _, j := range doc.Backups {
		t.Rows = append(t.Rows, []Cell{
			j.BackupJobID, j.ResourceID, j.ResourceType, j.BackupSizeGB,
			j.CreationDate, j.CompletionDate, j.State, j.StatusMessage,
			j.VaultName, j.RecoveryPointArn,
		})
	}
	return t
}

// resourceSummaryTable groups the job view by resource id.
func resourceSummaryTable(doc *report.ReportDocument) Table {
	type agg struct {
		count   int
		totalGB float64
	}
	byResource := make(map[string]*agg)
	var order []string
	for _, j := range doc.Backups {
		a, ok := byResource[j.ResourceID]
		if !ok {
			a = &agg{}
			byResource[j.ResourceID] = a
			order = append(order, j.ResourceID)
		}
		a.count++
		a.totalGB += j.BackupSizeGB
	}
	sort.Strings(order)

	t := Table{
		Name:   SheetResourceSummary,
		Header: []string{"Resource ID", "Total Backups", "Total Size (TB)", "Average Size (GB)"},
	}
	for _, id := range order {
		a := byResource[id]
		t.Rows = append(t.Rows, []Cell{
			id, a.count, round2(a.totalGB / 1024), round2(a.totalGB / float64(a.count)),
		})
	}
	return t
}

func volumesTable(doc *report.ReportDocument) Table {
	t := Table{
		Name: SheetVolumes,
		Header: []string{
			"Volume ID", "Name", "Size (GB)", "Type", "State", "Creation Date",
			"Encrypted", "Availability Zone", "Attached Instance", "Device",
		},
	}
	for _, v := range doc.Storage.Volumes {
		t.Rows = append(t.Rows, []Cell{
			v.VolumeID, v.Name, int(v.SizeGB), v.VolumeType, v.State, v.CreationDate,
			v.Encrypted, v.AvailabilityZone, v.AttachedInstance, v.Device,
		})
	}
	return t
}

func snapshotsTable(doc *report.ReportDocument) Table {
	t := Table{
		Name: SheetSnapshots,
		Header: []string{
			"Snapshot ID", "Name", "Volume ID", "Start Time", "Size (GB)",
			"State", "Progress", "Description", "Encrypted",
		},
	}
	for _, s := range doc.Storage.Snapshots {
		t.Rows = append(t.Rows, []Cell{
			s.SnapshotID, s.Name, s.VolumeID, s.StartTime, int(s.SizeGB),
			s.State, s.Progress, s.Description, s.Encrypted,
		})
	}
	return t
}
