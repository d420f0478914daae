package report

import "time"

const bytesPerGB = 1 << 30

// AssembleInput carries the collector outputs into the assembler. Partial
// data is accepted as-is: a collector that failed hands over an empty (or
// partially filled) slice.
type AssembleInput struct {
	Region     string
	PeriodDays int
	Jobs       []BackupJob
	Plans      []BackupPlan
	Volumes    []VolumeInfo
	Snapshots  []SnapshotInfo
}

// Assemble joins collector output and the derived registries into one
// report document. Deterministic for fixed input except for GeneratedAt.
func Assemble(in AssembleInput) *ReportDocument {
	return assembleAt(in, time.Now())
}

func assembleAt(in AssembleInput, now time.Time) *ReportDocument {
	// Degraded collectors hand back nil slices; the document always carries
	// empty lists so absence is visible but well-formed in the JSON output.
	if in.Plans == nil {
		in.Plans = []BackupPlan{}
	}
	if in.Volumes == nil {
		in.Volumes = []VolumeInfo{}
	}
	if in.Snapshots == nil {
		in.Snapshots = []SnapshotInfo{}
	}

	return &ReportDocument{
		GeneratedAt:     now.Format(GeneratedLayout),
		Region:          in.Region,
		PeriodDays:      in.PeriodDays,
		TotalBackups:    len(in.Jobs),
		StatusSummary:   SummarizeStatus(in.Jobs),
		Plans:           in.Plans,
		UniqueResources: BuildResourceIndex(in.Jobs),
		Backups:         buildJobViews(in.Jobs),
		Storage: StorageInventory{
			Volumes:   in.Volumes,
			Snapshots: in.Snapshots,
		},
	}
}

func buildJobViews(jobs []BackupJob) []JobView {
	views := make([]JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, buildJobView(job))
	}
	return views
}

func buildJobView(job BackupJob) JobView {
	completion := NotApplicable
	if job.CompletedAt != nil {
		completion = job.CompletedAt.Format(TimeLayout)
	}
	return JobView{
		BackupJobID:      orNA(job.ID),
		ResourceID:       ResourceID(job.ResourceArn),
		ResourceType:     orNA(job.ResourceType),
		BackupSizeGB:     float64(job.SizeBytes) / bytesPerGB,
		CreationDate:     job.CreatedAt.Format(TimeLayout),
		CompletionDate:   completion,
		State:            orNA(job.State),
		StatusMessage:    orNA(job.StatusMessage),
		VaultName:        orNA(job.VaultName),
		RecoveryPointArn: orNA(job.RecoveryPointArn),
	}
}
