// Package report turns raw collector output into the normalized backup
// report document.
package report

import "time"

// NotApplicable is the sentinel rendered for optional fields that were
// absent from the raw record.
const NotApplicable = "N/A"

// Timestamp layouts used throughout the report document.
const (
	TimeLayout      = "2006-01-02 15:04"
	GeneratedLayout = "2006-01-02 15:04:05"
)

// Status is a backup job status category. The canonical values are listed
// below; any other raw state reported by the provider passes through
// verbatim.
type Status string

const (
	StatusCompleted           Status = "COMPLETED"
	StatusCompletedWithIssues Status = "COMPLETED_WITH_ISSUES"
	StatusFailed              Status = "FAILED"
	StatusExpired             Status = "EXPIRED"
	StatusPartial             Status = "PARTIAL"
)

// StatusSummary counts jobs per status category. Open-ended: keys are not
// limited to the canonical constants.
type StatusSummary map[Status]int

// BackupJob is one backup job as fetched from the provider. Immutable once
// collected.
type BackupJob struct {
	ID               string
	ResourceArn      string
	ResourceType     string
	CreatedAt        time.Time
	CompletedAt      *time.Time
	SizeBytes        int64
	State            string
	StatusMessage    string
	VaultName        string
	RecoveryPointArn string
}

// Rule is one scheduling rule inside a backup plan.
type Rule struct {
	Name                    string         `json:"rule_name"`
	TargetVault             string         `json:"target_vault_name"`
	ScheduleExpression      string         `json:"schedule_expression"`
	StartWindowMinutes      int64          `json:"start_window_minutes"`
	CompletionWindowMinutes int64          `json:"completion_window_minutes"`
	Lifecycle               map[string]any `json:"lifecycle"`
	ContinuousBackup        bool           `json:"enable_continuous_backup"`
}

// Selection names the resources a backup plan applies to.
type Selection struct {
	Name       string         `json:"selection_name"`
	IamRoleArn string         `json:"iam_role_arn"`
	Resources  []string       `json:"resources"`
	Conditions map[string]any `json:"conditions"`
}

// BackupPlan is one backup plan with its rules and selections.
type BackupPlan struct {
	ID               string      `json:"plan_id"`
	Name             string      `json:"plan_name"`
	VersionID        string      `json:"version_id"`
	CreationDate     string      `json:"creation_date"`
	DeploymentStatus string      `json:"deployment_status"`
	Rules            []Rule      `json:"rules"`
	Selections       []Selection `json:"selections"`
}

// ResourceRecord is the deduplicated registry entry for one backed-up
// resource.
type ResourceRecord struct {
	ResourceID   string `json:"resource_id"`
	ResourceType string `json:"resource_type"`
	ResourceArn  string `json:"resource_arn"`
	LastBackup   string `json:"last_backup"`
	BackupVault  string `json:"backup_vault"`
}

// JobView is the per-job normalized view carried in the report document.
type JobView struct {
	BackupJobID      string  `json:"backup_job_id"`
	ResourceID       string  `json:"resource_id"`
	ResourceType     string  `json:"resource_type"`
	BackupSizeGB     float64 `json:"backup_size_gb"`
	CreationDate     string  `json:"creation_date"`
	CompletionDate   string  `json:"completion_date"`
	State            string  `json:"state"`
	StatusMessage    string  `json:"status_message"`
	VaultName        string  `json:"vault_name"`
	RecoveryPointArn string  `json:"recovery_point_arn"`
}

// VolumeInfo describes one EBS volume.
type VolumeInfo struct {
	VolumeID         string `json:"volume_id"`
	Name             string `json:"name"`
	SizeGB           int32  `json:"size_gb"`
	VolumeType       string `json:"volume_type"`
	State            string `json:"state"`
	CreationDate     string `json:"creation_date"`
	Encrypted        bool   `json:"encrypted"`
	AvailabilityZone string `json:"availability_zone"`
	AttachedInstance string `json:"attached_instance"`
	Device           string `json:"device"`
}

// SnapshotInfo describes one EBS snapshot owned by the account.
type SnapshotInfo struct {
	SnapshotID  string `json:"snapshot_id"`
	Name        string `json:"name"`
	VolumeID    string `json:"volume_id"`
	StartTime   string `json:"start_time"`
	SizeGB      int32  `json:"size_gb"`
	State       string `json:"state"`
	Progress    string `json:"progress"`
	Description string `json:"description"`
	Encrypted   bool   `json:"encrypted"`
}

// StorageInventory groups the raw storage listings.
type StorageInventory struct {
	Volumes   []VolumeInfo   `json:"volumes"`
	Snapshots []SnapshotInfo `json:"snapshots"`
}

// ReportDocument is the assembled report. Built once per run, immutable
// thereafter.
type ReportDocument struct {
	GeneratedAt     string           `json:"generated_at"`
	Region          string           `json:"region"`
	PeriodDays      int              `json:"period_days"`
	TotalBackups    int              `json:"total_backups"`
	StatusSummary   StatusSummary    `json:"status_summary"`
	Plans           []BackupPlan     `json:"plans"`
	UniqueResources []ResourceRecord `json:"unique_resources"`
	Backups         []JobView        `json:"backups"`
	Storage         StorageInventory `json:"storage"`
}
