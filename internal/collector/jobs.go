package collector

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	backuptypes "github.com/aws/aws-sdk-go-v2/service/backup/types"
	"github.com/rs/zerolog/log"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

// jobStates are the job states queried, in fetch order. The fetch order
// matters downstream: the resource registry keeps the first occurrence of
// each resource id.
var jobStates = []backuptypes.BackupJobState{
	backuptypes.BackupJobStateCompleted,
	backuptypes.BackupJobStateFailed,
	backuptypes.BackupJobStateExpired,
	backuptypes.BackupJobStatePartial,
}

// ListBackupJobs fetches all backup jobs created in the last days, one
// state filter at a time. A failing state sub-fetch logs a warning and
// degrades to the jobs gathered so far; the remaining states are still
// collected.
func (c *Collector) ListBackupJobs(ctx context.Context, days int) ([]report.BackupJob, error) {
	createdAfter := time.Now().AddDate(0, 0, -days)

	var jobs []report.BackupJob
	for _, state := range jobStates {
		stateJobs, err := c.listJobsByState(ctx, createdAfter, state)
		if err != nil {
			log.Warn().Err(err).Str("state", string(state)).Msg("backup job listing failed, continuing with partial data")
			continue
		}
		jobs = append(jobs, stateJobs...)
	}

	return jobs, nil
}

func (c *Collector) listJobsByState(ctx context.Context, createdAfter time.Time, state backuptypes.BackupJobState) ([]report.BackupJob, error) {
	var jobs []report.BackupJob
	var nextToken *string

	for {
		output, err := c.backupClient.ListBackupJobs(ctx, &backup.ListBackupJobsInput{
			ByCreatedAfter: aws.Time(createdAfter),
			ByState:        state,
			NextToken:      nextToken,
		})
		if err != nil {
			return jobs, err
		}

		for _, job := range output.BackupJobs {
			jobs = append(jobs, convertBackupJob(job))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return jobs, nil
}

func convertBackupJob(job backuptypes.BackupJob) report.BackupJob {
	return report.BackupJob{
		ID:               aws.ToString(job.BackupJobId),
		ResourceArn:      aws.ToString(job.ResourceArn),
		ResourceType:     aws.ToString(job.ResourceType),
		CreatedAt:        aws.ToTime(job.CreationDate),
		CompletedAt:      job.CompletionDate,
		SizeBytes:        aws.ToInt64(job.BackupSizeInBytes),
		State:            string(job.State),
		StatusMessage:    aws.ToString(job.StatusMessage),
		VaultName:        aws.ToString(job.BackupVaultName),
		RecoveryPointArn: aws.ToString(job.RecoveryPointArn),
	}
}
