package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceID(t *testing.T) {
	tests := []struct {
		name    string
		locator string
		want    string
	}{
		{"volume arn", "arn:aws:ec2:us-east-1:123456789012:volume/vol-0abc", "vol-0abc"},
		{"nested path", "arn:aws:rds:us-east-1:123456789012:db/prod/replica-1", "replica-1"},
		{"no separator", "arn:aws:dynamodb:us-east-1:123456789012:table", "arn:aws:dynamodb:us-east-1:123456789012:table"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResourceID(tt.locator))
		})
	}
}

func TestBuildResourceIndexFirstOccurrenceWins(t *testing.T) {
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	jobs := []BackupJob{
		{ResourceArn: "arn:aws:ec2:us-east-1:1:volume/vol-1", ResourceType: "EBS", CreatedAt: first, VaultName: "vault-a"},
		{ResourceArn: "arn:aws:ec2:us-east-1:1:volume/vol-1", ResourceType: "EBS", CreatedAt: second, VaultName: "vault-b"},
		{ResourceArn: "arn:aws:ec2:us-east-1:1:volume/vol-2", ResourceType: "EBS", CreatedAt: second, VaultName: "vault-a"},
	}

	records := BuildResourceIndex(jobs)
	require.Len(t, records, 2)

	assert.Equal(t, "vol-1", records[0].ResourceID)
	assert.Equal(t, first.Format(TimeLayout), records[0].LastBackup)
	assert.Equal(t, "vault-a", records[0].BackupVault)
	assert.Equal(t, "vol-2", records[1].ResourceID)
}

func TestBuildResourceIndexSentinels(t *testing.T) {
	jobs := []BackupJob{
		{ResourceArn: "arn:aws:ec2:us-east-1:1:volume/vol-1", CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	records := BuildResourceIndex(jobs)
	require.Len(t, records, 1)
	assert.Equal(t, NotApplicable, records[0].ResourceType)
	assert.Equal(t, NotApplicable, records[0].BackupVault)
}

func TestBuildResourceIndexEmpty(t *testing.T) {
	assert.Empty(t, BuildResourceIndex(nil))
}

// The same derivation rule must apply wherever a resource identity is
// computed, or cross-references between registry, job view, and pivot
// break.
func TestResourceIDConsistentAcrossViews(t *testing.T) {
	job := BackupJob{
		ResourceArn: "arn:aws:ec2:us-east-1:1:volume/vol-7",
		CreatedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	records := BuildResourceIndex([]BackupJob{job})
	view := buildJobView(job)

	require.Len(t, records, 1)
	assert.Equal(t, records[0].ResourceID, view.ResourceID)
	assert.Equal(t, ResourceID(job.ResourceArn), view.ResourceID)
}
