package collector

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

// ListVolumes fetches all EBS volumes in the region.
func (c *Collector) ListVolumes(ctx context.Context) ([]report.VolumeInfo, error) {
	var volumes []report.VolumeInfo
	var nextToken *string

	for {
		output, err := c.ec2Client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{NextToken: nextToken})
		if err != nil {
			return volumes, fmt.Errorf("describe volumes: %w", err)
		}

		for _, vol := range output.Volumes {
			volumes = append(volumes, convertVolume(vol))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return volumes, nil
}

func convertVolume(vol ec2types.Volume) report.VolumeInfo {
	info := report.VolumeInfo{
		VolumeID:         aws.ToString(vol.VolumeId),
		Name:             nameTag(vol.Tags),
		SizeGB:           aws.ToInt32(vol.Size),
		VolumeType:       string(vol.VolumeType),
		State:            string(vol.State),
		CreationDate:     aws.ToTime(vol.CreateTime).Format(report.TimeLayout),
		Encrypted:        aws.ToBool(vol.Encrypted),
		AvailabilityZone: aws.ToString(vol.AvailabilityZone),
		AttachedInstance: "Not Attached",
		Device:           report.NotApplicable,
	}
	if len(vol.Attachments) > 0 {
		info.AttachedInstance = aws.ToString(vol.Attachments[0].InstanceId)
		info.Device = aws.ToString(vol.Attachments[0].Device)
	}
	return info
}

// ListSnapshots fetches all EBS snapshots owned by the account.
func (c *Collector) ListSnapshots(ctx context.Context) ([]report.SnapshotInfo, error) {
	var snapshots []report.SnapshotInfo
	var nextToken *string

	for {
		output, err := c.ec2Client.DescribeSnapshots(ctx, &ec2.DescribeSnapshotsInput{
			OwnerIds:  []string{"self"},
			NextToken: nextToken,
		})
		if err != nil {
			return snapshots, fmt.Errorf("describe snapshots: %w", err)
		}

		for _, snap := range output.Snapshots {
			snapshots = append(snapshots, convertSnapshot(snap))
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return snapshots, nil
}

func convertSnapshot(snap ec2types.Snapshot) report.SnapshotInfo {
	volumeID := aws.ToString(snap.VolumeId)
	if volumeID == "" {
		volumeID = report.NotApplicable
	}
	description := aws.ToString(snap.Description)
	if description == "" {
		description = report.NotApplicable
	}
	return report.SnapshotInfo{
		SnapshotID:  aws.ToString(snap.SnapshotId),
		Name:        nameTag(snap.Tags),
		VolumeID:    volumeID,
		StartTime:   aws.ToTime(snap.StartTime).Format(report.TimeLayout),
		SizeGB:      aws.ToInt32(snap.VolumeSize),
		State:       string(snap.State),
		Progress:    aws.ToString(snap.Progress),
		Description: description,
		Encrypted:   aws.ToBool(snap.Encrypted),
	}
}

// nameTag extracts the Name tag, or the N/A sentinel when untagged.
func nameTag(tags []ec2types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return report.NotApplicable
}
