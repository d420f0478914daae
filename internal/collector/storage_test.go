package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

type mockEC2Client struct {
	DescribeVolumesFunc   func(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeSnapshotsFunc func(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	DescribeRegionsFunc   func(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

func (m *mockEC2Client) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	return m.DescribeVolumesFunc(ctx, params, optFns...)
}

func (m *mockEC2Client) DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	return m.DescribeSnapshotsFunc(ctx, params, optFns...)
}

func (m *mockEC2Client) DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	return m.DescribeRegionsFunc(ctx, params, optFns...)
}

func TestListVolumes(t *testing.T) {
	mock := &mockEC2Client{
		DescribeVolumesFunc: func(_ context.Context, _ *ec2.DescribeVolumesInput, _ ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
			return &ec2.DescribeVolumesOutput{
				Volumes: []ec2types.Volume{
					{
						VolumeId:         aws.String("vol-1"),
						Size:             aws.Int32(100),
						VolumeType:       ec2types.VolumeTypeGp3,
						State:            ec2types.VolumeStateInUse,
						CreateTime:       aws.Time(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)),
						Encrypted:        aws.Bool(true),
						AvailabilityZone: aws.String("us-east-1a"),
						Attachments: []ec2types.VolumeAttachment{
							{InstanceId: aws.String("i-1"), Device: aws.String("/dev/xvdf")},
						},
						Tags: []ec2types.Tag{{Key: aws.String("Name"), Value: aws.String("data")}},
					},
					{
						VolumeId:   aws.String("vol-2"),
						Size:       aws.Int32(8),
						VolumeType: ec2types.VolumeTypeGp2,
						State:      ec2types.VolumeStateAvailable,
						CreateTime: aws.Time(time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)),
					},
				},
			}, nil
		},
	}

	c := &Collector{region: "us-east-1", ec2Client: mock}
	volumes, err := c.ListVolumes(context.Background())

	require.NoError(t, err)
	require.Len(t, volumes, 2)

	attached := volumes[0]
	assert.Equal(t, "vol-1", attached.VolumeID)
	assert.Equal(t, "data", attached.Name)
	assert.Equal(t, int32(100), attached.SizeGB)
	assert.Equal(t, "i-1", attached.AttachedInstance)
	assert.Equal(t, "/dev/xvdf", attached.Device)
	assert.True(t, attached.Encrypted)

	detached := volumes[1]
	assert.Equal(t, "Not Attached", detached.AttachedInstance)
	assert.Equal(t, report.NotApplicable, detached.Device)
	assert.Equal(t, report.NotApplicable, detached.Name)
}

func TestListSnapshotsOwnerScoped(t *testing.T) {
	var gotOwners []string
	mock := &mockEC2Client{
		DescribeSnapshotsFunc: func(_ context.Context, params *ec2.DescribeSnapshotsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
			gotOwners = params.OwnerIds
			return &ec2.DescribeSnapshotsOutput{
				Snapshots: []ec2types.Snapshot{
					{
						SnapshotId: aws.String("snap-1"),
						VolumeId:   aws.String("vol-1"),
						StartTime:  aws.Time(time.Date(2024, 3, 1, 4, 0, 0, 0, time.UTC)),
						VolumeSize: aws.Int32(100),
						State:      ec2types.SnapshotStateCompleted,
						Progress:   aws.String("100%"),
						Encrypted:  aws.Bool(false),
					},
				},
			}, nil
		},
	}

	c := &Collector{region: "us-east-1", ec2Client: mock}
	snapshots, err := c.ListSnapshots(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"self"}, gotOwners)
	require.Len(t, snapshots, 1)

	snap := snapshots[0]
	assert.Equal(t, "snap-1", snap.SnapshotID)
	assert.Equal(t, "2024-03-01 04:00", snap.StartTime)
	assert.Equal(t, report.NotApplicable, snap.Description)
	assert.Equal(t, report.NotApplicable, snap.Name)
}

func TestListVolumesError(t *testing.T) {
	mock := &mockEC2Client{
		DescribeVolumesFunc: func(_ context.Context, _ *ec2.DescribeVolumesInput, _ ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
			return nil, errors.New("unauthorized")
		},
	}

	c := &Collector{region: "us-east-1", ec2Client: mock}
	_, err := c.ListVolumes(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestAvailableRegions(t *testing.T) {
	mock := &mockEC2Client{
		DescribeRegionsFunc: func(_ context.Context, _ *ec2.DescribeRegionsInput, _ ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
			return &ec2.DescribeRegionsOutput{
				Regions: []ec2types.Region{
					{RegionName: aws.String("us-east-1")},
					{RegionName: aws.String("sa-east-1")},
				},
			}, nil
		},
	}

	c := &Collector{region: "us-east-1", ec2Client: mock}
	regions, err := c.AvailableRegions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"us-east-1", "sa-east-1"}, regions)
}
