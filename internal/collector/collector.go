// Package collector fetches backup jobs, plans, volumes, and snapshots
// from AWS, page by page.
package collector

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/backup"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// Collector lists backup activity in one region.
type Collector struct {
	region       string
	backupClient BackupAPI
	ec2Client    EC2API
}

// Config holds collector configuration.
type Config struct {
	Region string
}

// New creates a collector with real AWS clients for the configured region.
func New(ctx context.Context, cfg Config) (*Collector, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Collector{
		region:       cfg.Region,
		backupClient: backup.NewFromConfig(awsCfg),
		ec2Client:    ec2.NewFromConfig(awsCfg),
	}, nil
}

// Region returns the region this collector scans.
func (c *Collector) Region() string {
	return c.region
}

// AvailableRegions lists the regions enabled for the account.
func (c *Collector) AvailableRegions(ctx context.Context) ([]string, error) {
	output, err := c.ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("describe regions: %w", err)
	}

	regions := make([]string, 0, len(output.Regions))
	for _, r := range output.Regions {
		regions = append(regions, aws.ToString(r.RegionName))
	}
	return regions, nil
}
