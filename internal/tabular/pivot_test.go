package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

func pivotDoc(jobs ...report.JobView) *report.ReportDocument {
	return &report.ReportDocument{Backups: jobs}
}

func TestMonthlyPivotAggregates(t *testing.T) {
	table := monthlyPivotTable(pivotDoc(
		report.JobView{ResourceID: "vol-1", CreationDate: "2024-05-01 01:00", BackupSizeGB: 10},
		report.JobView{ResourceID: "vol-1", CreationDate: "2024-05-10 01:00", BackupSizeGB: 20},
		report.JobView{ResourceID: "vol-1", CreationDate: "2024-05-20 01:00", BackupSizeGB: 30},
	))

	assert.Equal(t, []string{"Resource ID", "2024-05 (Count)", "2024-05 (GB Avg)", "2024-05 (GB Total)"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []Cell{"vol-1", 3, 20.0, 60.0}, table.Rows[0])
}

func TestMonthlyPivotScenarioSameVolume(t *testing.T) {
	table := monthlyPivotTable(pivotDoc(
		report.JobView{ResourceID: "vol-1", CreationDate: "2024-05-03 01:00", BackupSizeGB: 5},
		report.JobView{ResourceID: "vol-1", CreationDate: "2024-05-04 01:00", BackupSizeGB: 3},
	))

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []Cell{"vol-1", 2, 4.0, 8.0}, table.Rows[0])
}

// Every (resource, month) pair in the observed range gets a cell; months
// without jobs are zero, never absent.
func TestMonthlyPivotZeroFill(t *testing.T) {
	table := monthlyPivotTable(pivotDoc(
		report.JobView{ResourceID: "vol-1", CreationDate: "2024-01-15 01:00", BackupSizeGB: 4},
		report.JobView{ResourceID: "vol-2", CreationDate: "2024-03-15 01:00", BackupSizeGB: 6},
	))

	// Full range January through March, three columns per month.
	assert.Equal(t, []string{
		"Resource ID",
		"2024-01 (Count)", "2024-01 (GB Avg)", "2024-01 (GB Total)",
		"2024-02 (Count)", "2024-02 (GB Avg)", "2024-02 (GB Total)",
		"2024-03 (Count)", "2024-03 (GB Avg)", "2024-03 (GB Total)",
	}, table.Header)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []Cell{"vol-1", 1, 4.0, 4.0, 0, 0.0, 0.0, 0, 0.0, 0.0}, table.Rows[0])
	assert.Equal(t, []Cell{"vol-2", 0, 0.0, 0.0, 0, 0.0, 0.0, 1, 6.0, 6.0}, table.Rows[1])
}

func TestMonthlyPivotCrossesYearBoundary(t *testing.T) {
	table := monthlyPivotTable(pivotDoc(
		report.JobView{ResourceID: "vol-1", CreationDate: "2023-11-15 01:00", BackupSizeGB: 1},
		report.JobView{ResourceID: "vol-1", CreationDate: "2024-02-15 01:00", BackupSizeGB: 1},
	))

	// 2023-11 .. 2024-02 inclusive: 4 months, 12 metric columns.
	require.Len(t, table.Header, 1+4*3)
	assert.Equal(t, "2023-11 (Count)", table.Header[1])
	assert.Equal(t, "2024-02 (GB Total)", table.Header[12])
}

func TestMonthlyPivotRowsSortedByResource(t *testing.T) {
	table := monthlyPivotTable(pivotDoc(
		report.JobView{ResourceID: "vol-9", CreationDate: "2024-05-01 01:00", BackupSizeGB: 1},
		report.JobView{ResourceID: "vol-1", CreationDate: "2024-05-02 01:00", BackupSizeGB: 1},
		report.JobView{ResourceID: "db-1", CreationDate: "2024-05-03 01:00", BackupSizeGB: 1},
	))

	require.Len(t, table.Rows, 3)
	assert.Equal(t, "db-1", table.Rows[0][0])
	assert.Equal(t, "vol-1", table.Rows[1][0])
	assert.Equal(t, "vol-9", table.Rows[2][0])
}

func TestMonthlyPivotEmpty(t *testing.T) {
	table := monthlyPivotTable(pivotDoc())

	assert.Equal(t, []string{"Resource ID"}, table.Header)
	assert.Empty(t, table.Rows)
}

func TestMonthRange(t *testing.T) {
	assert.Equal(t, []string{"2024-05"}, monthRange("2024-05", "2024-05"))
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01"}, monthRange("2024-11", "2025-01"))
	assert.Nil(t, monthRange("", ""))
}
