package tabular

import (
	"fmt"
	"sort"
	"time"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

const monthLayout = "2006-01"

// pivotCell aggregates the jobs of one resource in one calendar month.
type pivotCell struct {
	count   int
	totalGB float64
}

func (c pivotCell) avgGB() float64 {
	if c.count == 0 {
		return 0
	}
	return c.totalGB / float64(c.count)
}

// monthlyPivotTable builds the month-by-resource pivot in a single
// structured pass over the job view: (resource id, month) -> aggregates,
// rendered as one {Count, GB Avg, GB Total} column triplet per month.
//
// Columns span every month from the earliest to the latest observed one,
// zero-filled where a resource had no jobs. Rows are sorted by resource id.
func monthlyPivotTable(doc *report.ReportDocument) Table {
	cells := make(map[string]map[string]pivotCell)
	minMonth, maxMonth := "", ""

	for _, j := range doc.Backups {
		month := monthOf(j.CreationDate)
		if minMonth == "" || month < minMonth {
			minMonth = month
		}
		if month > maxMonth {
			maxMonth = month
		}
		byMonth, ok := cells[j.ResourceID]
		if !ok {
			byMonth = make(map[string]pivotCell)
			cells[j.ResourceID] = byMonth
		}
		cell := byMonth[month]
		cell.count++
		cell.totalGB += j.BackupSizeGB
		byMonth[month] = cell
	}

	months := monthRange(minMonth, maxMonth)

	resourceIDs := make([]string, 0, len(cells))
	for id := range cells {
		resourceIDs = append(resourceIDs, id)
	}
	sort.Strings(resourceIDs)

	header := []string{"Resource ID"}
	for _, month := range months {
		header = append(header,
			fmt.Sprintf("%s (Count)", month),
			fmt.Sprintf("%s (GB Avg)", month),
			fmt.Sprintf("%s (GB Total)", month),
		)
	}

	t := Table{Name: SheetMonthlySummary, Header: header}
	for _, id := range resourceIDs {
		row := make([]Cell, 0, len(header))
		row = append(row, id)
		for _, month := range months {
			cell := cells[id][month]
			row = append(row, cell.count, cell.avgGB(), cell.totalGB)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// monthOf truncates a "2006-01-02 15:04" date to its "2006-01" month.
func monthOf(creationDate string) string {
	if len(creationDate) < len(monthLayout) {
		return creationDate
	}
	return creationDate[:len(monthLayout)]
}

// monthRange lists every month from first to last inclusive, in ascending
// order. Months that fail to parse fall back to the observed endpoints
// only.
func monthRange(first, last string) []string {
	if first == "" {
		return nil
	}
	start, err := time.Parse(monthLayout, first)
	if err != nil {
		return []string{first}
	}
	end, err := time.Parse(monthLayout, last)
	if err != nil {
		return []string{first, last}
	}

	var months []string
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		months = append(months, m.Format(monthLayout))
	}
	return months
}
