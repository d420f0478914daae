package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/tabular"
)

// numFmt 4 is the built-in "#,##0.00" two-decimal grouping format.
const twoDecimalFmt = 4

// WriteWorkbook renders the projected tables into an xlsx workbook, one
// sheet per table in the given order.
func WriteWorkbook(tables []tabular.Table, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	numStyle, err := f.NewStyle(&excelize.Style{NumFmt: twoDecimalFmt})
	if err != nil {
		return fmt.Errorf("create number style: %w", err)
	}

	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", table.Name, err)
		}
		if err := writeTable(f, table, numStyle); err != nil {
			return fmt.Errorf("write sheet %q: %w", table.Name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, table tabular.Table, numStyle int) error {
	for col, label := range table.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(table.Name, cell, label); err != nil {
			return err
		}
	}

	for rowIdx, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(table.Name, cell, value); err != nil {
				return err
			}
			if _, ok := value.(float64); ok {
				if err := f.SetCellStyle(table.Name, cell, cell, numStyle); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
