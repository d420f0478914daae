// Package tabular projects a report document into flat tables for the
// analysis workbook.
package tabular

import "math"

// Cell is a single table value: string, int, float64, or bool. Float cells
// get the two-decimal number format in the workbook.
type Cell any

// Table is one flat sheet: a name, a header row, and data rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]Cell
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
