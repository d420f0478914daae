// Package export renders the assembled report to local files.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pcfeduardo/aws-backup-analyzer/internal/report"
)

// WriteJSON serializes the report document to path with two-space
// indentation.
func WriteJSON(doc *report.ReportDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
