package report

import "strings"

// Classify buckets a job into its status category. A COMPLETED job whose
// status message mentions "issue" (case-insensitive) is downgraded to
// COMPLETED_WITH_ISSUES; everything else keeps its raw state verbatim,
// including states the provider may add later.
func Classify(job BackupJob) Status {
	if job.State == string(StatusCompleted) &&
		strings.Contains(strings.ToLower(job.StatusMessage), "issue") {
		return StatusCompletedWithIssues
	}
	return Status(job.State)
}

// SummarizeStatus counts jobs per status category. The counts always sum to
// len(jobs).
func SummarizeStatus(jobs []BackupJob) StatusSummary {
	summary := make(StatusSummary)
	for _, job := range jobs {
		summary[Classify(job)]++
	}
	return summary
}
