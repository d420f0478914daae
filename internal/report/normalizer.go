package report

import "strings"

// ResourceID derives the stable resource identity from a resource ARN: the
// segment after the last '/'. ARNs without a path separator degrade to the
// whole string. Every place that keys on resource identity (registry, job
// view, pivot) must use this function.
func ResourceID(resourceArn string) string {
	idx := strings.LastIndexByte(resourceArn, '/')
	if idx < 0 {
		return resourceArn
	}
	return resourceArn[idx+1:]
}

// BuildResourceIndex scans jobs in fetched order and returns one
// ResourceRecord per distinct resource id, in first-seen order.
//
// First occurrence wins: a resource already present is never overwritten,
// so the registry attributes come from the earliest job in fetch order, not
// the most recent backup by timestamp.
func BuildResourceIndex(jobs []BackupJob) []ResourceRecord {
	seen := make(map[string]struct{}, len(jobs))
	records := []ResourceRecord{}

	for _, job := range jobs {
		id := ResourceID(job.ResourceArn)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		records = append(records, ResourceRecord{
			ResourceID:   id,
			ResourceType: orNA(job.ResourceType),
			ResourceArn:  job.ResourceArn,
			LastBackup:   job.CreatedAt.Format(TimeLayout),
			BackupVault:  orNA(job.VaultName),
		})
	}

	return records
}

func orNA(s string) string {
	if s == "" {
		return NotApplicable
	}
	return s
}
