package persist

import (
	"fmt"
	"os"
	"path/filepath"
)

// AuditStatus compares what the portal publishes with what is on disk.
type AuditStatus string

// Audit statuses.
const (
	AuditOK         AuditStatus = "ok"
	AuditIncomplete AuditStatus = "incomplete"
	AuditMissing    AuditStatus = "missing"
	AuditNoSource   AuditStatus = "no-source"
)

// AuditReport is the result of one directory audit.
type AuditReport struct {
	Dir      string
	Expected int
	Found    int
	Status   AuditStatus
}

// Completeness returns found/expected as a percentage, 0 when nothing is expected.
func (r AuditReport) Completeness() float64 {
	if r.Expected == 0 {
		return 0
	}

	return float64(r.Found) / float64(r.Expected) * 100
}

func (r AuditReport) String() string {
	return fmt.Sprintf("%s | expected: %d | found: %d | %s (%.1f%%)", r.Dir, r.Expected, r.Found, r.Status, r.Completeness())
}

// Audit counts the .csv files in dir against the number of published
// resources. A missing directory counts as zero files.
func Audit(expected int, dir string) (AuditReport, error) {
	report := AuditReport{Dir: dir, Expected: expected}

	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return report, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			report.Found++
		}
	}

	switch {
	case expected == 0:
		report.Status = AuditNoSource
	case report.Found >= expected:
		report.Status = AuditOK
	case report.Found == 0:
		report.Status = AuditMissing
	default:
		report.Status = AuditIncomplete
	}

	return report, nil
}
