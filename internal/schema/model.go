package schema

// Schema is one entry of the assessment tool's schema listing.
type Schema struct {
	Type string // SCHEMA, DATABASE, ...
	Name string
}

// Scan statuses
const (
	StatusOK      = "OK"
	StatusFailed  = "FAILED"
	StatusSkipped = "SKIPPED"
	StatusPlanned = "PLANNED" // dry-run
)

// ScanResult is the report row of one processed schema (or skipped record).
type ScanResult struct {
	Line       int
	Engine     string
	Schema     string
	ReportFile string
	Status     string
	ErrorMsg   string
}

// Failed reports whether the scan did not complete.
func (r ScanResult) Failed() bool {
	return r.Status == StatusFailed
}
