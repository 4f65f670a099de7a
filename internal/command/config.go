package command

import (
	"path/filepath"
	"time"
)

// Report formats accepted for the detail report.
var Formats = []string{"html", "json"}

// SummaryFileName is the per-run file collecting one sheet row per schema.
const SummaryFileName = "dbs_scan.csv"

// RunConfig is set once from the command line and never modified afterwards.
type RunConfig struct {
	OutDir     string
	Format     string
	DryRun     bool
	CostUnit   int
	Binary     string
	ConfigFile string // assessment tool configuration, passed with -c
	Timeout    time.Duration
}

// SummaryPath is the shared summary file of the run.
func (c RunConfig) SummaryPath() string {
	return filepath.Join(c.OutDir, SummaryFileName)
}
