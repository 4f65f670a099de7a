package engine

import (
	"fmt"
	"io"

	"db-scan/internal/schema"

	"github.com/fatih/color"
	"github.com/samber/lo"
)

// PrintReport writes the per-schema summary of a run.
func PrintReport(w io.Writer, results []schema.ScanResult) {
	fmt.Fprintln(w, "\n📊 Scan Report (List Order):")
	for i, r := range results {
		icon := "✓"
		status := r.Status
		switch r.Status {
		case schema.StatusFailed:
			icon = "!"
			status = color.RedString(r.Status)
		case schema.StatusSkipped:
			icon = "-"
			status = color.YellowString(r.Status)
		}
		name := r.Schema
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(w, "[%s] [%02d/%02d] line %-4d %-6s %-20s : %s", icon, i+1, len(results), r.Line, r.Engine, name, status)
		if r.ReportFile != "" {
			fmt.Fprintf(w, " -> %s", r.ReportFile)
		}
		fmt.Fprintln(w)
		if r.ErrorMsg != "" {
			fmt.Fprintf(w, "    └ Error: %s\n", r.ErrorMsg)
		}
	}
	fmt.Fprintln(w, "--------------------------------------------------")

	failed := lo.CountBy(results, func(r schema.ScanResult) bool { return r.Failed() })
	skipped := lo.CountBy(results, func(r schema.ScanResult) bool { return r.Status == schema.StatusSkipped })
	fmt.Fprintf(w, "Schemas: %d, failed: %d, skipped records: %d\n", len(results)-skipped, failed, skipped)
}
