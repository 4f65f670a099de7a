package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"db-scan/internal/command"
	"db-scan/internal/dsnlist"
	"db-scan/internal/identifier"
	"db-scan/internal/schema"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// Scanner drives the assessment tool over connection records, strictly in order.
type Scanner struct {
	cfg       command.RunConfig
	runner    Runner
	extractor *identifier.Extractor
	synth     *command.Synthesizer
	out       io.Writer
}

// NewScanner returns a Scanner printing dry-run plans and warnings to out.
func NewScanner(cfg command.RunConfig, runner Runner, out io.Writer) *Scanner {
	return &Scanner{
		cfg:       cfg,
		runner:    runner,
		extractor: identifier.NewExtractor(),
		synth:     command.NewSynthesizer(cfg),
		out:       out,
	}
}

// Scan processes every record and returns one result per schema handled (or
// per skipped record). onProgress is called after each record.
// Failed tool invocations do not stop the batch; only ctx cancellation does.
func (s *Scanner) Scan(ctx context.Context, records []*dsnlist.ConnectionRecord, onProgress func()) ([]schema.ScanResult, error) {
	var results []schema.ScanResult

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		results = append(results, s.scanRecord(ctx, rec)...)

		if onProgress != nil {
			onProgress()
		}
	}
	return results, nil
}

func (s *Scanner) scanRecord(ctx context.Context, rec *dsnlist.ConnectionRecord) []schema.ScanResult {
	if err := s.extractor.Resolve(rec); err != nil {
		s.warnf("skipping %s record: %v", rec.Engine, err)
		return []schema.ScanResult{s.result(rec, "", "", schema.StatusSkipped, err)}
	}

	if rec.HasSchema() {
		return []schema.ScanResult{s.emit(ctx, rec, rec.Schema)}
	}

	names, err := s.discover(ctx, rec)
	if err != nil {
		s.warnf("schema discovery failed for line %d: %v", rec.Line, err)
		if !s.cfg.DryRun {
			return []schema.ScanResult{s.result(rec, "", "", schema.StatusFailed, err)}
		}
	}

	// The plan of a dry run does not depend on the listing.
	if s.cfg.DryRun {
		return []schema.ScanResult{s.emit(ctx, rec, command.SchemaPlaceholder)}
	}

	if len(names) == 0 {
		s.warnf("no schema found for line %d (%s)", rec.Line, rec.DSN)
	}
	var results []schema.ScanResult
	for _, name := range names {
		results = append(results, s.emit(ctx, rec, name))
	}
	return results
}

// discover runs the schema listing. It runs in dry-run mode too: the listing
// needs a real connection and does not write anything.
func (s *Scanner) discover(ctx context.Context, rec *dsnlist.ConnectionRecord) ([]string, error) {
	cmd := s.synth.Discovery(rec)
	if s.cfg.DryRun {
		fmt.Fprintf(s.out, "[DRY-RUN] %s\n", cmd)
	}
	log.Infof("listing schemas of line %d (%s)", rec.Line, rec.Engine)

	out, err := s.runner.Output(ctx, cmd)
	if s.cfg.DryRun && len(out) > 0 {
		fmt.Fprintf(s.out, "%s", out)
	}
	if err != nil {
		return nil, err
	}

	names := schema.Names(schema.ParseListing(out))
	log.Infof("found %d schema(s) for line %d: %v", len(names), rec.Line, names)
	return names, nil
}

func (s *Scanner) emit(ctx context.Context, rec *dsnlist.ConnectionRecord, name string) schema.ScanResult {
	summary, detail := s.synth.Reports(rec, name)

	if s.cfg.DryRun {
		fmt.Fprintf(s.out, "[DRY-RUN] %s\n", summary)
		fmt.Fprintf(s.out, "[DRY-RUN] %s\n", detail)
		return s.result(rec, name, detail.Output, schema.StatusPlanned, nil)
	}

	log.Infof("assessing schema %q of line %d", name, rec.Line)
	err := errors.Join(s.runTo(ctx, summary), s.runTo(ctx, detail))
	if err != nil {
		s.warnf("assessment of schema %q failed: %v", name, err)
		return s.result(rec, name, detail.Output, schema.StatusFailed, err)
	}
	return s.result(rec, name, detail.Output, schema.StatusOK, nil)
}

func (s *Scanner) runTo(ctx context.Context, cmd command.Command) error {
	f, err := openOutput(cmd)
	if err != nil {
		return err
	}
	runErr := s.runner.Run(ctx, cmd, f)
	if err := f.Close(); err != nil && runErr == nil {
		return fmt.Errorf("failed to close %s: %w", cmd.Output, err)
	}
	return runErr
}

func (s *Scanner) result(rec *dsnlist.ConnectionRecord, name, file, status string, err error) schema.ScanResult {
	r := schema.ScanResult{
		Line:       rec.Line,
		Engine:     string(rec.Engine),
		Schema:     name,
		ReportFile: file,
		Status:     status,
	}
	if err != nil {
		r.ErrorMsg = err.Error()
	}
	return r
}

func (s *Scanner) warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
	fmt.Fprintln(s.out, color.YellowString("WARNING: "+format, args...))
}
