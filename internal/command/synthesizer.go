package command

import (
	"path/filepath"
	"strconv"
	"strings"

	"db-scan/internal/dialect"
	"db-scan/internal/dsnlist"
	"db-scan/internal/identifier"
)

// SchemaPlaceholder stands for a schema name that is only known after discovery.
const SchemaPlaceholder = "<SCHEMA>"

// Synthesizer builds the assessment tool invocations of a run.
// The header flag is carried by the first summary command it ever builds.
type Synthesizer struct {
	cfg        RunConfig
	headerDone bool
}

func NewSynthesizer(cfg RunConfig) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// Discovery lists the schemas reachable through the record's DSN.
func (s *Synthesizer) Discovery(rec *dsnlist.ConnectionRecord) Command {
	args := []string{s.cfg.Binary, "-t", "SHOW_SCHEMA", "-s", rec.DSN}
	args = append(args, dialect.GetDialect(rec.Engine).EngineArgs()...)
	args = s.withConfigFile(args)

	return Command{
		Kind: Discovery,
		Args: args,
		Env:  rec.Credentials(),
	}
}

// Reports returns the summary sheet and detail report commands for one schema.
func (s *Synthesizer) Reports(rec *dsnlist.ConnectionRecord, schemaName string) (Command, Command) {
	header := !s.headerDone
	s.headerDone = true

	summaryArgs := []string{s.cfg.Binary, "-t", "SHOW_REPORT", "--dump_as_sheet"}
	summaryArgs = append(summaryArgs, s.costArgs()...)
	if header {
		summaryArgs = append(summaryArgs, "--print_header")
	}
	summaryArgs = append(summaryArgs, s.targetArgs(rec, schemaName)...)

	detailArgs := []string{s.cfg.Binary, "-t", "SHOW_REPORT", "--dump_as_" + s.cfg.Format}
	detailArgs = append(detailArgs, s.costArgs()...)
	detailArgs = append(detailArgs, s.targetArgs(rec, schemaName)...)

	summary := Command{
		Kind:   Summary,
		Args:   summaryArgs,
		Env:    rec.Credentials(),
		Output: s.cfg.SummaryPath(),
		Append: true,
		Header: header,
	}
	detail := Command{
		Kind:   Detail,
		Args:   detailArgs,
		Env:    rec.Credentials(),
		Output: s.DetailPath(rec, schemaName),
		Append: true,
	}
	return summary, detail
}

// DetailPath is <outdir>/<host_><sid>_<schema>-report.<format>.
func (s *Synthesizer) DetailPath(rec *dsnlist.ConnectionRecord, schemaName string) string {
	base := identifier.ReportPrefix(rec.Host, rec.Sid) + SchemaPlaceholder
	if schemaName != SchemaPlaceholder {
		base = identifier.ReportBaseName(rec.Host, rec.Sid, schemaName)
	}
	return filepath.Join(s.cfg.OutDir, base+"-report."+s.cfg.Format)
}

func (s *Synthesizer) costArgs() []string {
	return []string{"--cost_unit_value", strconv.Itoa(s.cfg.CostUnit), "--estimate_cost"}
}

// targetArgs: [--audit_user <list>] -s <dsn> -n <schema> [engine flag] [-c <conf>]
func (s *Synthesizer) targetArgs(rec *dsnlist.ConnectionRecord, schemaName string) []string {
	var args []string
	if rec.AuditUsers != "" {
		args = append(args, "--audit_user", strings.ReplaceAll(rec.AuditUsers, ";", ","))
	}
	args = append(args, "-s", rec.DSN, "-n", schemaName)
	args = append(args, dialect.GetDialect(rec.Engine).EngineArgs()...)
	return s.withConfigFile(args)
}

func (s *Synthesizer) withConfigFile(args []string) []string {
	if s.cfg.ConfigFile != "" {
		args = append(args, "-c", s.cfg.ConfigFile)
	}
	return args
}
