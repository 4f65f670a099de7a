package dialect

import (
	"github.com/microsoft/go-mssqldb/msdsn"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string {
	return "sqlserver"
}

func (d *MSSQLDialect) EngineArgs() []string {
	return engineFlag("-M")
}

// NativeDSN only handles the sqlserver:// URL form; the ADO key=value form is
// already covered by the generic key rules.
func (d *MSSQLDialect) NativeDSN(dsn string) (string, string, bool) {
	if !hasPrefixFold(dsn, "sqlserver://") {
		return "", "", false
	}
	cfg, err := msdsn.Parse(dsn)
	if err != nil || cfg.Database == "" {
		return "", "", false
	}
	host := cfg.Host
	if cfg.Instance != "" {
		host += "_" + cfg.Instance
	}
	return cfg.Database, host, true
}
