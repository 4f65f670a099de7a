package dialect

import "db-scan/internal/dsnlist"

// GetDialect returns the Dialect implementation for an engine type.
func GetDialect(engine dsnlist.EngineType) Dialect {
	switch engine {
	case dsnlist.MySQL:
		return &MysqlDialect{}
	case dsnlist.MSSQL:
		return &MSSQLDialect{}
	default: // oracle
		return &OracleDialect{}
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
