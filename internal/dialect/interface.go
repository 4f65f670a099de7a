package dialect

// Dialect abstracts the engine-specific parts of driving the assessment tool.
type Dialect interface {
	Name() string

	// EngineArgs returns the engine selector flags of the assessment tool.
	// Oracle is the tool's default engine and adds none.
	EngineArgs() []string

	// NativeDSN extracts the database name and host from the engine driver's own
	// DSN syntax (as opposed to the DBI syntax the tool reads). ok is false when
	// dsn is not in that syntax.
	NativeDSN(dsn string) (sid, host string, ok bool)
}
