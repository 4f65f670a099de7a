package dsnlist

import "strings"

// EngineType is the database engine family of a connection record.
type EngineType string

const (
	MySQL  EngineType = "MYSQL"
	Oracle EngineType = "ORACLE"
	MSSQL  EngineType = "MSSQL"
)

// Engines lists the accepted engine tags.
var Engines = []EngineType{MySQL, Oracle, MSSQL}

// ParseEngine returns the engine for a type tag, ignoring case and surrounding quotes.
func ParseEngine(s string) (EngineType, bool) {
	tag := EngineType(strings.ToUpper(strings.Trim(strings.TrimSpace(s), `"`)))
	for _, e := range Engines {
		if e == tag {
			return e, true
		}
	}
	return "", false
}

// ConnectionRecord is one connection line of the list file.
// Sid and Host are filled later by the identifier package.
type ConnectionRecord struct {
	Line       int
	Engine     EngineType
	Schema     string
	DSN        string
	User       string
	Password   string
	AuditUsers string

	Sid  string
	Host string
}

// HasSchema reports whether the record names its schema explicitly.
func (r *ConnectionRecord) HasSchema() bool {
	return r.Schema != ""
}

// Credentials returns the environment assignments read by the external tool.
func (r *ConnectionRecord) Credentials() []string {
	return []string{
		"ORA2PG_USER=" + r.User,
		"ORA2PG_PASSWD=" + r.Password,
	}
}
