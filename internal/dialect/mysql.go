package dialect

import (
	"regexp"

	"github.com/go-sql-driver/mysql"
)

type MysqlDialect struct{}

// user[:password]@tcp(addr)/dbname or @unix(path)/dbname
var mysqlNativeDSN = regexp.MustCompile(`^[^@]*@(tcp|tcp6|unix)\([^)]*\)/`)

func (d *MysqlDialect) Name() string {
	return "mysql"
}

func (d *MysqlDialect) EngineArgs() []string {
	return engineFlag("-m")
}

func (d *MysqlDialect) NativeDSN(dsn string) (string, string, bool) {
	if !mysqlNativeDSN.MatchString(dsn) {
		return "", "", false
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil || cfg.DBName == "" {
		return "", "", false
	}
	host := ""
	if cfg.Net != "unix" {
		host = cfg.Addr
	}
	return cfg.DBName, host, true
}
