package identifier

import (
	"errors"
	"fmt"

	"db-scan/internal/dialect"
	"db-scan/internal/dsnlist"

	log "github.com/sirupsen/logrus"
)

// SchemaSentinel names the sid part of report files when only an explicit schema is known.
const SchemaSentinel = "schema"

// ErrUnresolvable marks a record with neither a resolvable database name nor a schema.
// Such a record is skipped; the batch goes on.
var ErrUnresolvable = errors.New("no sid, database or service name found in DSN and no schema given")

// Extractor resolves Sid and Host on connection records.
type Extractor struct {
	SidRules  []Rule
	HostRules []Rule
}

// NewExtractor returns an extractor using the default rule tables.
func NewExtractor() *Extractor {
	return &Extractor{SidRules: SidRules, HostRules: HostRules}
}

// Resolve fills rec.Sid and rec.Host in place.
func (e *Extractor) Resolve(rec *dsnlist.ConnectionRecord) error {
	d := dialect.GetDialect(rec.Engine)
	nativeSid, nativeHost, native := d.NativeDSN(rec.DSN)

	rec.Sid = ""
	rec.Host = ""

	if sid, rule, ok := firstMatch(e.SidRules, rec.DSN); ok {
		log.Debugf("line %d: sid %q resolved by rule %q", rec.Line, sid, rule)
		rec.Sid = sid
	} else if native && nativeSid != "" {
		log.Debugf("line %d: sid %q resolved from %s DSN", rec.Line, nativeSid, d.Name())
		rec.Sid = nativeSid
	}

	if host, _, ok := firstMatch(e.HostRules, rec.DSN); ok {
		rec.Host = hostPrefix(host)
	} else if native && nativeHost != "" {
		rec.Host = hostPrefix(nativeHost)
	}

	if rec.Sid == "" {
		if !rec.HasSchema() {
			return fmt.Errorf("line %d (%s): %w", rec.Line, rec.DSN, ErrUnresolvable)
		}
		rec.Sid = SchemaSentinel
	}
	return nil
}

func firstMatch(rules []Rule, dsn string) (string, string, bool) {
	for _, r := range rules {
		if v, ok := r.Apply(dsn); ok {
			return v, r.Name, true
		}
	}
	return "", "", false
}
