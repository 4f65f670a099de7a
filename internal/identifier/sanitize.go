package identifier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// MaxNameLen caps one sanitized file name component, in bytes.
const MaxNameLen = 200

// hashLen is the length of the digest suffix of a capped name ("~" + 8 hex).
const hashLen = 9

// SafeName maps a host, sid or schema name to a file name component.
// Bytes outside [A-Za-z0-9_.$#-] are percent-encoded ('/' gives "%2F", '%'
// gives "%25"), a leading '.' gives "%2E" and an empty name gives "_".
// Distinct non-empty names give distinct components: a name longer than
// MaxNameLen once encoded is cut and suffixed with "~" and a digest of the
// original name.
func SafeName(s string) string {
	if s == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSafeByte(c) && !(i == 0 && c == '.') {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	out := b.String()
	if len(out) > MaxNameLen {
		sum := sha256.Sum256([]byte(s))
		out = out[:MaxNameLen-hashLen] + "~" + hex.EncodeToString(sum[:4])
	}
	return out
}

func isSafeByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '$', c == '#', c == '-':
		return true
	}
	return false
}

// ReportPrefix returns "<host_><sid>_", the part of a report name fixed by the connection.
func ReportPrefix(host, sid string) string {
	prefix := ""
	if host != "" {
		prefix = SafeName(strings.TrimSuffix(host, HostSeparator)) + HostSeparator
	}
	return prefix + SafeName(sid) + "_"
}

// ReportBaseName returns "<host_><sid>_<schema>" for a resolved record.
func ReportBaseName(host, sid, schema string) string {
	return ReportPrefix(host, sid) + SafeName(schema)
}
