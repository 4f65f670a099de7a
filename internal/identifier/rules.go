package identifier

import (
	"regexp"
	"strings"
)

// Rule extracts one identifier from a raw DSN. Rules are evaluated in table
// order and the first one returning ok wins.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// Group is the submatch holding the value.
	Group int
}

// Apply returns the captured value when the rule matches dsn.
func (r Rule) Apply(dsn string) (string, bool) {
	m := r.Pattern.FindStringSubmatch(dsn)
	if m == nil || r.Group >= len(m) {
		return "", false
	}
	v := strings.TrimSpace(m[r.Group])
	if v == "" {
		return "", false
	}
	return v, true
}

// SidRules resolve the sid, database or service name.
var SidRules = []Rule{
	{
		Name:    "key",
		Pattern: regexp.MustCompile(`(?i)(?:sid|database|service_name)=([^;]+)`),
		Group:   1,
	},
	{
		Name:    "oracle-bare",
		Pattern: regexp.MustCompile(`(?i)^dbi:Oracle:([^=/;:]+)$`),
		Group:   1,
	},
	{
		Name:    "oracle-url",
		Pattern: regexp.MustCompile(`(?i)^dbi:Oracle://[^/]+/([^;?/]+)`),
		Group:   1,
	},
}

// HostRules resolve the host used as file name prefix.
var HostRules = []Rule{
	{
		Name:    "key",
		Pattern: regexp.MustCompile(`(?i)(?:host|server)=([^;]+)`),
		Group:   1,
	},
	{
		Name:    "oracle-url",
		Pattern: regexp.MustCompile(`(?i)^dbi:Oracle://([^/;]+)/`),
		Group:   1,
	},
}

var portSuffix = regexp.MustCompile(`[:,]\d+$`)

// HostSeparator joins the host prefix to the rest of a report file name.
const HostSeparator = "_"

// hostPrefix strips a trailing port and appends the separator.
func hostPrefix(host string) string {
	host = portSuffix.ReplaceAllString(host, "")
	host = strings.TrimPrefix(host, "tcp:")
	if host == "" {
		return ""
	}
	return host + HostSeparator
}
