package dialect

import (
	"strings"
)

// engineFlag wraps a single selector flag, or none when flag is empty.
func engineFlag(flag string) []string {
	if flag == "" {
		return nil
	}
	return []string{flag}
}

// hasPrefixFold is strings.HasPrefix ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
