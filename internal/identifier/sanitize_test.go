package identifier_test

import (
	"regexp"
	"strings"
	"testing"

	"db-scan/internal/identifier"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HR", "HR"},
		{"sales-2024", "sales-2024"},
		{"SYS$UMF", "SYS$UMF"},
		{"my schema", "my%20schema"},
		{"../../etc", "%2E.%2F..%2Fetc"},
		{"a/b\\c", "a%2Fb%5Cc"},
		{".hidden", "%2Ehidden"},
		{"100%", "100%25"},
		{"", "_"},
		{"É", "%C3%89"},
		{"x'; rm -rf /", "x%27%3B%20rm%20-rf%20%2F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, identifier.SafeName(tt.in), "input %q", tt.in)
	}
}

var safeComponent = regexp.MustCompile(`^[A-Za-z0-9_%$#-][A-Za-z0-9_.%$#~-]*$`)

func TestSafeName_RandomInputs(t *testing.T) {
	faker := gofakeit.New(42)
	seen := map[string]string{}
	for i := 0; i < 500; i++ {
		in := faker.Regex(`[a-zA-Z0-9 ./\\:*?"<>|'$#;%_-]{1,40}`)
		out := identifier.SafeName(in)
		assert.Regexp(t, safeComponent, out, "input %q", in)
		assert.NotContains(t, out, "/")
		assert.LessOrEqual(t, len(out), identifier.MaxNameLen)
		if prev, ok := seen[out]; ok {
			assert.Equal(t, prev, in, "%q and %q share the file name %q", prev, in, out)
		}
		seen[out] = in
	}
}

func TestSafeName_DistinctNames(t *testing.T) {
	names := []string{"A/B", "A:B", "A_B", "A B", "A%2FB", "_", ".x", "%2Ex"}
	seen := map[string]string{}
	for _, n := range names {
		out := identifier.SafeName(n)
		_, dup := seen[out]
		assert.False(t, dup, "%q collides with %q as %q", n, seen[out], out)
		seen[out] = n
	}
}

func TestSafeName_Cap(t *testing.T) {
	a := identifier.SafeName(strings.Repeat("s", 300))
	b := identifier.SafeName(strings.Repeat("s", 301))
	assert.Len(t, a, identifier.MaxNameLen)
	assert.Len(t, b, identifier.MaxNameLen)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, identifier.SafeName(strings.Repeat("s", 300)))
	assert.Len(t, identifier.SafeName(strings.Repeat("/", 100)), identifier.MaxNameLen)
}

func TestReportBaseName(t *testing.T) {
	assert.Equal(t, "bar_foo_sakila", identifier.ReportBaseName("bar_", "foo", "sakila"))
	assert.Equal(t, "XE_HR", identifier.ReportBaseName("", "XE", "HR"))
	assert.Equal(t, "ora%2Fhost_schema_my%20schema", identifier.ReportBaseName("ora/host_", "schema", "my schema"))
	assert.NotEqual(t,
		identifier.ReportBaseName("orahost_", "XE", "A/B"),
		identifier.ReportBaseName("orahost_", "XE", "A:B"))
}

func TestReportPrefix(t *testing.T) {
	assert.Equal(t, "bar_foo_", identifier.ReportPrefix("bar_", "foo"))
	assert.Equal(t, "schema_", identifier.ReportPrefix("", identifier.SchemaSentinel))
}
