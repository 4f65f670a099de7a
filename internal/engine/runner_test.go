package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"db-scan/internal/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-tool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestExecRunner_OutputUsesScopedCredentials(t *testing.T) {
	tool := writeScript(t, `echo "SCHEMA $ORA2PG_USER"; echo "oops" >&2`)
	r := &ExecRunner{}

	out, err := r.Output(context.Background(), command.Command{
		Kind: command.Discovery,
		Args: []string{tool, "-t", "SHOW_SCHEMA"},
		Env:  []string{"ORA2PG_USER=scott", "ORA2PG_PASSWD=tiger"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SCHEMA scott\n", string(out))

	_, present := os.LookupEnv("ORA2PG_PASSWD")
	assert.False(t, present, "credentials must not leak into the process environment")
}

func TestExecRunner_RunMergesStreams(t *testing.T) {
	tool := writeScript(t, `echo "row $2"; echo "warn" >&2; exit 3`)
	r := &ExecRunner{}
	var buf bytes.Buffer

	err := r.Run(context.Background(), command.Command{Kind: command.Summary, Args: []string{tool, "-n", "HR"}}, &buf)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "row HR")
	assert.Contains(t, buf.String(), "warn")
}

func TestExecRunner_Timeout(t *testing.T) {
	tool := writeScript(t, `exec sleep 5`)
	r := &ExecRunner{Timeout: 100 * time.Millisecond}

	start := time.Now()
	_, err := r.Output(context.Background(), command.Command{Kind: command.Discovery, Args: []string{tool}})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecRunner_EmptyCommand(t *testing.T) {
	_, err := (&ExecRunner{}).Output(context.Background(), command.Command{})
	assert.Error(t, err)
}

func TestOpenOutput_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbs_scan.csv")
	for _, line := range []string{"a\n", "b\n"} {
		f, err := openOutput(command.Command{Output: path, Append: true})
		require.NoError(t, err)
		_, err = f.WriteString(line)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}
