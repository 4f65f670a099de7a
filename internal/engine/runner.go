package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"db-scan/internal/command"

	log "github.com/sirupsen/logrus"
)

// Runner executes assessment tool commands, one at a time.
type Runner interface {
	// Output runs cmd and returns what it wrote on stdout.
	Output(ctx context.Context, cmd command.Command) ([]byte, error)
	// Run runs cmd with both stdout and stderr written to w.
	Run(ctx context.Context, cmd command.Command, w io.Writer) error
}

const killWaitDelay = 2 * time.Second

// ExecRunner runs commands as subprocesses. The command credentials are added
// to the inherited environment of that subprocess only.
type ExecRunner struct {
	// Timeout bounds each invocation; zero means no limit.
	Timeout time.Duration
}

func (r *ExecRunner) command(ctx context.Context, c command.Command) (*exec.Cmd, context.CancelFunc, error) {
	if len(c.Args) == 0 {
		return nil, nil, fmt.Errorf("empty %s command", c.Kind)
	}
	cancel := func() {}
	if r.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
	}
	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Env = append(os.Environ(), c.Env...)
	// children of a killed tool may keep the output pipes open
	cmd.WaitDelay = killWaitDelay
	log.Debugf("executing the cmd: %s", c)
	return cmd, cancel, nil
}

func (r *ExecRunner) Output(ctx context.Context, c command.Command) ([]byte, error) {
	cmd, cancel, err := r.command(ctx, c)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var outbuf, errbuf bytes.Buffer
	cmd.Stdout = &outbuf
	cmd.Stderr = &errbuf

	err = cmd.Run()
	if errbuf.Len() > 0 {
		log.Warnf("%s STDERR: %q", c.Kind, errbuf.String())
	}
	if err != nil {
		return outbuf.Bytes(), fmt.Errorf("%s command failed: %w", c.Kind, err)
	}
	return outbuf.Bytes(), nil
}

func (r *ExecRunner) Run(ctx context.Context, c command.Command, w io.Writer) error {
	cmd, cancel, err := r.command(ctx, c)
	if err != nil {
		return err
	}
	defer cancel()

	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s command failed: %w", c.Kind, err)
	}
	return nil
}

// openOutput opens a report destination for appending, creating it if needed.
func openOutput(c command.Command) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if c.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(c.Output, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", c.Output, err)
	}
	return f, nil
}
