package command

import (
	"regexp"
	"strings"
)

// Kind tells what a generated command is for.
type Kind int

const (
	Discovery Kind = iota
	Summary
	Detail
)

func (k Kind) String() string {
	switch k {
	case Discovery:
		return "discovery"
	case Summary:
		return "summary"
	default:
		return "detail"
	}
}

// Command is one invocation of the assessment tool.
type Command struct {
	Kind Kind
	// Args is the argv, Args[0] being the tool binary.
	Args []string
	// Env holds the credential assignments added to the inherited environment
	// of this invocation only.
	Env []string
	// Output receives stdout and stderr. Empty for discovery, whose output is
	// captured by the caller.
	Output string
	Append bool
	Header bool
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// quote renders one argument for display in a POSIX shell.
func quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if shellSafe.MatchString(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// String renders the command the way it would be typed in a shell.
// Credentials are not part of the rendering.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+3)
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	if c.Output != "" {
		op := ">"
		if c.Append {
			op = ">>"
		}
		parts = append(parts, op, quote(c.Output), "2>&1")
	}
	return strings.Join(parts, " ")
}
