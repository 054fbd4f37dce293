// Package system is the only place provisioning touches the machine: it runs
// external commands and reads or writes files, either for real or as a dry run
// that only reports what it would do.
package system

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Cmd is an external command with optional extra environment.
type Cmd struct {
	Args []string
	Env  map[string]string
}

// Command builds a Cmd from a program name and its arguments.
func Command(name string, args ...string) Cmd {
	return Cmd{Args: append([]string{name}, args...)}
}

// WithEnv returns a copy of c that also sets key=value in the child environment.
func (c Cmd) WithEnv(key, value string) Cmd {
	env := make(map[string]string, len(c.Env)+1)
	maps.Copy(env, c.Env)
	env[key] = value
	c.Env = env
	c.Args = slices.Clone(c.Args)
	return c
}

// String renders the command the way a user would type it, environment first.
func (c Cmd) String() string {
	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		fmt.Fprintf(&sb, "%s=%s ", k, c.Env[k])
	}
	sb.WriteString(strings.Join(c.Args, " "))
	return sb.String()
}

// Runner runs external commands.
type Runner interface {
	Run(ctx context.Context, c Cmd) error
}

// CommandError is returned when a command cannot be started or exits unsuccessfully.
type CommandError struct {
	Args     []string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed (exit code %d): %v", strings.Join(e.Args, " "), e.ExitCode, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the exit code carried by a *CommandError anywhere in err's
// chain, or fallback when there is none.
func ExitCode(err error, fallback int) int {
	var ce *CommandError
	if errors.As(err, &ce) && ce.ExitCode > 0 {
		return ce.ExitCode
	}
	return fallback
}
