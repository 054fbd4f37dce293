package system

import (
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"strings"

	"rubikpi-setup/internal/logger"
)

// ExecRunner runs commands with os/exec, passing stdio through so the user sees
// apt and friends exactly as if they had typed the command.
type ExecRunner struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// NewExecRunner returns an ExecRunner wired to the given streams.
func NewExecRunner(stdin io.Reader, stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{Stdin: stdin, Stdout: stdout, Stderr: stderr}
}

func (r *ExecRunner) Run(ctx context.Context, c Cmd) error {
	if len(c.Args) == 0 {
		return &CommandError{ExitCode: 1, Err: errors.New("empty command")}
	}
	logger.Debug("[DEBUG] Running command: %s\n", c)

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = r.Stdin, r.Stdout, r.Stderr
	if len(c.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), c.Env)
	}
	if err := cmd.Run(); err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			code = exitErr.ExitCode()
		} else if errors.Is(err, exec.ErrNotFound) {
			code = 127
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			// the child was killed because ctx ended
			err = errors.Join(err, ctxErr)
		}
		return &CommandError{Args: c.Args, ExitCode: code, Err: err}
	}
	return nil
}

// mergeEnv overlays extra on top of base, which is in os.Environ form.
func mergeEnv(base []string, extra map[string]string) []string {
	full := make(map[string]string, len(base)+len(extra))
	order := make([]string, 0, len(base)+len(extra))
	for _, e := range base {
		name, val, _ := strings.Cut(e, "=")
		if _, seen := full[name]; !seen {
			order = append(order, name)
		}
		full[name] = val
	}
	for k := range extra {
		if _, seen := full[k]; !seen {
			order = append(order, k)
		}
	}
	maps.Copy(full, extra)
	env := make([]string, 0, len(order))
	for _, k := range order {
		env = append(env, k+"="+full[k])
	}
	return env
}
