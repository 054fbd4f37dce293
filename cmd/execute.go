package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"rubikpi-setup/internal/intent"
	"rubikpi-setup/internal/logger"
	"rubikpi-setup/internal/provision"
	"rubikpi-setup/internal/system"
)

var exitFunc = os.Exit

// Execute runs rubikpi-setup with the process arguments and exits with the
// resulting status when it is not zero.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if code != 0 {
		exitFunc(code)
	}
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(root.ExecuteContext(ctx), stderr)
}

// exitCode reports err to the user and maps it to a process exit status.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var unknown *intent.UnknownOptionError
	if errors.As(err, &unknown) {
		_, _ = fmt.Fprintln(stderr, unknown.Error())
		_, _ = fmt.Fprintln(stderr, "Use --help for usage information.")
		return 1
	}

	if errors.Is(err, context.Canceled) {
		logger.Warn("[WARN] Cancelled.\n")
		return 130
	}

	var ae *provision.ActionError
	if errors.As(err, &ae) {
		logger.Error("[ERROR] %v\n", err)
		if len(ae.Completed) > 0 {
			logger.Info("[INFO] Completed: %s\n", strings.Join(ae.Completed, ", "))
		}
		logger.Info("[INFO] Resume with: sudo rubikpi-setup %s\n", strings.Join(ae.ResumeArgs, " "))
		return system.ExitCode(err, 1)
	}

	logger.Error("[ERROR] %v\n", err)
	return system.ExitCode(err, 1)
}
