package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rubikpi-setup/internal/config"
	"rubikpi-setup/internal/installer"
	"rubikpi-setup/internal/intent"
	"rubikpi-setup/internal/logger"
	"rubikpi-setup/internal/provision"
	"rubikpi-setup/internal/state"
	"rubikpi-setup/internal/system"
)

var errNotRoot = errors.New("rubikpi-setup must be run as root (try sudo), or with --dry-run")

// Hooks replaced by tests.
var (
	geteuid    = os.Geteuid
	getenv     = os.Getenv
	lookupHome = provision.LookupHome
	sleep      = provision.Sleep
	newRunner  = func(cmd *cobra.Command, dryRun bool) system.Runner {
		if dryRun {
			return system.NewDryRunRunner(cmd.OutOrStdout())
		}
		return system.NewExecRunner(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
)

// newRootCmd builds the single rubikpi-setup command. Flag parsing is left to
// intent.Parse so unknown tokens are reported exactly once and before anything
// touches the system.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "rubikpi-setup [options]",
		Short:              "Provision a RUBIK Pi 3 board",
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		Args:               cobra.ArbitraryArgs,
		RunE:               runProvision,
	}
}

func runProvision(cmd *cobra.Command, args []string) error {
	in, fl, err := intent.Parse(args)
	if errors.Is(err, intent.ErrHelp) {
		_, err = fmt.Fprint(cmd.OutOrStdout(), intent.Usage)
		return err
	}
	if err != nil {
		return err
	}
	logger.Init(fl.Debug)
	logger.Debug("[DEBUG] Arguments: %q\n", args)

	cfg, err := config.Load(fl.ConfigPath)
	if err != nil {
		return err
	}
	if !fl.DryRun && geteuid() != 0 {
		return errNotRoot
	}

	p := &provision.Provisioner{
		Config:    cfg,
		Intent:    in,
		Runner:    newRunner(cmd, fl.DryRun),
		FS:        system.OSFS{},
		Keys:      installer.NewKeyFetcher(cfg.Repository.KeyFetchTimeout, cfg.Repository.KeyFetchAttempts),
		UserRC:    provision.ResolveUserRC(cfg.Camera, getenv, lookupHome),
		DryRun:    fl.DryRun,
		State:     state.LoadState(cfg.System.StateFile),
		StatePath: cfg.System.StateFile,
		Out:       cmd.OutOrStdout(),
		Sleep:     sleep,
	}
	if fl.DryRun {
		p.FS = system.NewDryRunFS(cmd.OutOrStdout())
		logger.Warn("[WARN] Dry run: no commands are executed and no files are written\n")
	}
	if f := p.State.LastFailure; f != nil {
		logger.Info("[INFO] Previous run stopped at %s (%s): %s\n", f.Action, f.FailedAt.Local().Format("2006-01-02 15:04"), f.Error)
	}
	return p.Run(cmd.Context())
}
