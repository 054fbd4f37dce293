// Package provision runs the provisioning actions selected by an intent.Intent
// in their fixed order, stopping at the first failure, and finishes with the
// reboot controller.
package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"rubikpi-setup/internal/config"
	"rubikpi-setup/internal/installer"
	"rubikpi-setup/internal/intent"
	"rubikpi-setup/internal/logger"
	"rubikpi-setup/internal/state"
	"rubikpi-setup/internal/system"
)

// KeyFetcher downloads an ASCII-armored signing key.
type KeyFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Provisioner holds everything a run needs. Intent is read-only.
type Provisioner struct {
	Config *config.Config
	Intent intent.Intent
	Runner system.Runner
	FS     system.FS
	Keys   KeyFetcher
	// UserRC is the regular user's shell startup file, see ResolveUserRC.
	UserRC string
	DryRun bool

	// State, when non-nil, records completed and failed actions and is written
	// to StatePath after every change.
	State     *state.State
	StatePath string

	Out   io.Writer
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// Action binds a step of the run to the intent predicate that enables it.
type Action struct {
	Name string
	// Capability is the intent capability this action implements, empty for
	// the hostname action.
	Capability string
	Start      string
	Done       string
	Enabled    func(intent.Intent) bool
	Run        func(p *Provisioner, ctx context.Context) error
}

// Sequence is the order actions run in, regardless of flag order on the
// command line. The reboot controller always runs after it.
var Sequence = []Action{
	{
		Name:    "hostname",
		Start:   "Setting hostname",
		Done:    "Hostname configured",
		Enabled: func(in intent.Intent) bool { return in.HostnameSet },
		Run:     (*Provisioner).setHostname,
	},
	{
		Name:       "ppa",
		Capability: intent.CapabilityPPA,
		Start:      "Adding RUBIK Pi PPA repository",
		Done:       "PPA repository added",
		Enabled:    func(in intent.Intent) bool { return in.RunPPA },
		Run:        (*Provisioner).addRepository,
	},
	{
		Name:       "camera",
		Capability: intent.CapabilityCamera,
		Start:      "Installing camera software",
		Done:       "Camera software installed",
		Enabled:    func(in intent.Intent) bool { return in.RunCamera },
		Run:        (*Provisioner).installCamera,
	},
	{
		Name:       "software",
		Capability: intent.CapabilitySoftware,
		Start:      "Installing RUBIK Pi software",
		Done:       "RUBIK Pi software installed",
		Enabled:    func(in intent.Intent) bool { return in.RunSoftware },
		Run:        (*Provisioner).installSoftware,
	},
	{
		Name:       "upgrade",
		Capability: intent.CapabilityUpgrade,
		Start:      "Upgrading system packages",
		Done:       "System upgraded",
		Enabled:    func(in intent.Intent) bool { return in.RunUpgrade },
		Run:        (*Provisioner).upgrade,
	},
}

// ActionError reports the action that stopped a run.
type ActionError struct {
	Action string
	// Completed lists the actions that succeeded earlier in the same run.
	Completed []string
	// Remaining lists the capabilities that did not complete, starting with the
	// failed action's own.
	Remaining []string
	// HostnamePending is set when the hostname action itself failed.
	HostnamePending bool
	// ResumeArgs is the command line that picks up where this run stopped.
	ResumeArgs []string
	Err        error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// Run executes the enabled actions of Sequence in order, then the reboot
// controller. The first failing action aborts the run with an *ActionError.
func (p *Provisioner) Run(ctx context.Context) error {
	p.defaults()
	logger.Debug("[DEBUG] Intent: %s\n", p.Intent)
	p.printPlan()

	var completed []string
	for i, a := range Sequence {
		if !a.Enabled(p.Intent) {
			logger.Debug("[DEBUG] Skipping %s: not selected\n", a.Name)
			continue
		}
		logger.Step("==> %s...\n", a.Start)
		if err := a.Run(p, ctx); err != nil {
			if ctx.Err() != nil {
				// interrupted, not failed
				return err
			}
			p.recordFailure(a.Name, err)
			return p.actionError(i, completed, err)
		}
		logger.Success("[OK] %s.\n", a.Done)
		completed = append(completed, a.Name)
		p.recordDone(a.Name)
	}
	logger.Success("[OK] All selected actions completed: %s\n", strings.Join(completed, ", "))
	return p.reboot(ctx)
}

func (p *Provisioner) actionError(failed int, completed []string, err error) *ActionError {
	ae := &ActionError{
		Action:          Sequence[failed].Name,
		Completed:       completed,
		HostnamePending: Sequence[failed].Capability == "",
		Err:             err,
	}
	for _, a := range Sequence[failed:] {
		if a.Capability != "" && a.Enabled(p.Intent) {
			ae.Remaining = append(ae.Remaining, a.Capability)
		}
	}
	ae.ResumeArgs = p.Intent.ResumeArgs(ae.Remaining, ae.HostnamePending)
	return ae
}

func (p *Provisioner) apt() installer.Apt {
	return installer.Apt{Runner: p.Runner}
}

func (p *Provisioner) defaults() {
	if p.Out == nil {
		p.Out = os.Stdout
	}
	if p.Sleep == nil {
		p.Sleep = Sleep
	}
	if p.Now == nil {
		p.Now = time.Now
	}
}

func (p *Provisioner) recordDone(action string) {
	if p.State == nil || p.DryRun {
		return
	}
	p.State.MarkDone(action, p.Now())
	state.SaveState(p.StatePath, p.State)
}

func (p *Provisioner) recordFailure(action string, err error) {
	if p.State == nil || p.DryRun {
		return
	}
	p.State.MarkFailed(action, err, p.Now())
	state.SaveState(p.StatePath, p.State)
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
