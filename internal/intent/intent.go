// Package intent turns the command line into the immutable description of what a
// provisioning run should do.
package intent

import (
	"errors"
	"fmt"
	"strings"
)

// Capability names, in dispatch order.
const (
	CapabilityPPA      = "ppa"
	CapabilityCamera   = "camera"
	CapabilitySoftware = "software"
	CapabilityUpgrade  = "upgrade"
)

// ErrHelp is returned by Parse when -h/--help is seen.
var ErrHelp = errors.New("help requested")

// UnknownOptionError reports a token Parse does not recognize.
type UnknownOptionError struct {
	Token string
}

func (e *UnknownOptionError) Error() string {
	return "Unknown option: " + e.Token
}

// Intent records which provisioning actions to run. It is built once by Parse and
// passed around by value.
type Intent struct {
	RunPPA      bool
	RunCamera   bool
	RunSoftware bool
	RunUpgrade  bool
	Reboot      bool

	// Hostname is only meaningful when HostnameSet is true. An empty Hostname with
	// HostnameSet true comes from `--hostname=` and makes the hostname action a
	// no-op.
	Hostname    string
	HostnameSet bool
}

// Flags holds the options that shape how a run behaves without choosing actions.
type Flags struct {
	Debug      bool
	DryRun     bool
	ConfigPath string
}

const (
	hostnamePrefix = "--hostname="
	configPrefix   = "--config="
)

// Parse processes args left to right. Without any capability flag all four
// capabilities are enabled; any of -p/-c/-s/-u selects only the named ones.
func Parse(args []string) (Intent, Flags, error) {
	in := Intent{Reboot: true}
	var fl Flags
	explicit := false

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			return Intent{}, Flags{}, ErrHelp
		case arg == "-p" || arg == "--ppa-only":
			in.RunPPA, explicit = true, true
		case arg == "-c" || arg == "--camera-only":
			in.RunCamera, explicit = true, true
		case arg == "-s" || arg == "--software-only":
			in.RunSoftware, explicit = true, true
		case arg == "-u" || arg == "--upgrade-only":
			in.RunUpgrade, explicit = true, true
		case arg == "-a" || arg == "--all":
			in.RunPPA, in.RunCamera, in.RunSoftware, in.RunUpgrade = true, true, true, true
			explicit = true
		case arg == "--no-reboot":
			in.Reboot = false
		case strings.HasPrefix(arg, hostnamePrefix):
			in.Hostname = strings.TrimPrefix(arg, hostnamePrefix)
			in.HostnameSet = true
		case arg == "--debug":
			fl.Debug = true
		case arg == "--dry-run":
			fl.DryRun = true
		case strings.HasPrefix(arg, configPrefix):
			fl.ConfigPath = strings.TrimPrefix(arg, configPrefix)
		default:
			return Intent{}, Flags{}, &UnknownOptionError{Token: arg}
		}
	}

	if !explicit {
		in.RunPPA, in.RunCamera, in.RunSoftware, in.RunUpgrade = true, true, true, true
	}
	return in, fl, nil
}

// WantsHostname reports whether the hostname action has anything to do.
func (in Intent) WantsHostname() bool {
	return in.HostnameSet && in.Hostname != ""
}

// Enabled reports whether the named capability is on.
func (in Intent) Enabled(capability string) bool {
	switch capability {
	case CapabilityPPA:
		return in.RunPPA
	case CapabilityCamera:
		return in.RunCamera
	case CapabilitySoftware:
		return in.RunSoftware
	case CapabilityUpgrade:
		return in.RunUpgrade
	}
	return false
}

// Capabilities lists the enabled capabilities in dispatch order.
func (in Intent) Capabilities() []string {
	var out []string
	for _, c := range []string{CapabilityPPA, CapabilityCamera, CapabilitySoftware, CapabilityUpgrade} {
		if in.Enabled(c) {
			out = append(out, c)
		}
	}
	return out
}

var shortFlags = map[string]string{
	CapabilityPPA:      "-p",
	CapabilityCamera:   "-c",
	CapabilitySoftware: "-s",
	CapabilityUpgrade:  "-u",
}

// ResumeArgs returns the command line that runs the given capabilities while
// keeping this intent's reboot choice. The hostname is included only when
// withHostname is set.
func (in Intent) ResumeArgs(capabilities []string, withHostname bool) []string {
	var args []string
	if withHostname && in.WantsHostname() {
		args = append(args, hostnamePrefix+in.Hostname)
	}
	for _, c := range capabilities {
		if f, ok := shortFlags[c]; ok {
			args = append(args, f)
		}
	}
	if !in.Reboot {
		args = append(args, "--no-reboot")
	}
	return args
}

func (in Intent) String() string {
	hostname := "<unset>"
	if in.HostnameSet {
		hostname = fmt.Sprintf("%q", in.Hostname)
	}
	return fmt.Sprintf("ppa=%t camera=%t software=%t upgrade=%t reboot=%t hostname=%s",
		in.RunPPA, in.RunCamera, in.RunSoftware, in.RunUpgrade, in.Reboot, hostname)
}
