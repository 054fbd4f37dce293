package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyRunsEverything(t *testing.T) {
	in, fl, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Intent{
		RunPPA: true, RunCamera: true, RunSoftware: true, RunUpgrade: true, Reboot: true,
	}, in)
	assert.Equal(t, Flags{}, fl)
	assert.False(t, in.WantsHostname())
}

func TestParse_SingleCapability(t *testing.T) {
	tests := []struct {
		args []string
		want Intent
	}{
		{[]string{"-p"}, Intent{RunPPA: true, Reboot: true}},
		{[]string{"--ppa-only"}, Intent{RunPPA: true, Reboot: true}},
		{[]string{"-c"}, Intent{RunCamera: true, Reboot: true}},
		{[]string{"--camera-only"}, Intent{RunCamera: true, Reboot: true}},
		{[]string{"-s"}, Intent{RunSoftware: true, Reboot: true}},
		{[]string{"--software-only"}, Intent{RunSoftware: true, Reboot: true}},
		{[]string{"-u"}, Intent{RunUpgrade: true, Reboot: true}},
		{[]string{"--upgrade-only"}, Intent{RunUpgrade: true, Reboot: true}},
	}
	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			in, _, err := Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, in)
		})
	}
}

func TestParse_CapabilitiesAreAdditive(t *testing.T) {
	in, _, err := Parse([]string{"-p", "--camera-only", "-p"})
	require.NoError(t, err)
	assert.Equal(t, Intent{RunPPA: true, RunCamera: true, Reboot: true}, in)
	assert.Equal(t, []string{CapabilityPPA, CapabilityCamera}, in.Capabilities())
}

func TestParse_AllWinsOverSubsets(t *testing.T) {
	for _, args := range [][]string{
		{"-a"},
		{"-a", "-p"},
		{"-c", "--all"},
		{"-s", "-a", "-u"},
		{"--all", "-p", "-c", "-s", "-u"},
	} {
		in, _, err := Parse(args)
		require.NoError(t, err, args)
		assert.True(t, in.RunPPA && in.RunCamera && in.RunSoftware && in.RunUpgrade, args)
	}
}

func TestParse_NoReboot(t *testing.T) {
	for _, args := range [][]string{
		{"--no-reboot"},
		{"--no-reboot", "--no-reboot"},
		{"-c", "--no-reboot"},
		{"--no-reboot", "-a", "--hostname=x"},
	} {
		in, _, err := Parse(args)
		require.NoError(t, err, args)
		assert.False(t, in.Reboot, args)
	}
}

func TestParse_Hostname(t *testing.T) {
	in, _, err := Parse([]string{"--hostname=foo"})
	require.NoError(t, err)
	assert.True(t, in.HostnameSet)
	assert.Equal(t, "foo", in.Hostname)
	assert.True(t, in.WantsHostname())
	// hostname does not count as a capability flag
	assert.True(t, in.RunPPA && in.RunCamera && in.RunSoftware && in.RunUpgrade)

	in, _, err = Parse([]string{"--hostname="})
	require.NoError(t, err)
	assert.True(t, in.HostnameSet)
	assert.Equal(t, "", in.Hostname)
	assert.False(t, in.WantsHostname())

	in, _, err = Parse([]string{"--hostname=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "a=b", in.Hostname)
}

func TestParse_Help(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {"-p", "--help", "--bogus"}} {
		_, _, err := Parse(args)
		assert.ErrorIs(t, err, ErrHelp, args)
	}
}

func TestParse_UnknownOption(t *testing.T) {
	for _, tok := range []string{"--bogus", "-x", "extra", "--hostname", "-pc", "--config"} {
		_, _, err := Parse([]string{"-p", tok})
		var uo *UnknownOptionError
		require.ErrorAs(t, err, &uo, tok)
		assert.Equal(t, tok, uo.Token)
		assert.Equal(t, "Unknown option: "+tok, err.Error())
	}
}

func TestParse_AmbientFlags(t *testing.T) {
	in, fl, err := Parse([]string{"--debug", "--dry-run", "--config=/tmp/c.yaml"})
	require.NoError(t, err)
	assert.Equal(t, Flags{Debug: true, DryRun: true, ConfigPath: "/tmp/c.yaml"}, fl)
	// ambient flags keep the run-everything default
	assert.Len(t, in.Capabilities(), 4)
}

func TestParse_CameraOnlyNoReboot(t *testing.T) {
	in, _, err := Parse([]string{"--camera-only", "--no-reboot"})
	require.NoError(t, err)
	assert.Equal(t, Intent{RunCamera: true}, in)
}

func TestResumeArgs(t *testing.T) {
	in, _, err := Parse([]string{"--hostname=mypi", "--no-reboot"})
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"--hostname=mypi", "-s", "-u", "--no-reboot"},
		in.ResumeArgs([]string{CapabilitySoftware, CapabilityUpgrade}, true))
	assert.Equal(t,
		[]string{"-u", "--no-reboot"},
		in.ResumeArgs([]string{CapabilityUpgrade}, false))
}

func TestUsageMentionsEveryOption(t *testing.T) {
	for _, opt := range []string{
		"--help", "--ppa-only", "--camera-only", "--software-only", "--upgrade-only",
		"--all", "--no-reboot", "--hostname=", "--dry-run", "--debug", "--config=",
	} {
		assert.Contains(t, Usage, opt)
	}
}
