package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_DefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "deb http://apt.rubikpi.ai ppa main", cfg.Repository.Line)
	assert.Equal(t, 10*time.Second, cfg.Reboot.Delay)
	assert.Equal(t, os.FileMode(0o777), cfg.Camera.SharedDirMode.FileMode())
}

func TestLoad_OverlayReplacesOnlyGivenKeys(t *testing.T) {
	p := writeConfig(t, `
system:
  hosts_file: /tmp/hosts
repository:
  key_path: /tmp/keys/rubikpi3.gpg
  key_fetch_timeout: 30s
camera:
  shared_dir_mode: "0755"
software:
  packages: [foo, bar]
reboot:
  delay: 0s
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, "/tmp/hosts", cfg.System.HostsFile)
	assert.Equal(t, def.System.StateFile, cfg.System.StateFile)
	assert.Equal(t, "/tmp/keys/rubikpi3.gpg", cfg.Repository.KeyPath)
	assert.Equal(t, 30*time.Second, cfg.Repository.KeyFetchTimeout)
	assert.Equal(t, def.Repository.KeyURL, cfg.Repository.KeyURL)
	assert.Equal(t, Mode(0o755), cfg.Camera.SharedDirMode)
	assert.Equal(t, def.Camera.Packages, cfg.Camera.Packages)
	assert.Equal(t, []string{"foo", "bar"}, cfg.Software.Packages)
	assert.Equal(t, time.Duration(0), cfg.Reboot.Delay)
}

func TestLoad_UnquotedOctalMode(t *testing.T) {
	cfg, err := Load(writeConfig(t, "camera:\n  shared_dir_mode: 0700\n"))
	require.NoError(t, err)
	assert.Equal(t, Mode(0o700), cfg.Camera.SharedDirMode)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errLike string
	}{
		{"unknown key", "system:\n  hostsfile: /etc/hosts\n", "hostsfile"},
		{"relative path", "system:\n  hosts_file: etc/hosts\n", "HostsFile"},
		{"bad url", "repository:\n  key_url: not a url\n", "KeyURL"},
		{"empty package list", "software:\n  packages: []\n", "Software.Packages"},
		{"empty package name", "camera:\n  packages: [a, \"\"]\n", "Camera.Packages[1]"},
		{"bad mode", "camera:\n  shared_dir_mode: \"0999\"\n", "invalid file mode"},
		{"mode out of range", "camera:\n  shared_dir_mode: \"4755\"\n", "out of range"},
		{"zero mode", "camera:\n  shared_dir_mode: \"0000\"\n", "SharedDirMode"},
		{"bad loopback", "system:\n  loopback_address: localhost\n", "LoopbackAddress"},
		{"no attempts", "repository:\n  key_fetch_attempts: 0\n", "KeyFetchAttempts"},
		{"negative delay", "reboot:\n  delay: -1s\n", "Reboot.Delay"},
		{"empty reboot command", "reboot:\n  command: []\n", "Reboot.Command"},
		{"blank repository line", "repository:\n  line: \"   \"\n", "Repository.Line"},
		{"blank hosts entry", "repository:\n  hosts_entry: \" \"\n", "Repository.HostsEntry"},
		{"blank env line", "camera:\n  env_line: \"\\t \"\n", "Camera.EnvLine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errLike)
		})
	}
}

func TestLoad_EmptyHostsEntryAllowed(t *testing.T) {
	cfg, err := Load(writeConfig(t, "repository:\n  hosts_entry: \"\"\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Repository.HostsEntry)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMode_MarshalYAML(t *testing.T) {
	v, err := Mode(0o755).MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "0755", v)
}
