package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full set of fixed data a provisioning run works with: file
// locations, repository coordinates and package lists.
type Config struct {
	System     System     `yaml:"system"`
	Repository Repository `yaml:"repository"`
	Camera     Camera     `yaml:"camera"`
	Software   Software   `yaml:"software"`
	Reboot     Reboot     `yaml:"reboot"`
}

// System describes host files shared by several actions.
type System struct {
	HostsFile       string `yaml:"hosts_file" validate:"required,startswith=/"`
	LoopbackAddress string `yaml:"loopback_address" validate:"required,ip"`
	StateFile       string `yaml:"state_file" validate:"required,startswith=/"`
}

// Repository describes the vendor package repository.
// - Line: the entry appended to SourcesList.
// - HostsEntry: a static host-to-IP mapping for the repository host, may be empty.
// - KeyURL/KeyPath: where the signing key comes from and where apt will find it.
type Repository struct {
	SourcesList      string        `yaml:"sources_list" validate:"required,startswith=/"`
	Line             string        `yaml:"line" validate:"required,notblank"`
	HostsEntry       string        `yaml:"hosts_entry" validate:"omitempty,notblank"`
	KeyURL           string        `yaml:"key_url" validate:"required,url"`
	KeyPath          string        `yaml:"key_path" validate:"required,startswith=/"`
	KeyFetchTimeout  time.Duration `yaml:"key_fetch_timeout" validate:"gte=0"`
	KeyFetchAttempts int           `yaml:"key_fetch_attempts" validate:"gte=1"`
}

// Camera describes the camera stack preparation and its two package sets.
type Camera struct {
	SharedDir       string   `yaml:"shared_dir" validate:"required,startswith=/"`
	SharedDirMode   Mode     `yaml:"shared_dir_mode"`
	EnvLine         string   `yaml:"env_line" validate:"required,notblank"`
	User            string   `yaml:"user"`
	UserRC          string   `yaml:"user_rc" validate:"omitempty,startswith=/"`
	RootRC          string   `yaml:"root_rc" validate:"required,startswith=/"`
	CacheDir        string   `yaml:"cache_dir" validate:"required,startswith=/"`
	OverrideFile    string   `yaml:"override_file" validate:"required,startswith=/"`
	OverrideSetting string   `yaml:"override_setting" validate:"required,notblank"`
	Packages        []string `yaml:"packages" validate:"required,min=1,dive,required"`
	AppPackages     []string `yaml:"app_packages" validate:"required,min=1,dive,required"`
}

// Software lists the vendor AI/audio packages.
type Software struct {
	Packages []string `yaml:"packages" validate:"required,min=1,dive,required"`
}

// Reboot controls the final reboot.
type Reboot struct {
	Delay   time.Duration `yaml:"delay" validate:"gte=0"`
	Command []string      `yaml:"command" validate:"required,min=1,dive,required"`
}

// Mode is a file permission written as an octal string in YAML, e.g. "0777".
type Mode os.FileMode

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	if v > 0o777 {
		return fmt.Errorf("invalid file mode %q: out of range", s)
	}
	*m = Mode(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m Mode) MarshalYAML() (any, error) {
	return fmt.Sprintf("%04o", uint32(m)), nil
}

// FileMode returns the permission bits as an os.FileMode.
func (m Mode) FileMode() os.FileMode { return os.FileMode(m) }
