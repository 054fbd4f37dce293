package provision

import (
	"context"
	"os"
	"os/user"
	"path/filepath"

	"rubikpi-setup/internal/config"
	"rubikpi-setup/internal/logger"
)

const defaultUser = "ubuntu"

// ResolveUserRC returns the shell startup file of the regular user: the
// configured path if any, else .bashrc in the home of the configured user, the
// user that invoked sudo, or "ubuntu".
func ResolveUserRC(c config.Camera, getenv func(string) string, lookupHome func(string) (string, error)) string {
	if c.UserRC != "" {
		return c.UserRC
	}
	name := c.User
	if name == "" {
		name = getenv("SUDO_USER")
	}
	if name == "" || name == "root" {
		name = defaultUser
	}
	home, err := lookupHome(name)
	if err != nil || home == "" {
		logger.Debug("[DEBUG] No home directory for %s (%v), assuming /home/%s\n", name, err, name)
		home = filepath.Join("/home", name)
	}
	return filepath.Join(home, ".bashrc")
}

// LookupHome returns the home directory of the named user from the system
// user database.
func LookupHome(name string) (string, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}

func (p *Provisioner) installCamera(ctx context.Context) error {
	cam := p.Config.Camera

	if err := p.FS.MkdirAll(cam.SharedDir, 0o755); err != nil {
		return err
	}
	if err := p.FS.Chmod(cam.SharedDir, cam.SharedDirMode.FileMode()); err != nil {
		return err
	}

	rcFiles := []string{p.UserRC, cam.RootRC}
	if p.UserRC == "" || p.UserRC == cam.RootRC {
		rcFiles = rcFiles[1:]
	}
	for _, rc := range rcFiles {
		if err := p.appendOnce(rc, cam.EnvLine); err != nil {
			return err
		}
	}

	if err := p.FS.MkdirAll(cam.CacheDir, 0o755); err != nil {
		return err
	}
	if err := p.FS.MkdirAll(filepath.Dir(cam.OverrideFile), 0o755); err != nil {
		return err
	}
	if err := p.FS.WriteFile(cam.OverrideFile, []byte(cam.OverrideSetting+"\n"), os.FileMode(0o644)); err != nil {
		return err
	}
	logger.Info("[INFO] Wrote %s\n", cam.OverrideFile)

	if err := p.apt().Install(ctx, cam.Packages...); err != nil {
		return err
	}
	return p.apt().Install(ctx, cam.AppPackages...)
}
