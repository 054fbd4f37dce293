package provision

import (
	"context"
	"path/filepath"

	"rubikpi-setup/internal/installer"
	"rubikpi-setup/internal/logger"
	"rubikpi-setup/internal/textedit"
)

// appendOnce appends line to path unless a line equal to it already exists.
func (p *Provisioner) appendOnce(path, line string) error {
	changed, err := p.FS.EditFile(path, textedit.AppendLine(line))
	if err != nil {
		return err
	}
	if changed {
		logger.Info("[INFO] Added %q to %s\n", line, path)
	} else {
		logger.Info("[INFO] %s already contains %q\n", path, line)
	}
	return nil
}

// addRepository only recognizes the configured line verbatim (modulo
// surrounding whitespace). An equivalent entry written differently, e.g. with
// "[signed-by=...]" options, is not matched and the line is appended again.
func (p *Provisioner) addRepository(ctx context.Context) error {
	repo := p.Config.Repository
	if err := p.appendOnce(repo.SourcesList, repo.Line); err != nil {
		return err
	}
	if repo.HostsEntry != "" {
		if err := p.appendOnce(p.Config.System.HostsFile, repo.HostsEntry); err != nil {
			return err
		}
	}
	if err := p.installKey(ctx); err != nil {
		return err
	}
	return p.apt().Update(ctx)
}

// installKey downloads the signing key and writes it unconditionally.
func (p *Provisioner) installKey(ctx context.Context) error {
	repo := p.Config.Repository
	if p.DryRun {
		logger.Info("[DRY] download %s -> %s\n", repo.KeyURL, repo.KeyPath)
		return nil
	}
	logger.Info("[INFO] Downloading signing key from %s\n", repo.KeyURL)
	armored, err := p.Keys.Fetch(ctx, repo.KeyURL)
	if err != nil {
		return err
	}
	data, err := installer.FormatKey(armored, repo.KeyPath)
	if err != nil {
		return err
	}
	if err := p.FS.MkdirAll(filepath.Dir(repo.KeyPath), 0o755); err != nil {
		return err
	}
	if err := p.FS.WriteFile(repo.KeyPath, data, 0o644); err != nil {
		return err
	}
	logger.Info("[INFO] Installed signing key to %s\n", repo.KeyPath)
	return nil
}
