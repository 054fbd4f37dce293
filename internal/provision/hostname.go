package provision

import (
	"context"
	"regexp"

	"rubikpi-setup/internal/logger"
	"rubikpi-setup/internal/system"
	"rubikpi-setup/internal/textedit"
)

// loopbackPattern matches a hosts line mapping addr, with or without aliases.
func loopbackPattern(addr string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(addr) + `(\s.*)?$`)
}

func (p *Provisioner) setHostname(ctx context.Context) error {
	name := p.Intent.Hostname
	if name == "" {
		logger.Info("[INFO] Empty hostname given, leaving hostname unchanged\n")
		return nil
	}
	logger.Info("[INFO] Setting hostname to %s\n", name)
	if err := p.Runner.Run(ctx, system.Command("hostnamectl", "set-hostname", name)); err != nil {
		return err
	}

	sys := p.Config.System
	editor := textedit.ReplacePattern(loopbackPattern(sys.LoopbackAddress), sys.LoopbackAddress+" "+name)
	if _, err := p.FS.EditFile(sys.HostsFile, editor); err != nil {
		return err
	}
	if editor.Matches() == 0 {
		logger.Warn("[WARN] No %s line in %s, hosts file left unchanged\n", sys.LoopbackAddress, sys.HostsFile)
	}
	return nil
}
