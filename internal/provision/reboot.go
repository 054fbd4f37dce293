package provision

import (
	"context"
	"math"

	"rubikpi-setup/internal/logger"
	"rubikpi-setup/internal/system"
)

// reboot either restarts the machine after the configured delay or tells the
// user a manual reboot may be needed.
func (p *Provisioner) reboot(ctx context.Context) error {
	if !p.Intent.Reboot {
		logger.Info("[INFO] Reboot skipped.\n")
		logger.Warn("[WARN] Some changes may require a manual reboot to take effect.\n")
		return nil
	}
	rb := p.Config.Reboot
	logger.Warn("[WARN] System will reboot in %d seconds... (Ctrl+C to cancel)\n", int(math.Round(rb.Delay.Seconds())))
	if !p.DryRun {
		if err := p.Sleep(ctx, rb.Delay); err != nil {
			return err
		}
	}
	return p.Runner.Run(ctx, system.Command(rb.Command[0], rb.Command[1:]...))
}
