package installer

import (
	"context"

	"rubikpi-setup/internal/logger"
	"rubikpi-setup/internal/system"
)

// Apt drives the apt package manager through a system.Runner.
type Apt struct {
	Runner system.Runner
}

func (a Apt) run(ctx context.Context, args ...string) error {
	c := system.Command("apt", args...).WithEnv("DEBIAN_FRONTEND", "noninteractive")
	logger.Debug("[DEBUG] apt: %s\n", c)
	return a.Runner.Run(ctx, c)
}

// Update refreshes the package index.
func (a Apt) Update(ctx context.Context) error {
	logger.Info("[INFO] Refreshing package index...\n")
	return a.run(ctx, "update")
}

// Install installs packages in a single apt invocation. apt itself treats
// already installed packages as a no-op.
func (a Apt) Install(ctx context.Context, packages ...string) error {
	logger.Info("[INFO] Installing %d packages...\n", len(packages))
	return a.run(ctx, append([]string{"install", "-y"}, packages...)...)
}

// Upgrade upgrades every installed package.
func (a Apt) Upgrade(ctx context.Context) error {
	logger.Info("[INFO] Upgrading installed packages...\n")
	return a.run(ctx, "upgrade", "-y")
}
