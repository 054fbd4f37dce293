package provision

import "context"

func (p *Provisioner) installSoftware(ctx context.Context) error {
	return p.apt().Install(ctx, p.Config.Software.Packages...)
}

func (p *Provisioner) upgrade(ctx context.Context) error {
	return p.apt().Upgrade(ctx)
}
