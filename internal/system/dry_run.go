package system

import (
	"context"
	"fmt"
	"io"
)

// DryRunRunner prints each command instead of running it.
type DryRunRunner struct {
	Out io.Writer
}

// NewDryRunRunner returns a DryRunRunner printing to out.
func NewDryRunRunner(out io.Writer) *DryRunRunner {
	return &DryRunRunner{Out: out}
}

func (r *DryRunRunner) Run(_ context.Context, c Cmd) error {
	_, err := fmt.Fprintf(r.Out, "[DRY] %s\n", c)
	return err
}
