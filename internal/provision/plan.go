package provision

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

func (p *Provisioner) printPlan() {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetOutputMirror(p.Out)
	tw.AppendHeader(table.Row{"#", "Action", "Status"})
	n := 0
	for _, a := range Sequence {
		var idx any = ""
		status := "skip"
		if a.Enabled(p.Intent) {
			n++
			idx, status = n, "run"
		}
		tw.AppendRow(table.Row{idx, a.Start, status})
	}
	tw.AppendSeparator()
	reboot := "reboot"
	if !p.Intent.Reboot {
		reboot = "skip"
	}
	tw.AppendRow(table.Row{"", "Reboot", reboot})
	tw.Render()
}
