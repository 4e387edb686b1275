package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// PreviewRenderer shows the deployment preview ahead of the first confirmation
type PreviewRenderer struct {
	out io.Writer
}

// NewPreviewRenderer creates a new preview renderer
func NewPreviewRenderer(out io.Writer) *PreviewRenderer {
	return &PreviewRenderer{out: out}
}

// ShowPreview prints the network, the deployer and every parameter. Blank
// parameters are printed in red.
func (r *PreviewRenderer) ShowPreview(preview *usecase.DeploymentPreview) {
	missing := make(map[string]bool, len(preview.Missing))
	for _, key := range preview.Missing {
		missing[key] = true
	}

	label := color.New(color.Bold)
	faint := color.New(color.Faint)
	red := color.New(color.FgRed, color.Bold)

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deploying %s\n\n", preview.Protocol)

	t := newTable()
	t.AppendRow(table.Row{label.Sprint("Network"), fmt.Sprintf("%s %s", preview.Network, faint.Sprintf("(chain %d)", preview.ChainID))})
	t.AppendRow(table.Row{label.Sprint("Deployer"), preview.Deployer.Hex()})
	t.AppendRow(table.Row{label.Sprint("Deployer Nonce"), preview.DeployerNonce})
	for _, field := range preview.Fields {
		value := field.Value
		if missing[field.Key] {
			value = red.Sprintf("<%s not set>", field.Key)
		}
		t.AppendRow(table.Row{label.Sprint(field.Label), value})
	}
	fmt.Fprintln(r.out, t.Render())

	if len(preview.Missing) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d parameter(s) missing", len(preview.Missing))))
	}
	fmt.Fprintln(r.out)
}

var _ usecase.DeploymentPresenter = (*PreviewRenderer)(nil)
