package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DeploymentRenderer renders the outcome of a deployment run
type DeploymentRenderer struct {
	out io.Writer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{out: out}
}

// Render prints the summary of a completed run followed by its record
func (r *DeploymentRenderer) Render(result *usecase.DeploymentResult) error {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s on %s", result.Protocol, result.Network)))
	fmt.Fprintln(r.out)

	r.renderSession(result.Session)

	if len(result.Verification) > 0 {
		color.New(color.Bold).Fprintln(r.out, "Verification:")
		for _, outcome := range result.Verification {
			fmt.Fprintf(r.out, "  %s %s %s\n",
				verificationIcon(outcome.Status),
				outcome.ContractID,
				color.New(color.Faint).Sprintf("(%s)", outcome.Status),
			)
		}
		fmt.Fprintln(r.out)
	}

	return r.renderRecord(result)
}

// RenderFailure prints how far a failed run got, so the operator can pick
// up from the contracts that already exist
func (r *DeploymentRenderer) RenderFailure(result *usecase.DeploymentResult) error {
	if result == nil || result.Session == nil || result.Session.Stage == domain.StageUnconfirmed {
		return nil
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Deployment stopped after stage: %s", StageLabel(result.Session.Stage))))
	fmt.Fprintln(r.out)

	r.renderSession(result.Session)
	return r.renderRecord(result)
}

func (r *DeploymentRenderer) renderSession(session *domain.DeploymentSession) {
	label := color.New(color.Bold)

	t := newTable()
	t.AppendRow(table.Row{label.Sprint("Stage"), StageLabel(session.Stage)})
	if session.ImplementationAddress != (common.Address{}) {
		t.AppendRow(table.Row{label.Sprint("Implementation"), session.ImplementationAddress.Hex()})
	}
	if session.ProxyAddress != (common.Address{}) {
		t.AppendRow(table.Row{label.Sprint("Proxy"), session.ProxyAddress.Hex()})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	if len(session.Transactions) == 0 {
		return
	}

	color.New(color.Bold).Fprintln(r.out, "Transactions:")
	txs := newTable()
	for _, tx := range session.Transactions {
		txs.AppendRow(table.Row{
			tx.Description,
			tx.Hash,
			color.New(color.Faint).Sprintf("block %d, gas %d", tx.Block, tx.GasUsed),
		})
	}
	fmt.Fprintln(r.out, txs.Render())
	fmt.Fprintln(r.out)
}

func (r *DeploymentRenderer) renderRecord(result *usecase.DeploymentResult) error {
	data, err := yaml.Marshal(NewDeploymentRecord(result))
	if err != nil {
		return fmt.Errorf("failed to encode deployment record: %w", err)
	}

	color.New(color.Bold).Fprintln(r.out, "Deployment record:")
	fmt.Fprint(r.out, string(data))
	return nil
}

// StageLabel returns the display label of a stage
func StageLabel(stage domain.Stage) string {
	return cases.Title(language.English).String(stage.String())
}

func verificationIcon(status domain.VerificationStatus) string {
	switch status {
	case domain.VerificationVerified:
		return color.New(color.FgGreen).Sprint("✓")
	case domain.VerificationSkipped:
		return color.New(color.FgYellow).Sprint("⏭")
	default:
		return color.New(color.FgRed).Sprint("✗")
	}
}

var _ Renderer[*usecase.DeploymentResult] = (*DeploymentRenderer)(nil)
