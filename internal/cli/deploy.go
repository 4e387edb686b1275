package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/proxy-deployer/internal/cli/render"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// NewDeployV1Cmd creates the deploy-v1 command
func NewDeployV1Cmd() *cobra.Command {
	return newDeployCmd(
		"deploy-v1",
		"Deploy FiatTokenV1 behind a FiatTokenProxy",
		usecase.FiatTokenV1Protocol,
	)
}

// NewDeployV2Cmd creates the deploy-v2 command
func NewDeployV2Cmd() *cobra.Command {
	return newDeployCmd(
		"deploy-v2",
		"Deploy FiatTokenV2_1 behind a FiatTokenProxy",
		usecase.FiatTokenV2_1Protocol,
	)
}

func newDeployCmd(use, short string, protocol usecase.Protocol) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long: fmt.Sprintf(`%s.

The token is configured from the environment (or .env in the project root):
  TOKEN_NAME, TOKEN_SYMBOL, TOKEN_CURRENCY, TOKEN_DECIMALS,
  PROXY_ADMIN_ADDRESS, OWNER_ADDRESS, MASTERMINTER_ADDRESS,
  PAUSER_ADDRESS, BLACKLISTER_ADDRESS

The proxy admin must differ from the deployer and from every token role.`, short),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(cmd)

			result, err := app.DeployProxiedToken.Run(cmd.Context(), protocol, app.Config.Parameters)
			return reportRun(app.DeploymentRenderer, result, err)
		},
	}
}

// reportRun renders the outcome of a run. A stopped run, aborted ones
// included, still prints whatever already landed on chain.
func reportRun(renderer *render.DeploymentRenderer, result *usecase.DeploymentResult, err error) error {
	if err != nil {
		if renderErr := renderer.RenderFailure(result); renderErr != nil {
			return errors.Join(err, renderErr)
		}
		return err
	}
	return renderer.Render(result)
}
