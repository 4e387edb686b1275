package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/proxy-deployer/internal/adapters/interactive"
	"github.com/trebuchet-org/proxy-deployer/internal/app"
	"github.com/trebuchet-org/proxy-deployer/internal/config"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// cleanupKey is the context key for the app's cleanup function
	cleanupKey contextKey = "cleanup"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proxydeploy",
		Short: "Deploy FiatToken contracts behind an upgradeable proxy",
		Long: `proxydeploy deploys a FiatToken implementation and its FiatTokenProxy,
locks the bare implementation with placeholder values, hands the proxy over
to the proxy admin and initializes the token through the proxy.

Every transaction is confirmed and priced interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot := os.Getenv("PROJECT_ROOT")
			if projectRoot == "" {
				var err error
				projectRoot, err = config.FindProjectRoot()
				if err != nil {
					return err
				}
			}

			v := config.SetupViper(projectRoot, cmd)

			if v.GetString("network") == "" {
				if err := selectNetwork(v, projectRoot); err != nil {
					return err
				}
			}

			// Initialize app with DI
			appInstance, cleanup, err := app.InitApp(cmd.Context(), v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, cleanupKey, cleanup)
			cmd.SetContext(ctx)

			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (e.g., mainnet, sepolia); overrides NETWORK")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})

	deployV1Cmd := NewDeployV1Cmd()
	deployV1Cmd.GroupID = "deployment"
	rootCmd.AddCommand(deployV1Cmd)

	deployV2Cmd := NewDeployV2Cmd()
	deployV2Cmd.GroupID = "deployment"
	rootCmd.AddCommand(deployV2Cmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// selectNetwork asks the operator to pick one of the configured networks
func selectNetwork(v *viper.Viper, projectRoot string) error {
	names, err := configuredNetworks(projectRoot)
	if err != nil {
		return err
	}

	selected, err := interactive.NewNetworkSelector().SelectNetwork(names)
	if err != nil {
		return err
	}
	v.Set("network", selected)
	return nil
}

// configuredNetworks lists every network with an RPC URL
func configuredNetworks(projectRoot string) ([]string, error) {
	foundryConfig, err := config.LoadFoundryConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	names := config.NewNetworkResolver(foundryConfig).Names()
	if len(names) == 0 {
		return nil, &domain.ConfigurationError{
			Key:    domain.KeyNetwork,
			Reason: "not set and no network has an RPC URL in foundry.toml or <NETWORK>_NODE_RPC_URL",
		}
	}
	return names, nil
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// closeApp releases the app's resources
func closeApp(cmd *cobra.Command) {
	if cleanup, ok := cmd.Context().Value(cleanupKey).(func()); ok && cleanup != nil {
		cleanup()
	}
}
