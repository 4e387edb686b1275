//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/proxy-deployer/internal/adapters"
	"github.com/trebuchet-org/proxy-deployer/internal/cli/render"
	"github.com/trebuchet-org/proxy-deployer/internal/config"
	"github.com/trebuchet-org/proxy-deployer/internal/logging"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(ctx context.Context, v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Renderers
		ProvideOutput,
		render.NewPreviewRenderer,
		wire.Bind(new(usecase.DeploymentPresenter), new(*render.PreviewRenderer)),
		render.NewDeploymentRenderer,

		// Use cases
		usecase.NewGasPricePolicy,
		usecase.NewVerifyContract,
		usecase.NewDeployProxiedToken,

		// App
		NewApp,
	)
	return nil, nil, nil
}
