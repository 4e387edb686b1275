package app

import (
	"io"
	"os"

	"github.com/trebuchet-org/proxy-deployer/internal/cli/render"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployProxiedToken *usecase.DeployProxiedToken

	// Renderers
	DeploymentRenderer *render.DeploymentRenderer
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployProxiedToken *usecase.DeployProxiedToken,
	deploymentRenderer *render.DeploymentRenderer,
) (*App, error) {
	return &App{
		Config:             cfg,
		DeployProxiedToken: deployProxiedToken,
		DeploymentRenderer: deploymentRenderer,
	}, nil
}

// ProvideOutput provides the operator-facing output stream
func ProvideOutput() io.Writer {
	return os.Stdout
}
