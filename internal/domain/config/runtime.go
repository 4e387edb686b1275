package config

import (
	"time"

	"github.com/trebuchet-org/proxy-deployer/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	ProjectRoot  string
	ArtifactsDir string

	Network *Network

	// Signer and explorer credentials
	PrivateKey      string
	EtherscanAPIKey string

	// TxWaitTimeout bounds each receipt wait; zero waits forever
	TxWaitTimeout time.Duration

	// LogLevel of the diagnostic logger (debug, info, warn, error)
	LogLevel string

	Parameters domain.DeploymentParameters

	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId" yaml:"chainId"`
	Name        string `json:"name" yaml:"name"`
	RPCURL      string `json:"rpcUrl" yaml:"-"`
	ExplorerURL string `json:"explorerUrl,omitempty" yaml:"explorerUrl,omitempty"`
}
