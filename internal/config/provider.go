package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	foundryConfig, err := LoadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:     projectRoot,
		ArtifactsDir:    v.GetString("artifacts_dir"),
		PrivateKey:      v.GetString("operator_private_key"),
		EtherscanAPIKey: v.GetString("etherscan_api_key"),
		TxWaitTimeout:   v.GetDuration("tx_wait_timeout"),
		LogLevel:        v.GetString("proxydeploy_log_level"),
		Parameters:      parametersFrom(v),
		FoundryConfig:   foundryConfig,
	}
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = foundryConfig.Out
	}

	if networkName := v.GetString("network"); networkName != "" {
		network, err := NewNetworkResolver(foundryConfig).Resolve(networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network

		if cfg.EtherscanAPIKey == "" {
			cfg.EtherscanAPIKey = foundryConfig.Etherscan[networkName].Key
		}
	}

	return cfg, nil
}

func parametersFrom(v *viper.Viper) domain.DeploymentParameters {
	get := func(key string) string {
		return v.GetString(strings.ToLower(key))
	}
	return domain.DeploymentParameters{
		TokenName:     get(domain.KeyTokenName),
		TokenSymbol:   get(domain.KeyTokenSymbol),
		TokenCurrency: get(domain.KeyTokenCurrency),
		TokenDecimals: get(domain.KeyTokenDecimals),
		ProxyAdmin:    get(domain.KeyProxyAdmin),
		Owner:         get(domain.KeyOwner),
		MasterMinter:  get(domain.KeyMasterMinter),
		Pauser:        get(domain.KeyPauser),
		Blacklister:   get(domain.KeyBlacklister),
	}
}

// FindProjectRoot walks up from the current directory to find foundry.toml,
// falling back to the current directory
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "foundry.toml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper loads .env files and creates a viper instance reading the
// operator's environment and the command's flags
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	LoadEnvFiles(projectRoot)

	v := viper.New()

	// Environment variables are read by their plain upper-case names
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("project_root", projectRoot)
	v.SetDefault("tx_wait_timeout", "0s")
	v.SetDefault("proxydeploy_log_level", "warn")

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		if err != nil {
			panic(err)
		}
	})

	return v
}
