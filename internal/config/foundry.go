package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
)

// foundryTOML represents the raw foundry.toml structure
type foundryTOML struct {
	RpcEndpoints map[string]string         `toml:"rpc_endpoints"`
	Etherscan    map[string]map[string]any `toml:"etherscan"`
	Profile      map[string]struct {
		Out string `toml:"out"`
	} `toml:"profile"`
}

// LoadEnvFiles loads .env files from the project root. Variables already
// present in the environment win.
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadFoundryConfig loads and parses foundry.toml. A missing file yields an
// empty configuration.
func LoadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	cfg := &config.FoundryConfig{
		RpcEndpoints: make(map[string]string),
		Etherscan:    make(map[string]config.EtherscanConfig),
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return cfg, nil
	}

	var raw foundryTOML
	if _, err := toml.DecodeFile(foundryPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, url := range raw.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}

	for network, values := range raw.Etherscan {
		ec := config.EtherscanConfig{}
		if url, ok := values["url"].(string); ok {
			ec.URL = os.ExpandEnv(url)
		}
		if key, ok := values["key"].(string); ok {
			ec.Key = os.ExpandEnv(key)
		}
		// chain may be written as a number or a string
		switch chain := values["chain"].(type) {
		case int64:
			ec.ChainID = uint64(chain)
		case string:
			if id, err := strconv.ParseUint(chain, 10, 64); err == nil {
				ec.ChainID = id
			}
		}
		cfg.Etherscan[network] = ec
	}

	if profile, ok := raw.Profile["default"]; ok {
		cfg.Out = profile.Out
	}

	return cfg, nil
}
