package config

// FoundryConfig holds the parts of foundry.toml the deployer reads
type FoundryConfig struct {
	RpcEndpoints map[string]string          `toml:"rpc_endpoints"`
	Etherscan    map[string]EtherscanConfig `toml:"etherscan,omitempty"`
	// Out is the default profile's build output directory
	Out string `toml:"-"`
}

// EtherscanConfig represents Etherscan configuration for a network
// This matches Foundry's expected structure
type EtherscanConfig struct {
	Key     string `toml:"key,omitempty"` // API key for verification
	URL     string `toml:"url,omitempty"` // API URL (for custom explorers)
	ChainID uint64 `toml:"chain,omitempty"`
}
