package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
)

const rpcEnvSuffix = "_NODE_RPC_URL"

// knownChainIDs holds the networks the deployer has always supported
var knownChainIDs = map[string]uint64{
	"mainnet": 1,
	"goerli":  5,
	"sepolia": 11155111,
}

// NetworkResolver resolves network names from foundry.toml [rpc_endpoints]
// and <NETWORK>_NODE_RPC_URL environment variables
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
	environ       func() []string
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(foundryConfig *config.FoundryConfig) *NetworkResolver {
	return &NetworkResolver{
		foundryConfig: foundryConfig,
		environ:       os.Environ,
	}
}

// RPCEnvVar returns the environment variable holding a network's RPC URL
func RPCEnvVar(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + rpcEnvSuffix
}

// Names returns every network with a configured RPC URL, sorted
func (r *NetworkResolver) Names() []string {
	names := lo.Keys(r.foundryConfig.RpcEndpoints)
	for _, kv := range r.environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasSuffix(key, rpcEnvSuffix) {
			continue
		}
		names = append(names, strings.ToLower(strings.TrimSuffix(key, rpcEnvSuffix)))
	}
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration. The chain ID is left
// zero when it is not known ahead of time; the chain client fills it in.
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	rpcURL := r.foundryConfig.RpcEndpoints[networkName]
	if rpcURL == "" {
		rpcURL = r.lookupEnv(RPCEnvVar(networkName))
	}
	if rpcURL == "" {
		return nil, fmt.Errorf("network '%s' has no RPC URL: add it to foundry.toml [rpc_endpoints] or set %s",
			networkName, RPCEnvVar(networkName))
	}

	network := &config.Network{
		Name:    networkName,
		RPCURL:  rpcURL,
		ChainID: knownChainIDs[networkName],
	}
	if etherscan, ok := r.foundryConfig.Etherscan[networkName]; ok {
		network.ExplorerURL = etherscan.URL
		if etherscan.ChainID != 0 {
			network.ChainID = etherscan.ChainID
		}
	}

	return network, nil
}

func (r *NetworkResolver) lookupEnv(key string) string {
	for _, kv := range r.environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}
