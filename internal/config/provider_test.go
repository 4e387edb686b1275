package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFoundryToml = `
[profile.default]
src = "centre-tokens/contracts"
out = "build"

[rpc_endpoints]
sepolia = "${TEST_SEPOLIA_RPC}"
local = "http://127.0.0.1:8545"

[etherscan]
sepolia = { key = "${TEST_ETHERSCAN_KEY}", url = "https://api-sepolia.etherscan.io/api" }
local = { key = "none", url = "http://127.0.0.1:4000/api", chain = 31337 }
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestProvider(t *testing.T) {
	dir := writeProject(t, map[string]string{"foundry.toml": testFoundryToml})

	t.Setenv("TEST_SEPOLIA_RPC", "https://sepolia.example.org")
	t.Setenv("TEST_ETHERSCAN_KEY", "from-foundry")
	t.Setenv("ETHERSCAN_API_KEY", "")
	t.Setenv("NETWORK", "sepolia")
	t.Setenv("OPERATOR_PRIVATE_KEY", "0xabc")
	t.Setenv("TOKEN_NAME", "Example USD")
	t.Setenv("TOKEN_SYMBOL", "EUSD")
	t.Setenv("TOKEN_CURRENCY", "USD")
	t.Setenv("TOKEN_DECIMALS", "6")
	t.Setenv("PROXY_ADMIN_ADDRESS", "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	t.Setenv("OWNER_ADDRESS", "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
	t.Setenv("TX_WAIT_TIMEOUT", "10m")
	t.Setenv("PROXYDEPLOY_LOG_LEVEL", "debug")

	v := SetupViper(dir, &cobra.Command{})
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, "build", cfg.ArtifactsDir)
	assert.Equal(t, "0xabc", cfg.PrivateKey)
	assert.Equal(t, 10*time.Minute, cfg.TxWaitTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)

	require.NotNil(t, cfg.Network)
	assert.Equal(t, "sepolia", cfg.Network.Name)
	assert.Equal(t, "https://sepolia.example.org", cfg.Network.RPCURL)
	assert.Equal(t, uint64(11155111), cfg.Network.ChainID)
	assert.Equal(t, "https://api-sepolia.etherscan.io/api", cfg.Network.ExplorerURL)
	assert.Equal(t, "from-foundry", cfg.EtherscanAPIKey)

	assert.Equal(t, "Example USD", cfg.Parameters.TokenName)
	assert.Equal(t, "6", cfg.Parameters.TokenDecimals)
	assert.Equal(t, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", cfg.Parameters.ProxyAdmin)
}

func TestProvider_NetworkFlagOverridesEnv(t *testing.T) {
	dir := writeProject(t, map[string]string{"foundry.toml": testFoundryToml})
	t.Setenv("NETWORK", "sepolia")

	cmd := &cobra.Command{}
	cmd.Flags().String("network", "", "")
	require.NoError(t, cmd.Flags().Set("network", "local"))

	cfg, err := Provider(SetupViper(dir, cmd))
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Network.Name)
	assert.Equal(t, uint64(31337), cfg.Network.ChainID)
}

func TestProvider_UnknownNetwork(t *testing.T) {
	dir := writeProject(t, map[string]string{"foundry.toml": testFoundryToml})
	t.Setenv("NETWORK", "holesky")

	_, err := Provider(SetupViper(dir, &cobra.Command{}))
	assert.ErrorContains(t, err, "HOLESKY_NODE_RPC_URL")
}

func TestLoadEnvFiles_DoesNotOverride(t *testing.T) {
	const key = "PROXYDEPLOY_TEST_ENV_FILE"
	if _, ok := os.LookupEnv(key); ok {
		t.Skipf("%s already set", key)
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })
	t.Setenv("PROXYDEPLOY_TEST_PRESET", "from-env")

	dir := writeProject(t, map[string]string{
		".env": key + "=from-file\nPROXYDEPLOY_TEST_PRESET=from-file\n",
	})
	LoadEnvFiles(dir)

	assert.Equal(t, "from-file", os.Getenv(key))
	assert.Equal(t, "from-env", os.Getenv("PROXYDEPLOY_TEST_PRESET"))
}

func TestLoadFoundryConfig_Missing(t *testing.T) {
	cfg, err := LoadFoundryConfig(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.RpcEndpoints)
	assert.Empty(t, cfg.Out)
}
