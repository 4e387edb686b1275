package domain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleParameters() DeploymentParameters {
	return DeploymentParameters{
		TokenName:     "Example USD",
		TokenSymbol:   "EUSD",
		TokenCurrency: "USD",
		TokenDecimals: "6",
		ProxyAdmin:    "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		Owner:         "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB",
		MasterMinter:  "0x1111111111111111111111111111111111111111",
		Pauser:        "0x2222222222222222222222222222222222222222",
		Blacklister:   "0x3333333333333333333333333333333333333333",
	}
}

func TestDeploymentParameters_Resolve(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		r, err := exampleParameters().Resolve()
		require.NoError(t, err)
		assert.Equal(t, uint8(6), r.TokenDecimals)
		assert.Equal(t, common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"), r.ProxyAdmin)
		assert.Equal(t, common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"), r.Owner)
	})

	tests := []struct {
		name   string
		mutate func(p *DeploymentParameters)
		key    string
	}{
		{"missing name", func(p *DeploymentParameters) { p.TokenName = "" }, KeyTokenName},
		{"decimals not a number", func(p *DeploymentParameters) { p.TokenDecimals = "six" }, KeyTokenDecimals},
		{"decimals overflow", func(p *DeploymentParameters) { p.TokenDecimals = "256" }, KeyTokenDecimals},
		{"malformed owner", func(p *DeploymentParameters) { p.Owner = "0x1234" }, KeyOwner},
		{"zero pauser", func(p *DeploymentParameters) { p.Pauser = "0x0000000000000000000000000000000000000000" }, KeyPauser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := exampleParameters()
			tt.mutate(&p)
			_, err := p.Resolve()
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.key, cfgErr.Key)
		})
	}

	t.Run("admin overlapping owner", func(t *testing.T) {
		p := exampleParameters()
		p.Owner = p.ProxyAdmin
		_, err := p.Resolve()
		assert.ErrorIs(t, err, ErrAdminRoleOverlap)
	})
}

func TestDeploymentParameters_Missing(t *testing.T) {
	p := exampleParameters()
	assert.Empty(t, p.Missing())

	p.TokenSymbol = " "
	p.Blacklister = ""
	assert.Equal(t, []string{KeyTokenSymbol, KeyBlacklister}, p.Missing())
}

func TestSplitContractID(t *testing.T) {
	path, name := SplitContractID("centre-tokens/contracts/v1/FiatTokenProxy.sol:FiatTokenProxy")
	assert.Equal(t, "centre-tokens/contracts/v1/FiatTokenProxy.sol", path)
	assert.Equal(t, "FiatTokenProxy", name)

	path, name = SplitContractID("FiatTokenV1")
	assert.Empty(t, path)
	assert.Equal(t, "FiatTokenV1", name)
}
