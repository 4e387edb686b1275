package usecase

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/bindings"
)

const (
	FiatTokenV1ContractID    = "centre-tokens/contracts/v1/FiatTokenV1.sol:FiatTokenV1"
	FiatTokenV2_1ContractID  = "centre-tokens/contracts/v2/FiatTokenV2_1.sol:FiatTokenV2_1"
	FiatTokenProxyContractID = "centre-tokens/contracts/v1/FiatTokenProxy.sol:FiatTokenProxy"
)

// Initializer is one versioned initialization function of an implementation.
// Placeholder builds the calldata that poisons the bare implementation and
// Encode builds the real calldata sent through the proxy.
type Initializer struct {
	Version     string
	Method      string
	Placeholder func() ([]byte, error)
	Encode      func(p *domain.ResolvedParameters, deployer common.Address) ([]byte, error)
}

// Protocol is a deployable implementation/proxy pair with its ordered initializers
type Protocol struct {
	Name           string
	Implementation string
	Proxy          string
	Initializers   []Initializer
}

// Versions returns the initializer versions in execution order
func (p Protocol) Versions() []string {
	versions := make([]string, len(p.Initializers))
	for i, init := range p.Initializers {
		versions[i] = init.Version
	}
	return versions
}

var initializerV1 = Initializer{
	Version: "v1",
	Method:  "initialize",
	Placeholder: func() ([]byte, error) {
		return bindings.EncodeInitialize(bindings.InitializeArgs{
			MasterMinter: domain.ThrowawayAddress,
			Pauser:       domain.ThrowawayAddress,
			Blacklister:  domain.ThrowawayAddress,
			Owner:        domain.ThrowawayAddress,
		})
	},
	Encode: func(p *domain.ResolvedParameters, _ common.Address) ([]byte, error) {
		return bindings.EncodeInitialize(bindings.InitializeArgs{
			Name:         p.TokenName,
			Symbol:       p.TokenSymbol,
			Currency:     p.TokenCurrency,
			Decimals:     p.TokenDecimals,
			MasterMinter: p.MasterMinter,
			Pauser:       p.Pauser,
			Blacklister:  p.Blacklister,
			Owner:        p.Owner,
		})
	},
}

// FiatTokenV1Protocol deploys FiatTokenV1 behind FiatTokenProxy
var FiatTokenV1Protocol = Protocol{
	Name:           "FiatTokenV1",
	Implementation: FiatTokenV1ContractID,
	Proxy:          FiatTokenProxyContractID,
	Initializers:   []Initializer{initializerV1},
}

// FiatTokenV2_1Protocol deploys FiatTokenV2_1 behind FiatTokenProxy. Its
// initializers must run v1, v2, v2_1 on both the implementation and the proxy.
var FiatTokenV2_1Protocol = Protocol{
	Name:           "FiatTokenV2_1",
	Implementation: FiatTokenV2_1ContractID,
	Proxy:          FiatTokenProxyContractID,
	Initializers: []Initializer{
		initializerV1,
		{
			Version: "v2",
			Method:  "initializeV2",
			Placeholder: func() ([]byte, error) {
				return bindings.EncodeInitializeV2("")
			},
			Encode: func(p *domain.ResolvedParameters, _ common.Address) ([]byte, error) {
				return bindings.EncodeInitializeV2(p.TokenName)
			},
		},
		{
			Version: "v2_1",
			Method:  "initializeV2_1",
			Placeholder: func() ([]byte, error) {
				return bindings.EncodeInitializeV2_1(domain.ThrowawayAddress)
			},
			// tokens locked in the contract are released to the deployer
			Encode: func(_ *domain.ResolvedParameters, deployer common.Address) ([]byte, error) {
				return bindings.EncodeInitializeV2_1(deployer)
			},
		},
	},
}
