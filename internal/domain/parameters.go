package domain

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Configuration keys for deployment parameters. They double as the
// environment variable names the operator sets.
const (
	KeyTokenName     = "TOKEN_NAME"
	KeyTokenSymbol   = "TOKEN_SYMBOL"
	KeyTokenCurrency = "TOKEN_CURRENCY"
	KeyTokenDecimals = "TOKEN_DECIMALS"
	KeyProxyAdmin    = "PROXY_ADMIN_ADDRESS"
	KeyOwner         = "OWNER_ADDRESS"
	KeyMasterMinter  = "MASTERMINTER_ADDRESS"
	KeyPauser        = "PAUSER_ADDRESS"
	KeyBlacklister   = "BLACKLISTER_ADDRESS"
)

// Configuration keys for the run itself
const (
	KeyNetwork            = "NETWORK"
	KeyOperatorPrivateKey = "OPERATOR_PRIVATE_KEY"
)

// ThrowawayAddress is the placeholder written into every role of the
// implementation contract when it is poisoned.
var ThrowawayAddress = common.HexToAddress("0x0000000000000000000000000000000000000001")

// DeploymentParameters holds the operator supplied values exactly as configured.
// It is built once per run and never mutated.
type DeploymentParameters struct {
	TokenName     string
	TokenSymbol   string
	TokenCurrency string
	TokenDecimals string
	ProxyAdmin    string
	Owner         string
	MasterMinter  string
	Pauser        string
	Blacklister   string
}

// ParameterField is a single labelled parameter for display
type ParameterField struct {
	Label string
	Key   string
	Value string
}

// Fields returns the parameters in display order
func (p DeploymentParameters) Fields() []ParameterField {
	return []ParameterField{
		{Label: "Token Name", Key: KeyTokenName, Value: p.TokenName},
		{Label: "Token Symbol", Key: KeyTokenSymbol, Value: p.TokenSymbol},
		{Label: "Token Currency", Key: KeyTokenCurrency, Value: p.TokenCurrency},
		{Label: "Token Decimals", Key: KeyTokenDecimals, Value: p.TokenDecimals},
		{Label: "Proxy Admin", Key: KeyProxyAdmin, Value: p.ProxyAdmin},
		{Label: "Owner", Key: KeyOwner, Value: p.Owner},
		{Label: "Master Minter", Key: KeyMasterMinter, Value: p.MasterMinter},
		{Label: "Pauser", Key: KeyPauser, Value: p.Pauser},
		{Label: "Blacklister", Key: KeyBlacklister, Value: p.Blacklister},
	}
}

// Missing returns the keys of all blank parameters
func (p DeploymentParameters) Missing() []string {
	var missing []string
	for _, f := range p.Fields() {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// ResolvedParameters is the typed form of DeploymentParameters used to build calldata
type ResolvedParameters struct {
	TokenName     string
	TokenSymbol   string
	TokenCurrency string
	TokenDecimals uint8
	ProxyAdmin    common.Address
	Owner         common.Address
	MasterMinter  common.Address
	Pauser        common.Address
	Blacklister   common.Address
}

// Resolve parses and validates the parameters.
func (p DeploymentParameters) Resolve() (*ResolvedParameters, error) {
	for _, f := range p.Fields() {
		if strings.TrimSpace(f.Value) == "" {
			return nil, &ConfigurationError{Key: f.Key, Reason: "value is required"}
		}
	}

	decimals, err := strconv.ParseUint(strings.TrimSpace(p.TokenDecimals), 10, 8)
	if err != nil {
		return nil, &ConfigurationError{Key: KeyTokenDecimals, Value: p.TokenDecimals, Reason: "must be an integer between 0 and 255"}
	}

	r := &ResolvedParameters{
		TokenName:     p.TokenName,
		TokenSymbol:   p.TokenSymbol,
		TokenCurrency: p.TokenCurrency,
		TokenDecimals: uint8(decimals),
	}

	addrs := []struct {
		key   string
		value string
		dst   *common.Address
	}{
		{KeyProxyAdmin, p.ProxyAdmin, &r.ProxyAdmin},
		{KeyOwner, p.Owner, &r.Owner},
		{KeyMasterMinter, p.MasterMinter, &r.MasterMinter},
		{KeyPauser, p.Pauser, &r.Pauser},
		{KeyBlacklister, p.Blacklister, &r.Blacklister},
	}
	for _, a := range addrs {
		addr, err := ParseAddress(a.value)
		if err != nil {
			return nil, &ConfigurationError{Key: a.key, Value: a.value, Reason: err.Error()}
		}
		*a.dst = addr
	}

	for _, role := range r.Roles() {
		if role == r.ProxyAdmin {
			return nil, ErrAdminRoleOverlap
		}
	}

	return r, nil
}

// Roles returns the token role addresses (everything except the proxy admin)
func (r *ResolvedParameters) Roles() []common.Address {
	return []common.Address{r.Owner, r.MasterMinter, r.Pauser, r.Blacklister}
}

// ParseAddress parses a hex address, rejecting malformed and zero addresses
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, ErrInvalidAddress
	}
	return addr, nil
}
