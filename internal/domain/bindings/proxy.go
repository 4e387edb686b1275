package bindings

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

// Admin-only proxy functions. Any other selector is forwarded to the
// implementation unless the caller is the admin, in which case it reverts.
var (
	ProxyChangeAdmin    = w3.MustNewFunc("changeAdmin(address)", "")
	ProxyAdmin          = w3.MustNewFunc("admin()", "address")
	ProxyImplementation = w3.MustNewFunc("implementation()", "address")
	ProxyUpgradeTo      = w3.MustNewFunc("upgradeTo(address)", "")
)

var addressType, _ = abi.NewType("address", "", nil)

// ProxyConstructorArgs is the ABI of constructor(address implementationContract)
var ProxyConstructorArgs = abi.Arguments{{Name: "implementationContract", Type: addressType}}

func EncodeProxyConstructor(implementation common.Address) ([]byte, error) {
	return ProxyConstructorArgs.Pack(implementation)
}

func EncodeChangeAdmin(newAdmin common.Address) ([]byte, error) {
	return ProxyChangeAdmin.EncodeArgs(newAdmin)
}

// IsAdminSelector reports whether calldata targets one of the proxy's own functions
func IsAdminSelector(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, f := range []*w3.Func{ProxyChangeAdmin, ProxyAdmin, ProxyImplementation, ProxyUpgradeTo} {
		if [4]byte(data[:4]) == f.Selector {
			return true
		}
	}
	return false
}
