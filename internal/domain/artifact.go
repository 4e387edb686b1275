package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract loaded from the build output
type Artifact struct {
	ContractID string
	ABI        abi.ABI
	Bytecode   []byte
}

// SplitContractID splits a qualified "path/File.sol:Name" id into its source
// path and contract name. An id without a colon is treated as a bare name.
func SplitContractID(id string) (path, name string) {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[:i], id[i+1:]
	}
	return "", id
}
