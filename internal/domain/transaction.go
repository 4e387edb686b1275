package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// StepKind classifies a transaction step
type StepKind string

const (
	StepDeploy      StepKind = "deploy"
	StepCall        StepKind = "call"
	StepAdminChange StepKind = "admin-change"
)

// TransactionStep describes one transaction of the deployment sequence.
// It is built immediately before submission.
type TransactionStep struct {
	Kind        StepKind
	Description string
	// Contract is the qualified id of the contract whose interface is used
	Contract string
	// Target is the called address; zero for deploys
	Target common.Address
	Method string
	// Data is the calldata for calls
	Data []byte
	// Bytecode and ConstructorInput are only set for deploys
	Bytecode         []byte
	ConstructorInput []byte
}

// PendingTransaction is a submitted but not yet mined transaction
type PendingTransaction struct {
	Hash common.Hash
	// ContractAddress is the predicted address for deploys
	ContractAddress common.Address
	Nonce           uint64
	GasPrice        *big.Int
}

// TransactionReceipt is the mined result of a transaction
type TransactionReceipt struct {
	Hash            common.Hash
	ContractAddress common.Address
	BlockNumber     uint64
	GasUsed         uint64
	Success         bool
}

// TransactionRecord is the log entry kept for every mined step
type TransactionRecord struct {
	Description string `yaml:"description"`
	Hash        string `yaml:"hash"`
	Block       uint64 `yaml:"block"`
	GasUsed     uint64 `yaml:"gasUsed"`
}
