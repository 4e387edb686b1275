package domain

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// VerificationRequest asks the block explorer to verify one deployed contract
type VerificationRequest struct {
	// ContractID is the qualified "path/File.sol:Name" identifier
	ContractID      string
	Address         common.Address
	ConstructorArgs []any
	ConstructorABI  abi.Arguments
}

// VerificationStatus is the result of a verification attempt
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationSkipped  VerificationStatus = "skipped"
	VerificationFailed   VerificationStatus = "failed"
)

// VerificationOutcome reports what happened to a VerificationRequest
type VerificationOutcome struct {
	ContractID string
	Address    common.Address
	Status     VerificationStatus
	Command    string
	Err        error
}
