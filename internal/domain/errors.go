package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrAborted is returned when the operator declines or cancels a prompt.
	// It is a successful termination, not a failure.
	ErrAborted = errors.New("aborted by operator")

	// ErrInvalidTransition is returned when a session is asked to move backwards
	// or skip a stage
	ErrInvalidTransition = errors.New("invalid stage transition")

	// ErrAdminRoleOverlap is returned when the proxy admin is also one of the token roles
	ErrAdminRoleOverlap = errors.New("proxy admin must differ from every token role address")

	// ErrAdminIsDeployer is returned when the proxy admin is the deploying account
	ErrAdminIsDeployer = errors.New("proxy admin must differ from the deployer address")

	// ErrArtifactNotFound is returned when a compiled contract artifact is missing
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrSelectorClash is returned when an initializer would be answered by
	// the proxy itself instead of being forwarded to the implementation
	ErrSelectorClash = errors.New("initializer selector clashes with a proxy admin function")
)

// ConfigurationError reports a missing or malformed deployment parameter.
type ConfigurationError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("%s=%q: %s", e.Key, e.Value, e.Reason)
}

// TransactionFailedError is returned when a submitted transaction errors or
// its receipt reports a revert.
type TransactionFailedError struct {
	Step   string
	Hash   common.Hash
	Reason string
	Err    error
}

func (e *TransactionFailedError) Error() string {
	msg := fmt.Sprintf("transaction %q failed", e.Step)
	if e.Hash != (common.Hash{}) {
		msg += fmt.Sprintf(" (tx %s)", e.Hash.Hex())
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransactionFailedError) Unwrap() error {
	return e.Err
}

// StateMismatchError is returned when on-chain state read back after a step
// does not match what the step should have produced.
type StateMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *StateMismatchError) Error() string {
	return fmt.Sprintf("on-chain %s mismatch: expected %s, got %s", e.Field, e.Expected, e.Actual)
}
