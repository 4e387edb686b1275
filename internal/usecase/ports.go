package usecase

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
)

// GasOracle estimates the current gas price
type GasOracle interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// ChainClient is the connection to the target chain, bound to a single signer
type ChainClient interface {
	GasOracle
	// Deployer returns the address of the signing account
	Deployer() common.Address
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonce(ctx context.Context) (uint64, error)
	// Send signs and submits a step without waiting for it to be mined
	Send(ctx context.Context, step domain.TransactionStep, gasPrice *big.Int) (*domain.PendingTransaction, error)
	// WaitMined blocks until the transaction is mined. A zero timeout waits forever.
	WaitMined(ctx context.Context, tx *domain.PendingTransaction, timeout time.Duration) (*domain.TransactionReceipt, error)
	// Call executes a read-only call as the given sender
	Call(ctx context.Context, from, to common.Address, data []byte) ([]byte, error)
}

// ContractArtifacts provides compiled contracts by qualified id
type ContractArtifacts interface {
	Load(ctx context.Context, contractID string) (*domain.Artifact, error)
}

// ConfirmationGate asks the operator a yes/no question. A cancelled prompt
// returns domain.ErrAborted.
type ConfirmationGate interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// GasPriceQuery describes a gas price prompt
type GasPriceQuery struct {
	Label    string
	Default  string
	Validate func(input string) error
}

// GasPricePrompter reads a gas price from the operator. A cancelled prompt
// returns domain.ErrAborted.
type GasPricePrompter interface {
	PromptGasPrice(ctx context.Context, query GasPriceQuery) (string, error)
}

// VerificationCommand is an external verification invocation
type VerificationCommand struct {
	Program string
	Args    []string
	// Env holds extra KEY=VALUE pairs; they are never shown to the operator
	Env []string
	Dir string
}

func (c VerificationCommand) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// VerificationRunner executes a verification command, streaming its output
type VerificationRunner interface {
	Run(ctx context.Context, cmd VerificationCommand) error
}

// DeploymentPreview is shown to the operator before anything is sent
type DeploymentPreview struct {
	Protocol      string
	Network       string
	ChainID       uint64
	Deployer      common.Address
	DeployerNonce uint64
	Fields        []domain.ParameterField
	Missing       []string
}

// DeploymentPresenter displays the preview ahead of the first confirmation
type DeploymentPresenter interface {
	ShowPreview(preview *DeploymentPreview)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// DeploymentResult is returned by a deployment run, complete or not
type DeploymentResult struct {
	Protocol     string
	Network      string
	ChainID      uint64
	Deployer     common.Address
	Session      *domain.DeploymentSession
	Verification []*domain.VerificationOutcome
}
