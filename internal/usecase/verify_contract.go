package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
)

// VerifyContract submits deployed contracts to the block explorer for source
// verification after the operator approves the exact command.
type VerifyContract struct {
	config *config.RuntimeConfig
	gate   ConfirmationGate
	runner VerificationRunner
	log    *slog.Logger
}

// NewVerifyContract creates a new VerifyContract use case
func NewVerifyContract(
	cfg *config.RuntimeConfig,
	gate ConfirmationGate,
	runner VerificationRunner,
	log *slog.Logger,
) *VerifyContract {
	return &VerifyContract{
		config: cfg,
		gate:   gate,
		runner: runner,
		log:    log,
	}
}

// Verify runs one verification request. Only an operator abort is returned
// as an error; a failed verification is reported in the outcome.
func (uc *VerifyContract) Verify(ctx context.Context, req domain.VerificationRequest) (*domain.VerificationOutcome, error) {
	outcome := &domain.VerificationOutcome{
		ContractID: req.ContractID,
		Address:    req.Address,
	}

	cmd, err := uc.BuildCommand(req)
	if err != nil {
		outcome.Status = domain.VerificationFailed
		outcome.Err = err
		return outcome, nil
	}
	outcome.Command = cmd.String()

	network := "unknown network"
	if uc.config.Network != nil {
		network = uc.config.Network.Name
	}

	ok, err := uc.gate.Confirm(ctx, fmt.Sprintf("Verify %s on %s etherscan with command: %s?", req.ContractID, network, cmd.String()))
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.log.Info("verification skipped", "contract", req.ContractID)
		outcome.Status = domain.VerificationSkipped
		return outcome, nil
	}

	if err := uc.runner.Run(ctx, cmd); err != nil {
		if errors.Is(err, domain.ErrAborted) {
			return nil, err
		}
		uc.log.Warn("verification failed", "contract", req.ContractID, "error", err)
		outcome.Status = domain.VerificationFailed
		outcome.Err = err
		return outcome, nil
	}

	outcome.Status = domain.VerificationVerified
	return outcome, nil
}

// BuildCommand builds the forge verify-contract invocation for a request
func (uc *VerifyContract) BuildCommand(req domain.VerificationRequest) (VerificationCommand, error) {
	args := []string{
		"verify-contract",
		req.Address.Hex(),
		req.ContractID,
	}

	if uc.config.Network != nil {
		args = append(args, "--chain-id", fmt.Sprintf("%d", uc.config.Network.ChainID))
	}
	args = append(args, "--watch")

	if uc.config.Network != nil && uc.config.Network.ExplorerURL != "" {
		args = append(args, "--verifier-url", uc.config.Network.ExplorerURL)
	}

	if len(req.ConstructorArgs) > 0 {
		encoded, err := req.ConstructorABI.Pack(req.ConstructorArgs...)
		if err != nil {
			return VerificationCommand{}, fmt.Errorf("failed to encode constructor arguments: %w", err)
		}
		args = append(args, "--constructor-args", hexutil.Encode(encoded)[2:])
	}

	cmd := VerificationCommand{
		Program: "forge",
		Args:    args,
		Dir:     uc.config.ProjectRoot,
	}
	if uc.config.EtherscanAPIKey != "" {
		cmd.Env = append(cmd.Env, "ETHERSCAN_API_KEY="+uc.config.EtherscanAPIKey)
	}
	return cmd, nil
}
