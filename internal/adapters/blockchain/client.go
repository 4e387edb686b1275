package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// Client implements usecase.ChainClient on top of ethclient with a single
// private key signer
type Client struct {
	client  *ethclient.Client
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
	log     *slog.Logger
}

// NewClient dials the configured network and loads the operator key
func NewClient(ctx context.Context, cfg *config.RuntimeConfig, log *slog.Logger) (*Client, func(), error) {
	if cfg.Network == nil || cfg.Network.RPCURL == "" {
		return nil, nil, fmt.Errorf("no RPC URL configured for network")
	}

	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, nil, err
	}

	client, err := ethclient.DialContext(ctx, cfg.Network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if cfg.Network.ChainID != 0 && chainID.Uint64() != cfg.Network.ChainID {
		client.Close()
		return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", cfg.Network.ChainID, chainID.Uint64())
	}
	cfg.Network.ChainID = chainID.Uint64()

	c := &Client{
		client:  client,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
		log:     log,
	}
	return c, client.Close, nil
}

// ParsePrivateKey parses a hex private key with or without 0x prefix
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, &domain.ConfigurationError{Key: domain.KeyOperatorPrivateKey, Reason: "value is required"}
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: domain.KeyOperatorPrivateKey, Reason: "not a valid secp256k1 private key"}
	}
	return key, nil
}

func (c *Client) Deployer() common.Address {
	return c.from
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.chainID), nil
}

func (c *Client) PendingNonce(ctx context.Context) (uint64, error) {
	return c.client.PendingNonceAt(ctx, c.from)
}

func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.client.SuggestGasPrice(ctx)
}

// Send signs and submits a legacy transaction at the given gas price
func (c *Client) Send(ctx context.Context, step domain.TransactionStep, gasPrice *big.Int) (*domain.PendingTransaction, error) {
	opts := bind.NewKeyedTransactor(c.key, c.chainID)
	opts.Context = ctx
	opts.GasPrice = gasPrice

	var (
		tx   *types.Transaction
		addr common.Address
		err  error
	)
	switch step.Kind {
	case domain.StepDeploy:
		addr, tx, err = bind.DeployContract(opts, step.Bytecode, c.client, step.ConstructorInput)
	case domain.StepCall, domain.StepAdminChange:
		contract := bind.NewBoundContract(step.Target, abi.ABI{}, c.client, c.client, c.client)
		tx, err = contract.RawTransact(opts, step.Data)
	default:
		return nil, fmt.Errorf("unknown step kind %q", step.Kind)
	}
	if err != nil {
		return nil, err
	}

	c.log.Debug("sent transaction",
		"step", step.Description,
		"hash", tx.Hash(),
		"nonce", tx.Nonce(),
		"gas", tx.Gas(),
	)

	return &domain.PendingTransaction{
		Hash:            tx.Hash(),
		ContractAddress: addr,
		Nonce:           tx.Nonce(),
		GasPrice:        tx.GasPrice(),
	}, nil
}

// WaitMined polls for the receipt. A zero timeout waits until ctx is done.
func (c *Client) WaitMined(ctx context.Context, tx *domain.PendingTransaction, timeout time.Duration) (*domain.TransactionReceipt, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	receipt, err := bind.WaitMined(ctx, c.client, tx.Hash)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("no receipt after %s: %w", timeout, err)
		}
		return nil, err
	}

	return &domain.TransactionReceipt{
		Hash:            receipt.TxHash,
		ContractAddress: receipt.ContractAddress,
		BlockNumber:     receipt.BlockNumber.Uint64(),
		GasUsed:         receipt.GasUsed,
		Success:         receipt.Status == types.ReceiptStatusSuccessful,
	}, nil
}

// Call runs eth_call against the latest block
func (c *Client) Call(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	return c.client.CallContract(ctx, ethereum.CallMsg{
		From: from,
		To:   &to,
		Data: data,
	}, nil)
}

var _ usecase.ChainClient = (*Client)(nil)
