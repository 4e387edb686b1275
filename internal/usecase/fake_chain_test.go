package usecase

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/bindings"
)

var errRevert = errors.New("execution reverted")

// fakeToken is the storage of a FiatToken, either the bare implementation or
// the proxy's own storage.
type fakeToken struct {
	initialized  bool
	version      int
	name         string
	symbol       string
	currency     string
	decimals     uint8
	masterMinter common.Address
	pauser       common.Address
	blacklister  common.Address
	owner        common.Address
	lostAndFound common.Address
}

type fakeProxy struct {
	admin          common.Address
	implementation common.Address
}

// fakeChain is an in-memory chain that executes each transaction as soon as
// it is sent. It models the proxy dispatch rule and the initializer guards.
type fakeChain struct {
	deployer common.Address
	chainID  *big.Int
	gasPrice *big.Int
	nonce    uint64

	tokens  map[common.Address]*fakeToken
	proxies map[common.Address]*fakeProxy

	sent      []domain.TransactionStep
	gasPrices []*big.Int
	receipts  map[common.Hash]*domain.TransactionReceipt

	// revertStep makes the named step revert
	revertStep string
	// sendErr is returned by Send for the named step
	sendErrStep string
	// tamper runs after the named step has executed successfully
	tamper map[string]func(target common.Address)
	// reportedAdmin, when set, is what admin() answers instead of the real admin
	reportedAdmin common.Address
}

func newFakeChain(deployer common.Address) *fakeChain {
	return &fakeChain{
		deployer: deployer,
		chainID:  big.NewInt(5),
		gasPrice: big.NewInt(20_000_000_000),
		tokens:   make(map[common.Address]*fakeToken),
		proxies:  make(map[common.Address]*fakeProxy),
		receipts: make(map[common.Hash]*domain.TransactionReceipt),
	}
}

func (c *fakeChain) Deployer() common.Address { return c.deployer }

func (c *fakeChain) ChainID(context.Context) (*big.Int, error) { return c.chainID, nil }

func (c *fakeChain) PendingNonce(context.Context) (uint64, error) { return c.nonce, nil }

func (c *fakeChain) SuggestGasPrice(context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.gasPrice), nil
}

func (c *fakeChain) Send(_ context.Context, step domain.TransactionStep, gasPrice *big.Int) (*domain.PendingTransaction, error) {
	if c.sendErrStep != "" && step.Description == c.sendErrStep {
		return nil, errors.New("connection refused")
	}

	c.sent = append(c.sent, step)
	c.gasPrices = append(c.gasPrices, gasPrice)

	nonce := c.nonce
	c.nonce++
	hash := crypto.Keccak256Hash(c.deployer.Bytes(), new(big.Int).SetUint64(nonce).Bytes())

	receipt := &domain.TransactionReceipt{Hash: hash, BlockNumber: nonce + 1, GasUsed: 21000}
	pending := &domain.PendingTransaction{Hash: hash, Nonce: nonce, GasPrice: gasPrice}

	var err error
	if c.revertStep != "" && step.Description == c.revertStep {
		err = errRevert
	} else if step.Kind == domain.StepDeploy {
		addr := crypto.CreateAddress(c.deployer, nonce)
		err = c.deploy(addr, step)
		receipt.ContractAddress = addr
		pending.ContractAddress = addr
	} else {
		_, err = c.exec(c.deployer, step.Target, step.Data, true)
	}
	if fn, ok := c.tamper[step.Description]; ok && err == nil {
		fn(step.Target)
	}
	receipt.Success = err == nil

	c.receipts[hash] = receipt
	return pending, nil
}

func (c *fakeChain) WaitMined(_ context.Context, tx *domain.PendingTransaction, _ time.Duration) (*domain.TransactionReceipt, error) {
	receipt, ok := c.receipts[tx.Hash]
	if !ok {
		return nil, errors.New("unknown transaction")
	}
	return receipt, nil
}

func (c *fakeChain) Call(_ context.Context, from, to common.Address, data []byte) ([]byte, error) {
	return c.exec(from, to, data, false)
}

func (c *fakeChain) deploy(addr common.Address, step domain.TransactionStep) error {
	// only the proxy takes constructor input
	if len(step.ConstructorInput) > 0 {
		values, err := bindings.ProxyConstructorArgs.Unpack(step.ConstructorInput)
		if err != nil {
			return err
		}
		c.proxies[addr] = &fakeProxy{admin: c.deployer, implementation: values[0].(common.Address)}
	}
	c.tokens[addr] = &fakeToken{}
	return nil
}

func (c *fakeChain) exec(from, to common.Address, data []byte, write bool) ([]byte, error) {
	if proxy, ok := c.proxies[to]; ok && from == proxy.admin {
		return c.execProxyAdmin(proxy, data, write)
	}
	token, ok := c.tokens[to]
	if !ok {
		return nil, errRevert
	}
	if !write {
		copied := *token
		token = &copied
	}
	return execToken(token, data)
}

func (c *fakeChain) execProxyAdmin(proxy *fakeProxy, data []byte, write bool) ([]byte, error) {
	if len(data) < 4 {
		return nil, errRevert
	}
	switch [4]byte(data[:4]) {
	case bindings.ProxyChangeAdmin.Selector:
		var newAdmin common.Address
		if err := bindings.ProxyChangeAdmin.DecodeArgs(data, &newAdmin); err != nil {
			return nil, err
		}
		if newAdmin == (common.Address{}) {
			return nil, errRevert
		}
		if write {
			proxy.admin = newAdmin
		}
		return nil, nil
	case bindings.ProxyAdmin.Selector:
		if c.reportedAdmin != (common.Address{}) {
			return bindings.ProxyAdmin.Returns.Pack(c.reportedAdmin)
		}
		return bindings.ProxyAdmin.Returns.Pack(proxy.admin)
	case bindings.ProxyImplementation.Selector:
		return bindings.ProxyImplementation.Returns.Pack(proxy.implementation)
	default:
		// the admin cannot fall back to the implementation
		return nil, errRevert
	}
}

func execToken(t *fakeToken, data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errRevert
	}
	switch [4]byte(data[:4]) {
	case bindings.FiatTokenInitialize.Selector:
		args, err := bindings.DecodeInitialize(data)
		if err != nil {
			return nil, err
		}
		if t.initialized {
			return nil, errRevert
		}
		for _, addr := range []common.Address{args.MasterMinter, args.Pauser, args.Blacklister, args.Owner} {
			if addr == (common.Address{}) {
				return nil, errRevert
			}
		}
		t.initialized = true
		t.name, t.symbol, t.currency, t.decimals = args.Name, args.Symbol, args.Currency, args.Decimals
		t.masterMinter, t.pauser, t.blacklister, t.owner = args.MasterMinter, args.Pauser, args.Blacklister, args.Owner
		return nil, nil
	case bindings.FiatTokenInitializeV2.Selector:
		var name string
		if err := bindings.FiatTokenInitializeV2.DecodeArgs(data, &name); err != nil {
			return nil, err
		}
		if !t.initialized || t.version != 0 {
			return nil, errRevert
		}
		t.name = name
		t.version = 1
		return nil, nil
	case bindings.FiatTokenInitializeV2_1.Selector:
		var lostAndFound common.Address
		if err := bindings.FiatTokenInitializeV2_1.DecodeArgs(data, &lostAndFound); err != nil {
			return nil, err
		}
		if t.version != 1 {
			return nil, errRevert
		}
		t.lostAndFound = lostAndFound
		t.version = 2
		return nil, nil
	case bindings.FiatTokenName.Selector:
		return bindings.FiatTokenName.Returns.Pack(t.name)
	case bindings.FiatTokenSymbol.Selector:
		return bindings.FiatTokenSymbol.Returns.Pack(t.symbol)
	case bindings.FiatTokenCurrency.Selector:
		return bindings.FiatTokenCurrency.Returns.Pack(t.currency)
	case bindings.FiatTokenDecimals.Selector:
		return bindings.FiatTokenDecimals.Returns.Pack(t.decimals)
	case bindings.FiatTokenOwner.Selector:
		return bindings.FiatTokenOwner.Returns.Pack(t.owner)
	case bindings.FiatTokenMasterMinter.Selector:
		return bindings.FiatTokenMasterMinter.Returns.Pack(t.masterMinter)
	case bindings.FiatTokenPauser.Selector:
		return bindings.FiatTokenPauser.Returns.Pack(t.pauser)
	case bindings.FiatTokenBlacklister.Selector:
		return bindings.FiatTokenBlacklister.Returns.Pack(t.blacklister)
	default:
		return nil, errRevert
	}
}

var _ ChainClient = (*fakeChain)(nil)
