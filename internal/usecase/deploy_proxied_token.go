package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/bindings"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
)

// DeployProxiedToken deploys an implementation and its proxy, poisons the
// implementation, hands the proxy admin over and initializes the token
// through the proxy. The sequence is fixed and every transaction waits for
// its receipt before the next one is built.
type DeployProxiedToken struct {
	config    *config.RuntimeConfig
	chain     ChainClient
	artifacts ContractArtifacts
	gate      ConfirmationGate
	gasPrice  *GasPricePolicy
	verifier  *VerifyContract
	presenter DeploymentPresenter
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployProxiedToken creates a new DeployProxiedToken use case
func NewDeployProxiedToken(
	cfg *config.RuntimeConfig,
	chain ChainClient,
	artifacts ContractArtifacts,
	gate ConfirmationGate,
	gasPrice *GasPricePolicy,
	verifier *VerifyContract,
	presenter DeploymentPresenter,
	progress ProgressSink,
	log *slog.Logger,
) *DeployProxiedToken {
	return &DeployProxiedToken{
		config:    cfg,
		chain:     chain,
		artifacts: artifacts,
		gate:      gate,
		gasPrice:  gasPrice,
		verifier:  verifier,
		presenter: presenter,
		progress:  progress,
		log:       log,
	}
}

// Run executes the deployment. The returned result is non-nil whenever the
// run got past the preview, so a failed run still reports how far it got.
func (uc *DeployProxiedToken) Run(ctx context.Context, protocol Protocol, params domain.DeploymentParameters) (*DeploymentResult, error) {
	deployer := uc.chain.Deployer()

	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	nonce, err := uc.chain.PendingNonce(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get deployer nonce: %w", err)
	}

	result := &DeploymentResult{
		Protocol: protocol.Name,
		ChainID:  chainID.Uint64(),
		Deployer: deployer,
		Session:  domain.NewDeploymentSession(protocol.Versions()),
	}
	if uc.config.Network != nil {
		result.Network = uc.config.Network.Name
	}

	uc.presenter.ShowPreview(&DeploymentPreview{
		Protocol:      protocol.Name,
		Network:       result.Network,
		ChainID:       result.ChainID,
		Deployer:      deployer,
		DeployerNonce: nonce,
		Fields:        params.Fields(),
		Missing:       params.Missing(),
	})

	ok, err := uc.gate.Confirm(ctx, "Is the information correct?")
	if err != nil {
		return result, err
	}
	if !ok {
		return result, domain.ErrAborted
	}

	resolved, err := params.Resolve()
	if err != nil {
		return result, err
	}
	if resolved.ProxyAdmin == deployer {
		return result, domain.ErrAdminIsDeployer
	}
	if err := checkInitializers(protocol, resolved, deployer); err != nil {
		return result, err
	}

	implArtifact, err := uc.artifacts.Load(ctx, protocol.Implementation)
	if err != nil {
		return result, fmt.Errorf("failed to load implementation artifact: %w", err)
	}
	proxyArtifact, err := uc.artifacts.Load(ctx, protocol.Proxy)
	if err != nil {
		return result, fmt.Errorf("failed to load proxy artifact: %w", err)
	}

	session := result.Session

	if err := uc.deployImplementation(ctx, session, implArtifact); err != nil {
		return result, err
	}
	if err := uc.poisonImplementation(ctx, session, protocol, implArtifact); err != nil {
		return result, err
	}
	if err := uc.deployProxy(ctx, session, proxyArtifact); err != nil {
		return result, err
	}
	if err := uc.changeAdmin(ctx, session, proxyArtifact, resolved.ProxyAdmin); err != nil {
		return result, err
	}
	if err := uc.initializeProxy(ctx, session, protocol, implArtifact, resolved, deployer); err != nil {
		return result, err
	}
	if err := uc.checkInitializedState(ctx, session, resolved, deployer); err != nil {
		return result, err
	}

	outcomes, err := uc.verify(ctx, session, implArtifact, proxyArtifact)
	result.Verification = outcomes
	if err != nil {
		return result, err
	}

	return result, nil
}

func (uc *DeployProxiedToken) deployImplementation(ctx context.Context, session *domain.DeploymentSession, artifact *domain.Artifact) error {
	uc.progress.Info("Deploying implementation contract...")

	receipt, err := uc.execute(ctx, session, domain.TransactionStep{
		Kind:        domain.StepDeploy,
		Description: "deploy implementation",
		Contract:    artifact.ContractID,
		Bytecode:    artifact.Bytecode,
	})
	if err != nil {
		return err
	}
	if err := session.RecordImplementation(receipt.ContractAddress); err != nil {
		return err
	}

	uc.progress.Info(fmt.Sprintf("Deployed implementation contract at %s", receipt.ContractAddress.Hex()))
	return nil
}

func (uc *DeployProxiedToken) poisonImplementation(ctx context.Context, session *domain.DeploymentSession, protocol Protocol, impl *domain.Artifact) error {
	uc.progress.Info("Initializing implementation contract with dummy values...")

	for _, init := range protocol.Initializers {
		data, err := init.Placeholder()
		if err != nil {
			return fmt.Errorf("failed to encode placeholder %s: %w", init.Method, err)
		}

		uc.progress.Info(fmt.Sprintf("Init %s impl...", init.Version))
		if _, err := uc.execute(ctx, session, domain.TransactionStep{
			Kind:        domain.StepCall,
			Description: fmt.Sprintf("init %s impl", init.Version),
			Contract:    impl.ContractID,
			Target:      session.ImplementationAddress,
			Method:      init.Method,
			Data:        data,
		}); err != nil {
			return err
		}
		if err := session.RecordPoisoned(init.Version); err != nil {
			return err
		}
	}

	uc.progress.Info("Initialized implementation contract")
	return nil
}

func (uc *DeployProxiedToken) deployProxy(ctx context.Context, session *domain.DeploymentSession, artifact *domain.Artifact) error {
	input, err := bindings.EncodeProxyConstructor(session.ImplementationAddress)
	if err != nil {
		return fmt.Errorf("failed to encode proxy constructor: %w", err)
	}

	uc.progress.Info("Deploying proxy contract...")
	receipt, err := uc.execute(ctx, session, domain.TransactionStep{
		Kind:             domain.StepDeploy,
		Description:      "deploy proxy",
		Contract:         artifact.ContractID,
		Bytecode:         artifact.Bytecode,
		ConstructorInput: input,
	})
	if err != nil {
		return err
	}
	if err := session.RecordProxy(receipt.ContractAddress); err != nil {
		return err
	}

	uc.progress.Info(fmt.Sprintf("Deployed proxy contract at %s", receipt.ContractAddress.Hex()))
	return nil
}

// changeAdmin hands the proxy over before initialization: the proxy never
// forwards calls from its admin, so the deployer must stop being admin
// before it can call the initializers through the proxy.
func (uc *DeployProxiedToken) changeAdmin(ctx context.Context, session *domain.DeploymentSession, proxy *domain.Artifact, admin common.Address) error {
	data, err := bindings.EncodeChangeAdmin(admin)
	if err != nil {
		return fmt.Errorf("failed to encode changeAdmin: %w", err)
	}

	uc.progress.Info(fmt.Sprintf("Reassigning proxy contract admin to %s...", admin.Hex()))
	if _, err := uc.execute(ctx, session, domain.TransactionStep{
		Kind:        domain.StepAdminChange,
		Description: "change proxy admin",
		Contract:    proxy.ContractID,
		Target:      session.ProxyAddress,
		Method:      "changeAdmin",
		Data:        data,
	}); err != nil {
		return err
	}

	// admin() is only answered for the admin itself
	var current common.Address
	if err := uc.read(ctx, admin, session.ProxyAddress, bindings.ProxyAdmin, &current); err != nil {
		return fmt.Errorf("failed to read proxy admin: %w", err)
	}
	if current != admin {
		return &domain.StateMismatchError{Field: "proxy admin", Expected: admin.Hex(), Actual: current.Hex()}
	}

	if err := session.RecordAdminReassigned(); err != nil {
		return err
	}
	uc.progress.Info(fmt.Sprintf("Reassigned proxy contract admin to %s", admin.Hex()))
	return nil
}

func (uc *DeployProxiedToken) initializeProxy(
	ctx context.Context,
	session *domain.DeploymentSession,
	protocol Protocol,
	impl *domain.Artifact,
	params *domain.ResolvedParameters,
	deployer common.Address,
) error {
	uc.progress.Info("Initializing proxy contract...")

	for _, init := range protocol.Initializers {
		data, err := init.Encode(params, deployer)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", init.Method, err)
		}

		uc.progress.Info(fmt.Sprintf("Init %s...", init.Version))
		if _, err := uc.execute(ctx, session, domain.TransactionStep{
			Kind:        domain.StepCall,
			Description: fmt.Sprintf("init %s", init.Version),
			Contract:    impl.ContractID,
			Target:      session.ProxyAddress,
			Method:      init.Method,
			Data:        data,
		}); err != nil {
			return err
		}
		if err := session.RecordInitialized(init.Version); err != nil {
			return err
		}
	}

	uc.progress.Info("Initialized proxy contract")
	return nil
}

// checkInitializedState reads the token configuration back through the proxy
func (uc *DeployProxiedToken) checkInitializedState(
	ctx context.Context,
	session *domain.DeploymentSession,
	params *domain.ResolvedParameters,
	deployer common.Address,
) error {
	proxy := session.ProxyAddress

	strs := []struct {
		field    string
		fn       *w3.Func
		expected string
	}{
		{"name", bindings.FiatTokenName, params.TokenName},
		{"symbol", bindings.FiatTokenSymbol, params.TokenSymbol},
		{"currency", bindings.FiatTokenCurrency, params.TokenCurrency},
	}
	for _, s := range strs {
		var actual string
		if err := uc.read(ctx, deployer, proxy, s.fn, &actual); err != nil {
			return fmt.Errorf("failed to read %s: %w", s.field, err)
		}
		if actual != s.expected {
			return &domain.StateMismatchError{Field: s.field, Expected: s.expected, Actual: actual}
		}
	}

	var decimals uint8
	if err := uc.read(ctx, deployer, proxy, bindings.FiatTokenDecimals, &decimals); err != nil {
		return fmt.Errorf("failed to read decimals: %w", err)
	}
	if decimals != params.TokenDecimals {
		return &domain.StateMismatchError{
			Field:    "decimals",
			Expected: fmt.Sprint(params.TokenDecimals),
			Actual:   fmt.Sprint(decimals),
		}
	}

	roles := []struct {
		field    string
		fn       *w3.Func
		expected common.Address
	}{
		{"owner", bindings.FiatTokenOwner, params.Owner},
		{"masterMinter", bindings.FiatTokenMasterMinter, params.MasterMinter},
		{"pauser", bindings.FiatTokenPauser, params.Pauser},
		{"blacklister", bindings.FiatTokenBlacklister, params.Blacklister},
	}
	for _, r := range roles {
		var actual common.Address
		if err := uc.read(ctx, deployer, proxy, r.fn, &actual); err != nil {
			return fmt.Errorf("failed to read %s: %w", r.field, err)
		}
		if actual != r.expected {
			return &domain.StateMismatchError{Field: r.field, Expected: r.expected.Hex(), Actual: actual.Hex()}
		}
	}

	uc.log.Debug("proxy state matches parameters", "proxy", proxy)
	return nil
}

// verify submits both contracts under the ids the compiler produced them with
func (uc *DeployProxiedToken) verify(ctx context.Context, session *domain.DeploymentSession, impl, proxy *domain.Artifact) ([]*domain.VerificationOutcome, error) {
	requests := []domain.VerificationRequest{
		{
			ContractID: impl.ContractID,
			Address:    session.ImplementationAddress,
		},
		{
			ContractID:      proxy.ContractID,
			Address:         session.ProxyAddress,
			ConstructorArgs: []any{session.ImplementationAddress},
			ConstructorABI:  bindings.ProxyConstructorArgs,
		},
	}

	var outcomes []*domain.VerificationOutcome
	for _, req := range requests {
		outcome, err := uc.verifier.Verify(ctx, req)
		if err != nil {
			return outcomes, err
		}
		if outcome.Status == domain.VerificationFailed {
			uc.progress.Error(fmt.Sprintf("Verification of %s failed: %v", req.ContractID, outcome.Err))
		}
		outcomes = append(outcomes, outcome)
	}

	if err := session.RecordVerified(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// checkInitializers makes sure no initializer calldata would be intercepted
// by the proxy's admin functions
func checkInitializers(protocol Protocol, params *domain.ResolvedParameters, deployer common.Address) error {
	for _, init := range protocol.Initializers {
		placeholder, err := init.Placeholder()
		if err != nil {
			return fmt.Errorf("failed to encode placeholder %s: %w", init.Method, err)
		}
		data, err := init.Encode(params, deployer)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", init.Method, err)
		}
		if bindings.IsAdminSelector(placeholder) || bindings.IsAdminSelector(data) {
			return fmt.Errorf("%w: %s (%s)", domain.ErrSelectorClash, init.Method, init.Version)
		}
	}
	return nil
}

// execute prices, submits and waits for a single step
func (uc *DeployProxiedToken) execute(ctx context.Context, session *domain.DeploymentSession, step domain.TransactionStep) (*domain.TransactionReceipt, error) {
	gasPrice, err := uc.gasPrice.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := uc.chain.Send(ctx, step, gasPrice)
	if err != nil {
		return nil, &domain.TransactionFailedError{Step: step.Description, Err: err}
	}
	uc.progress.Info(fmt.Sprintf("%s tx: %s", step.Description, pending.Hash.Hex()))
	uc.log.Debug("transaction submitted",
		"step", step.Description,
		"hash", pending.Hash,
		"nonce", pending.Nonce,
		"gasPrice", gasPrice,
	)

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   session.Stage.String(),
		Message: fmt.Sprintf("Waiting for %s to be mined...", step.Description),
		Spinner: true,
	})
	receipt, err := uc.chain.WaitMined(ctx, pending, uc.config.TxWaitTimeout)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: session.Stage.String()})
	if err != nil {
		return nil, &domain.TransactionFailedError{Step: step.Description, Hash: pending.Hash, Err: err}
	}
	if !receipt.Success {
		return nil, &domain.TransactionFailedError{Step: step.Description, Hash: pending.Hash, Reason: "execution reverted"}
	}

	session.RecordTransaction(domain.TransactionRecord{
		Description: step.Description,
		Hash:        receipt.Hash.Hex(),
		Block:       receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
	})
	return receipt, nil
}

func (uc *DeployProxiedToken) read(ctx context.Context, from, to common.Address, fn *w3.Func, out any) error {
	data, err := fn.EncodeArgs()
	if err != nil {
		return err
	}
	ret, err := uc.chain.Call(ctx, from, to, data)
	if err != nil {
		return err
	}
	return fn.DecodeReturns(ret, out)
}
