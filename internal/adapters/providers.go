package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/proxy-deployer/internal/adapters/artifacts"
	"github.com/trebuchet-org/proxy-deployer/internal/adapters/blockchain"
	"github.com/trebuchet-org/proxy-deployer/internal/adapters/interactive"
	"github.com/trebuchet-org/proxy-deployer/internal/adapters/progress"
	"github.com/trebuchet-org/proxy-deployer/internal/adapters/verification"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// BlockchainSet provides the chain connection
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
	wire.Bind(new(usecase.GasOracle), new(*blockchain.Client)),
)

// ArtifactsSet provides compiled Foundry artifacts
var ArtifactsSet = wire.NewSet(
	artifacts.NewFoundryArtifacts,
	wire.Bind(new(usecase.ContractArtifacts), new(*artifacts.FoundryArtifacts)),
)

// InteractiveSet provides terminal prompts
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmPrompt,
	wire.Bind(new(usecase.ConfirmationGate), new(*interactive.ConfirmPrompt)),

	interactive.NewGasPricePrompt,
	wire.Bind(new(usecase.GasPricePrompter), new(*interactive.GasPricePrompt)),
)

// VerificationSet provides the forge verify-contract runner
var VerificationSet = wire.NewSet(
	verification.NewForgeRunner,
	wire.Bind(new(usecase.VerificationRunner), new(*verification.ForgeRunner)),
)

// ProgressSet provides the spinner progress sink
var ProgressSet = wire.NewSet(
	progress.NewSpinnerSink,
	wire.Bind(new(usecase.ProgressSink), new(*progress.SpinnerSink)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	ArtifactsSet,
	InteractiveSet,
	VerificationSet,
	ProgressSet,
)
