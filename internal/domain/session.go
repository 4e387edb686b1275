package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Stage is the position of a deployment run in its fixed transaction sequence
type Stage int

const (
	StageUnconfirmed Stage = iota
	StageImplementationDeployed
	StageImplementationPoisoned
	StageProxyDeployed
	StageAdminReassigned
	StageInitialized
	StageVerified
)

func (s Stage) String() string {
	switch s {
	case StageUnconfirmed:
		return "unconfirmed"
	case StageImplementationDeployed:
		return "implementation deployed"
	case StageImplementationPoisoned:
		return "implementation poisoned"
	case StageProxyDeployed:
		return "proxy deployed"
	case StageAdminReassigned:
		return "admin reassigned"
	case StageInitialized:
		return "initialized"
	case StageVerified:
		return "verified"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// DeploymentSession tracks the progress of a single run. Transitions only
// move forward, one stage at a time.
type DeploymentSession struct {
	Stage                 Stage
	ImplementationAddress common.Address
	ProxyAddress          common.Address
	PoisonedVersions      []string
	InitializedVersions   []string
	Transactions          []TransactionRecord

	versions []string
}

// NewDeploymentSession creates a session for a protocol whose initializers
// carry the given versions, in the order they must run.
func NewDeploymentSession(versions []string) *DeploymentSession {
	return &DeploymentSession{
		Stage:    StageUnconfirmed,
		versions: append([]string(nil), versions...),
	}
}

// Versions returns the ordered initializer versions of the session's protocol
func (s *DeploymentSession) Versions() []string {
	return append([]string(nil), s.versions...)
}

func (s *DeploymentSession) require(stage Stage, action string) error {
	if s.Stage != stage {
		return fmt.Errorf("%w: cannot %s at stage %q", ErrInvalidTransition, action, s.Stage)
	}
	return nil
}

// RecordImplementation records the deployed implementation address
func (s *DeploymentSession) RecordImplementation(addr common.Address) error {
	if err := s.require(StageUnconfirmed, "record implementation"); err != nil {
		return err
	}
	s.ImplementationAddress = addr
	s.Stage = StageImplementationDeployed
	return nil
}

// RecordPoisoned records a placeholder initializer run on the implementation.
// The stage advances once every version has been recorded.
func (s *DeploymentSession) RecordPoisoned(version string) error {
	if err := s.require(StageImplementationDeployed, "poison implementation"); err != nil {
		return err
	}
	if err := s.nextVersion(s.PoisonedVersions, version); err != nil {
		return err
	}
	s.PoisonedVersions = append(s.PoisonedVersions, version)
	if len(s.PoisonedVersions) == len(s.versions) {
		s.Stage = StageImplementationPoisoned
	}
	return nil
}

// RecordProxy records the deployed proxy address
func (s *DeploymentSession) RecordProxy(addr common.Address) error {
	if err := s.require(StageImplementationPoisoned, "record proxy"); err != nil {
		return err
	}
	s.ProxyAddress = addr
	s.Stage = StageProxyDeployed
	return nil
}

// RecordAdminReassigned records the proxy admin handoff
func (s *DeploymentSession) RecordAdminReassigned() error {
	if err := s.require(StageProxyDeployed, "reassign admin"); err != nil {
		return err
	}
	s.Stage = StageAdminReassigned
	return nil
}

// RecordInitialized records a real initializer run through the proxy
func (s *DeploymentSession) RecordInitialized(version string) error {
	if err := s.require(StageAdminReassigned, "initialize proxy"); err != nil {
		return err
	}
	if err := s.nextVersion(s.InitializedVersions, version); err != nil {
		return err
	}
	s.InitializedVersions = append(s.InitializedVersions, version)
	if len(s.InitializedVersions) == len(s.versions) {
		s.Stage = StageInitialized
	}
	return nil
}

// RecordVerified marks the end of the verification step
func (s *DeploymentSession) RecordVerified() error {
	if err := s.require(StageInitialized, "finish verification"); err != nil {
		return err
	}
	s.Stage = StageVerified
	return nil
}

// RecordTransaction appends a mined transaction to the session log
func (s *DeploymentSession) RecordTransaction(rec TransactionRecord) {
	s.Transactions = append(s.Transactions, rec)
}

func (s *DeploymentSession) nextVersion(done []string, version string) error {
	if len(done) >= len(s.versions) {
		return fmt.Errorf("%w: all initializers already ran, got %q", ErrInvalidTransition, version)
	}
	if want := s.versions[len(done)]; want != version {
		return fmt.Errorf("%w: expected initializer %q, got %q", ErrInvalidTransition, want, version)
	}
	return nil
}
