package render

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// DeploymentRecord is the YAML document printed at the end of a run
type DeploymentRecord struct {
	Protocol       string                     `yaml:"protocol"`
	Network        string                     `yaml:"network"`
	ChainID        uint64                     `yaml:"chainId"`
	Deployer       string                     `yaml:"deployer"`
	Stage          string                     `yaml:"stage"`
	Implementation string                     `yaml:"implementation,omitempty"`
	Proxy          string                     `yaml:"proxy,omitempty"`
	Initialized    []string                   `yaml:"initialized,omitempty"`
	Transactions   []domain.TransactionRecord `yaml:"transactions,omitempty"`
	Verification   []VerificationRecord       `yaml:"verification,omitempty"`
}

// VerificationRecord is a verification outcome in the deployment record
type VerificationRecord struct {
	Contract string `yaml:"contract"`
	Address  string `yaml:"address"`
	Status   string `yaml:"status"`
	Error    string `yaml:"error,omitempty"`
}

// NewDeploymentRecord builds the record of a run, complete or not
func NewDeploymentRecord(result *usecase.DeploymentResult) DeploymentRecord {
	record := DeploymentRecord{
		Protocol: result.Protocol,
		Network:  result.Network,
		ChainID:  result.ChainID,
		Deployer: result.Deployer.Hex(),
	}

	if session := result.Session; session != nil {
		record.Stage = session.Stage.String()
		record.Implementation = hexOrEmpty(session.ImplementationAddress)
		record.Proxy = hexOrEmpty(session.ProxyAddress)
		record.Initialized = session.InitializedVersions
		record.Transactions = session.Transactions
	}

	for _, outcome := range result.Verification {
		v := VerificationRecord{
			Contract: outcome.ContractID,
			Address:  outcome.Address.Hex(),
			Status:   string(outcome.Status),
		}
		if outcome.Err != nil {
			v.Error = outcome.Err.Error()
		}
		record.Verification = append(record.Verification, v)
	}

	return record
}

func hexOrEmpty(addr common.Address) string {
	if addr == (common.Address{}) {
		return ""
	}
	return addr.Hex()
}
