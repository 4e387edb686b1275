package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/proxy-deployer/internal/cli/render"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

func TestReportRun(t *testing.T) {
	color.NoColor = true
	impl := common.HexToAddress("0x1000000000000000000000000000000000000001")

	stoppedAfterImplementation := func(t *testing.T) *usecase.DeploymentResult {
		session := domain.NewDeploymentSession([]string{"v1"})
		require.NoError(t, session.RecordImplementation(impl))
		return &usecase.DeploymentResult{Protocol: "FiatTokenV1", Network: "goerli", ChainID: 5, Session: session}
	}

	tests := []struct {
		name       string
		result     func(t *testing.T) *usecase.DeploymentResult
		err        error
		wantErr    error
		wantOutput []string
		wantEmpty  bool
	}{
		{
			name:       "abort after the implementation landed still shows it",
			result:     stoppedAfterImplementation,
			err:        fmt.Errorf("gas price: %w", domain.ErrAborted),
			wantErr:    domain.ErrAborted,
			wantOutput: []string{"Deployment stopped after stage", impl.Hex()},
		},
		{
			name:       "failure after the implementation landed shows it",
			result:     stoppedAfterImplementation,
			err:        errors.New("connection refused"),
			wantOutput: []string{"Deployment stopped after stage", impl.Hex()},
		},
		{
			name: "abort before anything was sent prints nothing",
			result: func(t *testing.T) *usecase.DeploymentResult {
				return &usecase.DeploymentResult{Session: domain.NewDeploymentSession([]string{"v1"})}
			},
			err:       domain.ErrAborted,
			wantErr:   domain.ErrAborted,
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := reportRun(render.NewDeploymentRenderer(&out), tt.result(t), tt.err)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantEmpty {
				assert.Empty(t, out.String())
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}
