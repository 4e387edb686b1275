package artifacts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
)

func writeArtifact(t *testing.T, root, dir, name, source, bytecode string) {
	t.Helper()
	path := filepath.Join(root, "out", dir, name+".json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	content := fmt.Sprintf(`{
  "abi": [{"type":"function","name":"initializeV2","inputs":[{"name":"newName","type":"string"}],"outputs":[],"stateMutability":"nonpayable"}],
  "bytecode": {"object": %q, "sourceMap": "", "linkReferences": {}},
  "metadata": {"settings": {"compilationTarget": {%q: %q}}}
}`, bytecode, source, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newLoader(root string) *FoundryArtifacts {
	cfg := &config.RuntimeConfig{ProjectRoot: root}
	return NewFoundryArtifacts(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFoundryArtifacts_Load(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "FiatTokenV1.sol", "FiatTokenV1", "contracts/v1/FiatTokenV1.sol", "0x60806040")
	writeArtifact(t, root, "FiatTokenProxy.sol", "FiatTokenProxy", "contracts/v1/FiatTokenProxy.sol", "6080")
	writeArtifact(t, root, "Abstract.sol", "Abstract", "contracts/Abstract.sol", "0x")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "out", "build-info"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "out", "build-info", "abc.json"), []byte(`not json`), 0644))

	loader := newLoader(root)
	ctx := context.Background()

	t.Run("package prefixed id matches compiled source", func(t *testing.T) {
		artifact, err := loader.Load(ctx, "centre-tokens/contracts/v1/FiatTokenV1.sol:FiatTokenV1")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, artifact.Bytecode)
		assert.Contains(t, artifact.ABI.Methods, "initializeV2")
		assert.Equal(t, "contracts/v1/FiatTokenV1.sol:FiatTokenV1", artifact.ContractID)
	})

	t.Run("bytecode without prefix", func(t *testing.T) {
		artifact, err := loader.Load(ctx, "contracts/v1/FiatTokenProxy.sol:FiatTokenProxy")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, artifact.Bytecode)
		assert.Equal(t, "contracts/v1/FiatTokenProxy.sol:FiatTokenProxy", artifact.ContractID)
	})

	t.Run("missing contract", func(t *testing.T) {
		_, err := loader.Load(ctx, "centre-tokens/contracts/v2/FiatTokenV2_1.sol:FiatTokenV2_1")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("contract without bytecode", func(t *testing.T) {
		_, err := loader.Load(ctx, "contracts/Abstract.sol:Abstract")
		assert.ErrorContains(t, err, "no bytecode")
	})
}

func TestFoundryArtifacts_Ambiguous(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, root, "a/Token.sol", "Token", "a/Token.sol", "0x60")
	writeArtifact(t, root, "b/Token.sol", "Token", "b/Token.sol", "0x60")

	_, err := newLoader(root).Load(context.Background(), "Token")
	assert.ErrorContains(t, err, "multiple artifacts match")
}

func TestFoundryArtifacts_NoBuildOutput(t *testing.T) {
	_, err := newLoader(t.TempDir()).Load(context.Background(), "Token")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}
