package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
	"github.com/trebuchet-org/proxy-deployer/internal/domain/config"
	"github.com/trebuchet-org/proxy-deployer/internal/usecase"
)

// foundryArtifact is the subset of a Foundry build artifact we read
type foundryArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object string `json:"object"`
	} `json:"bytecode"`
	Metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

type indexedArtifact struct {
	source string
	name   string
	path   string
}

// FoundryArtifacts loads compiled contracts from a Foundry out/ directory
type FoundryArtifacts struct {
	outDir string
	log    *slog.Logger

	once     sync.Once
	index    []indexedArtifact
	indexErr error
}

// NewFoundryArtifacts creates an artifact loader for the configured build output
func NewFoundryArtifacts(cfg *config.RuntimeConfig, log *slog.Logger) *FoundryArtifacts {
	outDir := cfg.ArtifactsDir
	if outDir == "" {
		outDir = "out"
	}
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(cfg.ProjectRoot, outDir)
	}
	return &FoundryArtifacts{outDir: outDir, log: log}
}

// Load returns the artifact for a qualified "path/File.sol:Name" id. The
// source path may carry a package prefix that the compiler did not see, so
// sources match on path suffix as well as exactly. The returned artifact
// carries the id as the compiler knows it.
func (a *FoundryArtifacts) Load(ctx context.Context, contractID string) (*domain.Artifact, error) {
	a.once.Do(func() {
		a.index, a.indexErr = a.buildIndex()
	})
	if a.indexErr != nil {
		return nil, a.indexErr
	}

	source, name := domain.SplitContractID(contractID)
	matches := lo.Filter(a.index, func(entry indexedArtifact, _ int) bool {
		return entry.name == name && sourceMatches(entry.source, source)
	})

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s (looked in %s, run forge build?)", domain.ErrArtifactNotFound, contractID, a.outDir)
	case 1:
	default:
		paths := lo.Map(matches, func(entry indexedArtifact, _ int) string { return entry.source + ":" + entry.name })
		return nil, fmt.Errorf("multiple artifacts match %s: %s", contractID, strings.Join(paths, ", "))
	}

	match := matches[0]
	return readArtifact(match.path, match.source+":"+match.name)
}

func (a *FoundryArtifacts) buildIndex() ([]indexedArtifact, error) {
	if _, err := os.Stat(a.outDir); err != nil {
		return nil, fmt.Errorf("%w: build output %s: %v", domain.ErrArtifactNotFound, a.outDir, err)
	}

	var index []indexedArtifact
	err := filepath.WalkDir(a.outDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// build-info holds full compiler input, not artifacts
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var artifact foundryArtifact
		if err := json.Unmarshal(data, &artifact); err != nil {
			a.log.Debug("skipping unreadable artifact", "path", path, "error", err)
			return nil
		}
		for source, name := range artifact.Metadata.Settings.CompilationTarget {
			index = append(index, indexedArtifact{source: source, name: name, path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index artifacts: %w", err)
	}

	a.log.Debug("indexed artifacts", "dir", a.outDir, "count", len(index))
	return index, nil
}

func readArtifact(path, contractID string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var artifact foundryArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	if artifact.Bytecode.Object == "" || artifact.Bytecode.Object == "0x" {
		return nil, fmt.Errorf("artifact %s has no bytecode (abstract contract or interface?)", contractID)
	}
	if strings.Contains(artifact.Bytecode.Object, "__$") {
		return nil, fmt.Errorf("artifact %s has unlinked library references", contractID)
	}
	bytecode, err := hexutil.Decode(ensure0x(artifact.Bytecode.Object))
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", path, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid ABI in %s: %w", path, err)
	}

	return &domain.Artifact{
		ContractID: contractID,
		ABI:        parsed,
		Bytecode:   bytecode,
	}, nil
}

func sourceMatches(compiled, requested string) bool {
	if requested == "" || compiled == requested {
		return true
	}
	return strings.HasSuffix(requested, "/"+compiled) || strings.HasSuffix(compiled, "/"+requested)
}

func ensure0x(s string) string {
	if strings.HasPrefix(s, "0x") {
		return s
	}
	return "0x" + s
}

var _ usecase.ContractArtifacts = (*FoundryArtifacts)(nil)
