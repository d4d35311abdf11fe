package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

const buildInfoDir = "build-info"

// debugFile is the <Name>.dbg.json file Hardhat writes next to each artifact
type debugFile struct {
	Format    string `json:"_format"`
	BuildInfo string `json:"buildInfo"`
}

// Repository indexes compiled artifacts from a Hardhat style artifacts directory
type Repository struct {
	artifactsDir  string
	contracts     map[string]*models.Contract   // key: "sourceName:contractName"
	contractNames map[string][]*models.Contract // key: contract name, value: all contracts with that name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir:  cfg.ArtifactsDir,
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
		log:           log.With("component", "ContractRepository"),
	}
}

// Index discovers all deployable artifacts. It runs once per process.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.artifactsDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: artifacts directory %s does not exist (compile the contracts first)", domain.ErrContractNotFound, r.artifactsDir)
		}
		return err
	}

	err := filepath.WalkDir(r.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == buildInfoDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	return nil
}

// processArtifact adds a single artifact file to the index
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not an artifact (cache files, tool output)
		return nil
	}

	if artifact.ContractName == "" || artifact.Bytecode.IsEmpty() {
		return nil
	}

	contract := &models.Contract{
		Name:         artifact.ContractName,
		SourceName:   artifact.SourceName,
		ArtifactPath: artifactPath,
		Artifact:     &artifact,
	}
	contract.BuildInfoPath = r.buildInfoFromDebugFile(artifactPath)

	r.log.Debug("indexed artifact", "contract", contract.FullyQualifiedName(), "path", artifactPath)

	r.contracts[contract.FullyQualifiedName()] = contract
	r.contractNames[contract.Name] = append(r.contractNames[contract.Name], contract)
	return nil
}

// buildInfoFromDebugFile resolves the build-info path recorded in <Name>.dbg.json
func (r *Repository) buildInfoFromDebugFile(artifactPath string) string {
	dbgPath := strings.TrimSuffix(artifactPath, ".json") + ".dbg.json"
	data, err := os.ReadFile(dbgPath)
	if err != nil {
		return ""
	}

	var dbg debugFile
	if err := json.Unmarshal(data, &dbg); err != nil || dbg.BuildInfo == "" {
		return ""
	}
	if filepath.IsAbs(dbg.BuildInfo) {
		return dbg.BuildInfo
	}
	return filepath.Join(filepath.Dir(dbgPath), dbg.BuildInfo)
}

// GetContract retrieves a contract by name or "sourceName:contractName"
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if contract, ok := r.contracts[key]; ok {
		return contract, nil
	}

	matches := r.contractNames[key]
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s (looked in %s)", domain.ErrContractNotFound, key, r.artifactsDir)
	case 1:
		return matches[0], nil
	}

	names := lo.Map(matches, func(c *models.Contract, _ int) string { return c.FullyQualifiedName() })
	sort.Strings(names)
	return nil, fmt.Errorf("contract name %s is ambiguous, use one of: %s", key, strings.Join(names, ", "))
}

// ListContracts returns all deployable contracts sorted by fully qualified name
func (r *Repository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	contracts := lo.Values(r.contracts)
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].FullyQualifiedName() < contracts[j].FullyQualifiedName()
	})
	return contracts, nil
}

// GetBuildInfo loads the compiler input for contract. Without a debug file
// the build-info directory is searched for a compilation containing the source.
func (r *Repository) GetBuildInfo(ctx context.Context, contract *models.Contract) (*models.BuildInfo, error) {
	if contract.BuildInfoPath != "" {
		return readBuildInfo(contract.BuildInfoPath)
	}

	entries, err := os.ReadDir(filepath.Join(r.artifactsDir, buildInfoDir))
	if err != nil {
		return nil, fmt.Errorf("no build info for %s: %w", contract.FullyQualifiedName(), err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(r.artifactsDir, buildInfoDir, entry.Name())
		info, err := readBuildInfo(path)
		if err != nil {
			r.log.Debug("skipping build info", "path", path, "error", err)
			continue
		}
		if compilesSource(info, contract.SourceName) {
			contract.BuildInfoPath = path
			return info, nil
		}
	}

	return nil, fmt.Errorf("no build info contains %s", contract.SourceName)
}

func readBuildInfo(path string) (*models.BuildInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var info models.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse build info %s: %w", path, err)
	}
	if len(info.Input) == 0 {
		return nil, fmt.Errorf("build info %s has no compiler input", path)
	}
	return &info, nil
}

func compilesSource(info *models.BuildInfo, sourceName string) bool {
	var input struct {
		Sources map[string]json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(info.Input, &input); err != nil {
		return false
	}
	_, ok := input.Sources[sourceName]
	return ok
}

// Ensure the adapter implements the interface
var _ usecase.ContractRepository = (*Repository)(nil)
