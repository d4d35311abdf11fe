package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/notify-deploy/internal/domain"
	"github.com/trebuchet-org/notify-deploy/internal/domain/config"
	"github.com/trebuchet-org/notify-deploy/internal/domain/models"
	"github.com/trebuchet-org/notify-deploy/internal/usecase"
)

// FileRepository stores the deployment record as a single JSON file.
// Saves replace the file wholesale; there is no locking between processes.
type FileRepository struct {
	path string
	log  *slog.Logger
}

// NewFileRepository creates a repository for the configured record path
func NewFileRepository(cfg *config.RuntimeConfig, log *slog.Logger) *FileRepository {
	return &FileRepository{
		path: cfg.RecordPath,
		log:  log.With("component", "DeploymentStore"),
	}
}

// Path returns the record file location
func (r *FileRepository) Path() string {
	return r.path
}

// Save writes the record with two-space indentation
func (r *FileRepository) Save(ctx context.Context, record *models.DeploymentRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	// Write to temp file first
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	r.log.Debug("saved deployment record", "path", r.path, "address", record.ContractAddress)
	return nil
}

// Load reads the record. Absent, unparsable and incomplete files all map to
// domain.ErrMissingArtifact.
func (r *FileRepository) Load(ctx context.Context) (*models.DeploymentRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist (run deploy first)", domain.ErrMissingArtifact, r.path)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMissingArtifact, err)
	}

	var record models.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %v", domain.ErrMissingArtifact, r.path, err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMissingArtifact, r.path, err)
	}

	return &record, nil
}

var _ usecase.DeploymentStore = (*FileRepository)(nil)
