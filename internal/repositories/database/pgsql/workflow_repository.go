package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
)

// PgxWorkflowRepository persists the singleton workflow configuration row.
// Nodes are stored as a JSONB document; the version column guards replacement.
type PgxWorkflowRepository struct {
	BaseRepository
}

func newPgxWorkflowRepository(pool *pgxpool.Pool) *PgxWorkflowRepository {
	return &PgxWorkflowRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkflowConfigRepository = (*PgxWorkflowRepository)(nil)

// The configuration is a single row; config_id is fixed at 1 by a CHECK
// constraint in the schema.
const workflowConfigID = 1

// LoadConfig reads the active configuration.
func (r *PgxWorkflowRepository) LoadConfig(ctx context.Context) (*domain.WorkflowConfig, error) {
	query := `
		SELECT enabled, version, nodes, last_updated_at, last_updated_by
		FROM workflow_config
		WHERE config_id = $1;
	`
	var (
		config    domain.WorkflowConfig
		nodesJSON []byte
	)
	err := r.Pool.QueryRow(ctx, query, workflowConfigID).Scan(
		&config.Enabled,
		&config.Version,
		&nodesJSON,
		&config.UpdatedAt,
		&config.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load workflow config: %w", err)
	}

	if err := json.Unmarshal(nodesJSON, &config.Nodes); err != nil {
		return nil, fmt.Errorf("failed to decode workflow nodes: %w", err)
	}
	return &config, nil
}

// ReplaceConfig stores the new configuration when the stored version still
// matches expectedVersion. The first ever write inserts the singleton row.
func (r *PgxWorkflowRepository) ReplaceConfig(ctx context.Context, config domain.WorkflowConfig, expectedVersion int64) error {
	nodesJSON, err := json.Marshal(config.Nodes)
	if err != nil {
		return fmt.Errorf("failed to encode workflow nodes: %w", err)
	}

	query := `
		INSERT INTO workflow_config (config_id, enabled, version, nodes, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (config_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			version = EXCLUDED.version,
			nodes = EXCLUDED.nodes,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE workflow_config.version = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		workflowConfigID,
		config.Enabled,
		config.Version,
		nodesJSON,
		config.UpdatedAt,
		config.UpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to replace workflow config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: workflow config version changed", apperrors.ErrConflict)
	}
	return nil
}
