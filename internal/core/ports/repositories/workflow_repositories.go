package repositories

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// WorkflowConfigRepository persists the singleton routing definition.
type WorkflowConfigRepository interface {
	// LoadConfig reads the active configuration. The state machine re-reads it
	// per transition; no caching happens below this interface.
	LoadConfig(ctx context.Context) (*domain.WorkflowConfig, error)

	// ReplaceConfig stores the new configuration when the stored version still
	// equals expectedVersion, bumping the version by one. A stale version
	// returns apperrors.ErrConflict.
	ReplaceConfig(ctx context.Context, config domain.WorkflowConfig, expectedVersion int64) error
}
