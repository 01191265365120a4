package services

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// CapabilityResolver is the permission gate consulted before every transition.
// The state machine never embeds role names as control flow; it only asks these
// two questions, so role catalogs can be swapped without touching the engine.
type CapabilityResolver interface {
	// Check reports whether the actor holds the capability.
	Check(ctx context.Context, actorID string, capability domain.Capability) (bool, error)

	// RoleAllows reports whether a role grants the capability. Used to vet
	// transfer targets without resolving every role holder.
	RoleAllows(ctx context.Context, role string, capability domain.Capability) (bool, error)
}
