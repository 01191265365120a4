package services

import (
	"context"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// Notifier informs relevant parties of a committed transition. Delivery is
// best-effort and strictly post-commit: implementations swallow their own
// failures and must never cause a committed transition to be reported as failed.
type Notifier interface {
	Notify(ctx context.Context, event domain.Action, request *domain.PurchaseRequest)
}
