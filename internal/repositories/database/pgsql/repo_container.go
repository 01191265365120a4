package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	employeeRepo := newPgxEmployeeRepository(pool)
	return portsrepo.RepositoryProvider{
		RequestRepo:    newPgxRequestRepository(pool),
		WorkflowRepo:   newPgxWorkflowRepository(pool),
		AuditRepo:      newPgxAuditRepository(pool),
		EmployeeRepo:   employeeRepo,
		CapabilityRepo: employeeRepo,
	}
}
