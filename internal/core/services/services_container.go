package services

import (
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
	"github.com/opsledger/purchase_mgmt_app/internal/platform/config"
)

// NewServiceContainer wires all services with their dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Capability = NewCapabilityService(repos.EmployeeRepo, repos.CapabilityRepo)
	container.Employee = NewEmployeeService(repos.EmployeeRepo)
	container.Workflow = NewWorkflowService(repos.WorkflowRepo, container.Capability)
	container.Audit = NewAuditService(repos.RequestRepo, repos.AuditRepo)
	container.Auth = NewAuthService(cfg, repos.EmployeeRepo)

	profile := domain.ProfileSimple
	if cfg.InboundFlowEnabled {
		profile = domain.ProfileExtended
	}
	container.Request = NewRequestService(
		repos.RequestRepo,
		container.Workflow,
		container.Employee,
		container.Capability,
		notifier,
		profile,
	)

	return container
}
