package repositories

// RepositoryProvider bundles all repository implementations for service wiring.
type RepositoryProvider struct {
	RequestRepo    RequestRepositoryFacade
	WorkflowRepo   WorkflowConfigRepository
	AuditRepo      AuditLogReader
	EmployeeRepo   EmployeeRepository
	CapabilityRepo CapabilityRepository
}
