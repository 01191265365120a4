package services

// ServiceContainer bundles all service facades for handler wiring.
type ServiceContainer struct {
	Request    RequestSvcFacade
	Workflow   WorkflowSvcFacade
	Audit      AuditSvcFacade
	Employee   EmployeeSvcFacade
	Auth       AuthSvcFacade
	Capability CapabilityResolver
}
