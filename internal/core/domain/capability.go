package domain

// Capability is a named permission consulted before every transition. The
// engine never branches on role names directly; roles map to capabilities in
// the permission catalog and the state machine only asks yes/no questions.
type Capability string

const (
	CapSubmitRequest   Capability = "request:submit"
	CapApproveRequest  Capability = "request:approve"
	CapTransferRequest Capability = "request:transfer"
	CapPayRequest      Capability = "request:pay"
	CapManageInbound   Capability = "inbound:manage"
	CapManageWorkflow  Capability = "workflow:manage"
	CapAdminOverride   Capability = "request:admin_override"
	CapViewLogs        Capability = "logs:view"
)

// CapabilityFor maps an action class to the capability it requires.
// Ownership checks (submit/withdraw/cancel by the owner, reimbursement by the
// purchaser) are enforced separately by the state machine.
func CapabilityFor(a Action) Capability {
	switch a {
	case ActionSubmit, ActionWithdraw, ActionCancel, ActionDuplicate:
		return CapSubmitRequest
	case ActionApprove, ActionReject:
		return CapApproveRequest
	case ActionTransfer:
		return CapTransferRequest
	case ActionPay:
		return CapPayRequest
	case ActionSubmitReimbursement:
		return CapSubmitRequest
	case ActionIssue, ActionResolveIssue:
		return CapManageInbound
	default:
		return ""
	}
}
