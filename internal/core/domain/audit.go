package domain

import "time"

// AuditLogEntry is one immutable row in the append-only transition ledger.
// The engine is the only writer; entries are never mutated or deleted.
type AuditLogEntry struct {
	EntryID      int64         `json:"entryID"`
	RequestID    string        `json:"requestID"`
	Action       Action        `json:"action"`
	OperatorID   string        `json:"operatorID"`
	OperatorName string        `json:"operatorName"`
	FromStatus   RequestStatus `json:"fromStatus"`
	ToStatus     RequestStatus `json:"toStatus"`
	Comment      string        `json:"comment,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// TimelineStep labels the workflow stage a log entry belongs to.
type TimelineStep string

const (
	StepSubmission TimelineStep = "submission"
	StepApproval   TimelineStep = "approval"
	StepTransfer   TimelineStep = "transfer"
	StepInbound    TimelineStep = "inbound"
	StepPayment    TimelineStep = "payment"
	StepOther      TimelineStep = "other"
)

// TimelineStepFor maps a log entry onto its timeline step. It is a pure
// function of (action, fromStatus, toStatus): re-rendering the same log set
// must always yield the same grouping.
func TimelineStepFor(action Action, from, to RequestStatus) TimelineStep {
	switch action {
	case ActionSubmit, ActionWithdraw, ActionCancel:
		return StepSubmission
	case ActionApprove, ActionReject:
		return StepApproval
	case ActionTransfer:
		return StepTransfer
	case ActionIssue, ActionResolveIssue:
		return StepInbound
	case ActionPay, ActionSubmitReimbursement:
		return StepPayment
	default:
		return StepOther
	}
}

// TimelineGroup is one contiguous run of log entries sharing a timeline step.
type TimelineGroup struct {
	Step    TimelineStep    `json:"step"`
	Entries []AuditLogEntry `json:"entries"`
}

// BuildTimeline groups entries (assumed ordered ascending by timestamp) into
// contiguous runs per timeline step. Deterministic for a fixed input order.
func BuildTimeline(entries []AuditLogEntry) []TimelineGroup {
	groups := make([]TimelineGroup, 0, len(entries))
	for _, entry := range entries {
		step := TimelineStepFor(entry.Action, entry.FromStatus, entry.ToStatus)
		if n := len(groups); n > 0 && groups[n-1].Step == step {
			groups[n-1].Entries = append(groups[n-1].Entries, entry)
			continue
		}
		groups = append(groups, TimelineGroup{Step: step, Entries: []AuditLogEntry{entry}})
	}
	return groups
}
