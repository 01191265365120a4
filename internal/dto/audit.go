package dto

import (
	"time"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// AuditLogEntryResponse is one transition in a request's history.
type AuditLogEntryResponse struct {
	EntryID      int64     `json:"entryID"`
	RequestID    string    `json:"requestID"`
	Action       string    `json:"action"`
	OperatorID   string    `json:"operatorID"`
	OperatorName string    `json:"operatorName"`
	FromStatus   string    `json:"fromStatus"`
	ToStatus     string    `json:"toStatus"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListLogsResponse carries a request's audit entries.
type ListLogsResponse struct {
	Entries []AuditLogEntryResponse `json:"entries"`
}

// TimelineGroupResponse is one grouped step of the flow timeline.
type TimelineGroupResponse struct {
	Step    string                  `json:"step"`
	Entries []AuditLogEntryResponse `json:"entries"`
}

// TimelineResponse is the grouped flow-timeline view, ascending by time.
type TimelineResponse struct {
	Groups []TimelineGroupResponse `json:"groups"`
}

// ToAuditLogEntryResponse converts a domain log entry.
func ToAuditLogEntryResponse(e *domain.AuditLogEntry) AuditLogEntryResponse {
	return AuditLogEntryResponse{
		EntryID:      e.EntryID,
		RequestID:    e.RequestID,
		Action:       string(e.Action),
		OperatorID:   e.OperatorID,
		OperatorName: e.OperatorName,
		FromStatus:   string(e.FromStatus),
		ToStatus:     string(e.ToStatus),
		Comment:      e.Comment,
		CreatedAt:    e.CreatedAt,
	}
}

// ToAuditLogEntryResponses converts a slice of domain log entries.
func ToAuditLogEntryResponses(entries []domain.AuditLogEntry) []AuditLogEntryResponse {
	responses := make([]AuditLogEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToAuditLogEntryResponse(&entries[i])
	}
	return responses
}

// ToTimelineResponse converts grouped domain timeline groups.
func ToTimelineResponse(groups []domain.TimelineGroup) TimelineResponse {
	resp := TimelineResponse{Groups: make([]TimelineGroupResponse, len(groups))}
	for i, g := range groups {
		resp.Groups[i] = TimelineGroupResponse{
			Step:    string(g.Step),
			Entries: ToAuditLogEntryResponses(g.Entries),
		}
	}
	return resp
}
