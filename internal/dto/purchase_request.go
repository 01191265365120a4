package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
)

// CreateRequestRequest creates a new draft purchase request.
type CreateRequestRequest struct {
	ItemName     string          `json:"itemName" binding:"required"`
	Quantity     int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required"`
	FeeAmount    decimal.Decimal `json:"feeAmount"`
	Organization string          `json:"organization" binding:"required,oneof=school company"`
	// PurchaserID defaults to the creator when omitted.
	PurchaserID string `json:"purchaserID"`
}

// ActionRequest is the payload of the single applyAction entry point.
type ActionRequest struct {
	Action domain.Action `json:"action" binding:"required,workflow_action"`
	// Reason is mandatory for reject, withdraw and transfer.
	Reason string `json:"reason"`
	// Comment is an optional free-text note recorded in the audit log.
	Comment string `json:"comment"`
	// ToApproverID is the transfer target.
	ToApproverID string `json:"toApproverID"`
	// Amount is the payment or reimbursement amount.
	Amount *decimal.Decimal `json:"amount"`
	// Note annotates issue / resolve_issue actions.
	Note string `json:"note"`
}

// ListRequestsParams filters and pages the request listing.
type ListRequestsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=draft pending_approval approved pending_inbound rejected paid cancelled"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	Offset int    `form:"offset" binding:"omitempty,gte=0"`
}

// RequestResponse is the outward shape of a purchase request.
type RequestResponse struct {
	RequestID           string          `json:"requestID"`
	RequestNumber       int64           `json:"requestNumber"`
	CreatorID           string          `json:"creatorID"`
	PurchaserID         string          `json:"purchaserID"`
	Organization        string          `json:"organization"`
	ItemName            string          `json:"itemName"`
	Quantity            int64           `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	FeeAmount           decimal.Decimal `json:"feeAmount"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	PaidAmount          decimal.Decimal `json:"paidAmount"`
	Status              string          `json:"status"`
	PendingApproverID   *string         `json:"pendingApproverID,omitempty"`
	PendingApproverRole *string         `json:"pendingApproverRole,omitempty"`
	SubmittedAt         *time.Time      `json:"submittedAt,omitempty"`
	ApprovedAt          *time.Time      `json:"approvedAt,omitempty"`
	RejectedAt          *time.Time      `json:"rejectedAt,omitempty"`
	PaidAt              *time.Time      `json:"paidAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	CreatedBy           string          `json:"createdBy"`
}

// ListRequestsResponse pages request summaries.
type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ToRequestResponse converts a domain.PurchaseRequest to its response DTO.
func ToRequestResponse(r *domain.PurchaseRequest) RequestResponse {
	return RequestResponse{
		RequestID:           r.RequestID,
		RequestNumber:       r.RequestNumber,
		CreatorID:           r.CreatorID,
		PurchaserID:         r.PurchaserID,
		Organization:        string(r.Organization),
		ItemName:            r.ItemName,
		Quantity:            r.Quantity,
		UnitPrice:           r.UnitPrice,
		FeeAmount:           r.FeeAmount,
		TotalAmount:         r.TotalAmount,
		PaidAmount:          r.PaidAmount,
		Status:              string(r.Status),
		PendingApproverID:   r.PendingApproverID,
		PendingApproverRole: r.PendingApproverRole,
		SubmittedAt:         r.SubmittedAt,
		ApprovedAt:          r.ApprovedAt,
		RejectedAt:          r.RejectedAt,
		PaidAt:              r.PaidAt,
		CreatedAt:           r.CreatedAt,
		CreatedBy:           r.CreatedBy,
	}
}

// ToRequestResponses converts a slice of domain requests.
func ToRequestResponses(requests []domain.PurchaseRequest) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToRequestResponse(&requests[i])
	}
	return responses
}
