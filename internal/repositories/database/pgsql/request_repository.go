package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
)

// PgxRequestRepository persists purchase requests and their audit trail.
type PgxRequestRepository struct {
	BaseRepository
}

// newPgxRequestRepository creates a new repository for purchase request data.
func newPgxRequestRepository(pool *pgxpool.Pool) *PgxRequestRepository {
	return &PgxRequestRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

const requestColumns = `
	request_id, request_number, creator_id, purchaser_id, organization,
	item_name, quantity, unit_price, fee_amount, total_amount, paid_amount,
	status, pending_approver_id, pending_approver_role, node_index, version,
	submitted_at, submitted_by, approved_at, approved_by,
	rejected_at, rejected_by, paid_at, paid_by,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveRequest persists a new draft and assigns its sequential number.
func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request *domain.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (
			request_id, creator_id, purchaser_id, organization,
			item_name, quantity, unit_price, fee_amount, total_amount, paid_amount,
			status, node_index, version,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING request_number;
	`
	err := r.Pool.QueryRow(ctx, query,
		request.RequestID,
		request.CreatorID,
		request.PurchaserID,
		request.Organization,
		request.ItemName,
		request.Quantity,
		request.UnitPrice,
		request.FeeAmount,
		request.TotalAmount,
		request.PaidAmount,
		request.Status,
		request.NodeIndex,
		request.Version,
		request.CreatedAt,
		request.CreatedBy,
		request.LastUpdatedAt,
		request.LastUpdatedBy,
	).Scan(&request.RequestNumber)
	if err != nil {
		return fmt.Errorf("failed to insert purchase request %s: %w", request.RequestID, err)
	}
	return nil
}

// FindRequestByID retrieves a request by its id.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM purchase_requests WHERE request_id = $1;`

	request, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request by ID %s: %w", requestID, err)
	}
	return request, nil
}

// ListRequests retrieves requests ordered by request number descending.
func (r *PgxRequestRepository) ListRequests(ctx context.Context, status domain.RequestStatus, limit, offset int) ([]domain.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM purchase_requests`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY request_number DESC LIMIT %d OFFSET %d;`, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.PurchaseRequest{}
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate request rows: %w", err)
	}
	return requests, nil
}

// ApplyTransition applies a computed transition atomically: the conditional
// request update and the audit insert share one transaction. When the request
// no longer holds the expected status and version the race was lost and
// apperrors.ErrInvalidTransition is returned with nothing written.
func (r *PgxRequestRepository) ApplyTransition(ctx context.Context, request domain.PurchaseRequest, expectedStatus domain.RequestStatus, expectedVersion int64, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updateQuery := `
		UPDATE purchase_requests SET
			paid_amount = $1,
			status = $2,
			pending_approver_id = $3,
			pending_approver_role = $4,
			node_index = $5,
			version = version + 1,
			submitted_at = $6, submitted_by = $7,
			approved_at = $8, approved_by = $9,
			rejected_at = $10, rejected_by = $11,
			paid_at = $12, paid_by = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE request_id = $16 AND status = $17 AND version = $18;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		request.PaidAmount,
		request.Status,
		request.PendingApproverID,
		request.PendingApproverRole,
		request.NodeIndex,
		request.SubmittedAt, request.SubmittedBy,
		request.ApprovedAt, request.ApprovedBy,
		request.RejectedAt, request.RejectedBy,
		request.PaidAt, request.PaidBy,
		request.LastUpdatedAt, request.LastUpdatedBy,
		request.RequestID,
		expectedStatus,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update request %s: %w", request.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		// Another transition won the race; nothing was written.
		return apperrors.ErrInvalidTransition
	}

	insertQuery := `
		INSERT INTO purchase_audit_log (
			request_id, action, operator_id, operator_name,
			from_status, to_status, comment, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		entry.RequestID,
		entry.Action,
		entry.OperatorID,
		entry.OperatorName,
		entry.FromStatus,
		entry.ToStatus,
		entry.Comment,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry for request %s: %w", request.RequestID, err)
	}

	return r.Commit(ctx, tx)
}

// scanRequest scans one purchase request row in requestColumns order.
func scanRequest(row pgx.Row) (*domain.PurchaseRequest, error) {
	var request domain.PurchaseRequest
	err := row.Scan(
		&request.RequestID,
		&request.RequestNumber,
		&request.CreatorID,
		&request.PurchaserID,
		&request.Organization,
		&request.ItemName,
		&request.Quantity,
		&request.UnitPrice,
		&request.FeeAmount,
		&request.TotalAmount,
		&request.PaidAmount,
		&request.Status,
		&request.PendingApproverID,
		&request.PendingApproverRole,
		&request.NodeIndex,
		&request.Version,
		&request.SubmittedAt,
		&request.SubmittedBy,
		&request.ApprovedAt,
		&request.ApprovedBy,
		&request.RejectedAt,
		&request.RejectedBy,
		&request.PaidAt,
		&request.PaidBy,
		&request.CreatedAt,
		&request.CreatedBy,
		&request.LastUpdatedAt,
		&request.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}
