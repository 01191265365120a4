package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
)

// PgxAuditRepository reads the append-only transition ledger. Inserts happen
// only through PgxRequestRepository.ApplyTransition.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogReader = (*PgxAuditRepository)(nil)

// ListEntriesByRequest returns every log entry for a request. Ordering is by
// entry id rather than timestamp so same-millisecond entries keep insert order.
func (r *PgxAuditRepository) ListEntriesByRequest(ctx context.Context, requestID string, ascending bool) ([]domain.AuditLogEntry, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`
		SELECT entry_id, request_id, action, operator_id, operator_name,
		       from_status, to_status, comment, created_at
		FROM purchase_audit_log
		WHERE request_id = $1
		ORDER BY entry_id %s;
	`, direction)

	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries for request %s: %w", requestID, err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var entry domain.AuditLogEntry
		err := rows.Scan(
			&entry.EntryID,
			&entry.RequestID,
			&entry.Action,
			&entry.OperatorID,
			&entry.OperatorName,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.Comment,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entry rows: %w", err)
	}
	return entries, nil
}
