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

// PgxEmployeeRepository reads employee records and the role capability catalog.
type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) *PgxEmployeeRepository {
	return &PgxEmployeeRepository{BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.EmployeeRepository   = (*PgxEmployeeRepository)(nil)
	_ portsrepo.CapabilityRepository = (*PgxEmployeeRepository)(nil)
)

const employeeColumns = `
	employee_id, username, name, role, is_active, password_hash,
	created_at, created_by, last_updated_at, last_updated_by`

// FindEmployeeByID retrieves an employee by id.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	return r.findEmployee(ctx, query, employeeID)
}

// FindEmployeeByUsername retrieves an employee by login name.
func (r *PgxEmployeeRepository) FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE username = $1;`
	return r.findEmployee(ctx, query, username)
}

func (r *PgxEmployeeRepository) findEmployee(ctx context.Context, query string, arg string) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&employee.EmployeeID,
		&employee.Username,
		&employee.Name,
		&employee.Role,
		&employee.IsActive,
		&employee.PasswordHash,
		&employee.CreatedAt,
		&employee.CreatedBy,
		&employee.LastUpdatedAt,
		&employee.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return &employee, nil
}

// ListCapabilitiesByRole returns the capabilities granted to a role.
func (r *PgxEmployeeRepository) ListCapabilitiesByRole(ctx context.Context, role string) ([]domain.Capability, error) {
	query := `SELECT capability FROM role_capabilities WHERE role = $1 ORDER BY capability;`

	rows, err := r.Pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query capabilities for role %s: %w", role, err)
	}
	defer rows.Close()

	capabilities := []domain.Capability{}
	for rows.Next() {
		var capability domain.Capability
		if err := rows.Scan(&capability); err != nil {
			return nil, fmt.Errorf("failed to scan capability row: %w", err)
		}
		capabilities = append(capabilities, capability)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate capability rows: %w", err)
	}
	return capabilities, nil
}
