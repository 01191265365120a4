package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	portsrepo "github.com/opsledger/purchase_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
	"github.com/opsledger/purchase_mgmt_app/internal/middleware"
	"github.com/opsledger/purchase_mgmt_app/internal/platform/config"
	"github.com/opsledger/purchase_mgmt_app/internal/utils"
)

// authService authenticates employees and issues bearer tokens.
type authService struct {
	cfg          *config.Config
	employeeRepo portsrepo.EmployeeRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(cfg *config.Config, employeeRepo portsrepo.EmployeeRepository) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg, employeeRepo: employeeRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and returns a signed token response. Unknown
// usernames and bad passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
		}
		logger.Error("Failed to look up employee for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if !employee.IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
	}
	if !utils.CheckPasswordHash(req.Password, employee.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
	}

	token, err := utils.GenerateJWT(employee.EmployeeID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("Employee logged in", slog.String("employee_id", employee.EmployeeID))
	return &dto.LoginResponse{
		Token:      token,
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
		Role:       employee.Role,
	}, nil
}
