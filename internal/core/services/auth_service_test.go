package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/opsledger/purchase_mgmt_app/internal/apperrors"
	"github.com/opsledger/purchase_mgmt_app/internal/core/domain"
	"github.com/opsledger/purchase_mgmt_app/internal/core/services"
	portssvc "github.com/opsledger/purchase_mgmt_app/internal/core/ports/services"
	"github.com/opsledger/purchase_mgmt_app/internal/dto"
	"github.com/opsledger/purchase_mgmt_app/internal/platform/config"
	"github.com/opsledger/purchase_mgmt_app/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockEmployeeRepository
	service  portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockEmployeeRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "purchase-mgmt-app-test",
	}
	suite.service = services.NewAuthService(cfg, suite.mockRepo)
}

func (suite *AuthServiceTestSuite) employeeWithPassword(password string) *domain.Employee {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.Employee{
		EmployeeID:   "emp-1",
		Username:     "jdoe",
		Name:         "J. Doe",
		Role:         "EMPLOYEE",
		IsActive:     true,
		PasswordHash: hash,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	employee := suite.employeeWithPassword("hunter2")
	suite.mockRepo.On("FindEmployeeByUsername", ctx, "jdoe").Return(employee, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "jdoe", Password: "hunter2"})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal("emp-1", resp.EmployeeID)
	suite.Equal("EMPLOYEE", resp.Role)

	claims, err := utils.ParseAndValidateJWT(resp.Token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("emp-1", claims.Subject)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	employee := suite.employeeWithPassword("hunter2")
	suite.mockRepo.On("FindEmployeeByUsername", ctx, "jdoe").Return(employee, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "jdoe", Password: "wrong"})

	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUserIndistinguishable() {
	ctx := context.Background()
	suite.mockRepo.On("FindEmployeeByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	// The caller cannot tell a missing user from a bad password.
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveEmployee() {
	ctx := context.Background()
	employee := suite.employeeWithPassword("hunter2")
	employee.IsActive = false
	suite.mockRepo.On("FindEmployeeByUsername", ctx, "jdoe").Return(employee, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Username: "jdoe", Password: "hunter2"})

	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
