package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/core/services"
	"github.com/propfolio/property_ledger/internal/dto"
)

// --- Mock ChartAccountRepository ---
type MockChartAccountRepository struct {
	mock.Mock
}

var _ portsrepo.ChartAccountRepositoryFacade = (*MockChartAccountRepository)(nil)

func (m *MockChartAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountRepository) FindAccountByCode(ctx context.Context, entityID string, code string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, entityID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartAccount, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountRepository) ListAccounts(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccount, error) {
	args := m.Called(ctx, entityID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountRepository) SaveAccount(ctx context.Context, account domain.ChartAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartAccountRepository) UpdateAccount(ctx context.Context, account domain.ChartAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockChartAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ChartAccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockChartAccountRepository
	service  portssvc.ChartAccountSvcFacade
	entityID string
	userID   string
}

func (suite *ChartAccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockChartAccountRepository)
	suite.service = services.NewChartAccountService(suite.mockRepo)
	suite.entityID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ChartAccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateChartAccountRequest{
		Code:        "4000",
		Name:        "Rental Income",
		AccountType: domain.Revenue,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.entityID, "4000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.ChartAccount")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.entityID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.entityID, account.EntityID)
	suite.Equal("4000", account.Code)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartAccountServiceTestSuite) TestCreateAccount_InvalidCode() {
	ctx := context.Background()
	req := dto.CreateChartAccountRequest{
		Code:        "40",
		Name:        "Too Short",
		AccountType: domain.Revenue,
	}

	_, err := suite.service.CreateAccount(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ChartAccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	existing := domain.ChartAccount{
		AccountID:   uuid.NewString(),
		EntityID:    suite.entityID,
		Code:        "4000",
		Name:        "Rental Income",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	req := dto.CreateChartAccountRequest{
		Code:        "4000",
		Name:        "Rental Income Again",
		AccountType: domain.Revenue,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.entityID, "4000").Return(&existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ChartAccountServiceTestSuite) TestCreateAccount_ParentInOtherEntity() {
	ctx := context.Background()
	parent := domain.ChartAccount{
		AccountID:   uuid.NewString(),
		EntityID:    uuid.NewString(), // different entity
		Code:        "4000",
		AccountType: domain.Revenue,
	}
	req := dto.CreateChartAccountRequest{
		Code:            "4100",
		Name:            "Late Fees",
		AccountType:     domain.Revenue,
		ParentAccountID: &parent.AccountID,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, suite.entityID, "4100").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.entityID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ChartAccountServiceTestSuite) TestGetAccountByID_WrongEntity() {
	ctx := context.Background()
	account := domain.ChartAccount{
		AccountID: uuid.NewString(),
		EntityID:  uuid.NewString(),
	}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.entityID, account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ChartAccountServiceTestSuite) TestGetAccountsByIDs_MissingID() {
	ctx := context.Background()
	known := domain.ChartAccount{AccountID: uuid.NewString(), EntityID: suite.entityID}
	unknownID := uuid.NewString()
	ids := []string{known.AccountID, unknownID}

	suite.mockRepo.On("FindAccountsByIDs", ctx, ids).Return(map[string]domain.ChartAccount{
		known.AccountID: known,
	}, nil).Once()

	_, err := suite.service.GetAccountsByIDs(ctx, suite.entityID, ids)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ChartAccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := domain.ChartAccount{
		AccountID: uuid.NewString(),
		EntityID:  suite.entityID,
		IsActive:  true,
	}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.entityID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ChartAccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	account := domain.ChartAccount{
		AccountID: uuid.NewString(),
		EntityID:  suite.entityID,
		IsActive:  false,
	}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.entityID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChartAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartAccountServiceTestSuite))
}
