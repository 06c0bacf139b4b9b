package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/dto"
	"github.com/propfolio/property_ledger/internal/middleware"
)

// --- Mock ChartAccountService ---
type MockChartAccountService struct {
	mock.Mock
}

var _ portssvc.ChartAccountSvcFacade = (*MockChartAccountService)(nil)

func (m *MockChartAccountService) CreateAccount(ctx context.Context, entityID string, req dto.CreateChartAccountRequest, creatorUserID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, entityID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountService) GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.ChartAccount, error) {
	args := m.Called(ctx, entityID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountService) GetAccountsByIDs(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.ChartAccount, error) {
	args := m.Called(ctx, entityID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountService) ListAccounts(ctx context.Context, entityID string, includeInactive bool) ([]domain.ChartAccount, error) {
	args := m.Called(ctx, entityID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartAccount), args.Error(1)
}

func (m *MockChartAccountService) DeactivateAccount(ctx context.Context, entityID string, accountID string, userID string) error {
	args := m.Called(ctx, entityID, accountID, userID)
	return args.Error(0)
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockChartAccountService
	entityID    string
	actorID     string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockService = new(MockChartAccountService)
	suite.entityID = uuid.NewString()
	suite.actorID = uuid.NewString()

	entity := suite.router.Group("/api/v1/entities/:entityID", middleware.ActorFromHeader())
	registerAccountRoutes(entity, suite.mockService)
}

func (suite *AccountHandlerTestSuite) serve(method, url string, body any, withActor bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if withActor {
		req.Header.Set(middleware.ActorHeader, suite.actorID)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateChartAccountRequest{
		Code:        "4000",
		Name:        "Rental Income",
		AccountType: domain.Revenue,
	}
	created := domain.ChartAccount{
		AccountID:   uuid.NewString(),
		EntityID:    suite.entityID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: time.Now().UTC(), CreatedBy: suite.actorID},
	}

	suite.mockService.On("CreateAccount", mock.Anything, suite.entityID, req, suite.actorID).Return(&created, nil).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/entities/%s/accounts", suite.entityID), req, true)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ChartAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal(domain.CreditNormal, resp.NormalSide)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingActorHeader() {
	req := dto.CreateChartAccountRequest{
		Code:        "4000",
		Name:        "Rental Income",
		AccountType: domain.Revenue,
	}

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/entities/%s/accounts", suite.entityID), req, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateMapsToConflict() {
	req := dto.CreateChartAccountRequest{
		Code:        "4000",
		Name:        "Rental Income",
		AccountType: domain.Revenue,
	}

	suite.mockService.On("CreateAccount", mock.Anything, suite.entityID, req, suite.actorID).
		Return(nil, fmt.Errorf("%w: account code 4000 already exists for entity", apperrors.ErrDuplicate)).Once()

	w := suite.serve(http.MethodPost, fmt.Sprintf("/api/v1/entities/%s/accounts", suite.entityID), req, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MalformedBody() {
	url := fmt.Sprintf("/api/v1/entities/%s/accounts", suite.entityID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader([]byte("{not json")))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, suite.actorID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()

	suite.mockService.On("GetAccountByID", mock.Anything, suite.entityID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, fmt.Sprintf("/api/v1/entities/%s/accounts/%s", suite.entityID, accountID), nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_IncludeInactive() {
	accounts := []domain.ChartAccount{
		{AccountID: uuid.NewString(), EntityID: suite.entityID, Code: "1010", Name: "Operating Checking", AccountType: domain.Asset, IsActive: true},
		{AccountID: uuid.NewString(), EntityID: suite.entityID, Code: "6200", Name: "Old Landscaping", AccountType: domain.Expense, IsActive: false},
	}

	suite.mockService.On("ListAccounts", mock.Anything, suite.entityID, true).Return(accounts, nil).Once()

	w := suite.serve(http.MethodGet, fmt.Sprintf("/api/v1/entities/%s/accounts?includeInactive=true", suite.entityID), nil, true)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Accounts []dto.ChartAccountResponse `json:"accounts"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_NoContent() {
	accountID := uuid.NewString()

	suite.mockService.On("DeactivateAccount", mock.Anything, suite.entityID, accountID, suite.actorID).Return(nil).Once()

	w := suite.serve(http.MethodDelete, fmt.Sprintf("/api/v1/entities/%s/accounts/%s", suite.entityID, accountID), nil, true)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
