package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
	"github.com/propfolio/property_ledger/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, entityID string, accountID string, asOf *time.Time) (*portsrepo.AccountActivity, error) {
	args := m.Called(ctx, entityID, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, entityID string, asOf time.Time) ([]portsrepo.AccountActivity, error) {
	args := m.Called(ctx, entityID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetIncomeStatementData(ctx context.Context, entityID string, from, to time.Time) ([]portsrepo.AccountActivity, error) {
	args := m.Called(ctx, entityID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, entityID string, asOf time.Time) ([]portsrepo.AccountActivity, error) {
	args := m.Called(ctx, entityID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetCashFlowData(ctx context.Context, entityID string, from, to time.Time) ([]portsrepo.AccountActivity, error) {
	args := m.Called(ctx, entityID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountActivity), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
	entityID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.entityID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) activity(accountType domain.AccountType, code, name, debit, credit string) portsrepo.AccountActivity {
	return portsrepo.AccountActivity{
		Account: domain.ChartAccount{
			AccountID:   uuid.NewString(),
			EntityID:    suite.entityID,
			Code:        code,
			Name:        name,
			AccountType: accountType,
			IsActive:    true,
		},
		TotalDebit:  decimal.RequireFromString(debit),
		TotalCredit: decimal.RequireFromString(credit),
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestAccountBalance_DebitNormal() {
	ctx := context.Background()
	cash := suite.activity(domain.Asset, "1010", "Operating Checking", "5000.00", "1200.00")

	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, cash.Account.AccountID, (*time.Time)(nil)).Return(&cash, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.entityID, cash.Account.AccountID, nil)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("3800.00")), "asset balance is debits minus credits, got %s", balance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_CreditNormal() {
	ctx := context.Background()
	rent := suite.activity(domain.Revenue, "4000", "Rental Income", "0", "4500.00")
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, rent.Account.AccountID, &asOf).Return(&rent, nil).Once()

	balance, err := suite.service.AccountBalance(ctx, suite.entityID, rent.Account.AccountID, &asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.RequireFromString("4500.00")))
}

func (suite *ReportingServiceTestSuite) TestAccountBalance_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("GetAccountActivity", ctx, suite.entityID, accountID, (*time.Time)(nil)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AccountBalance(ctx, suite.entityID, accountID, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	activities := []portsrepo.AccountActivity{
		suite.activity(domain.Asset, "1010", "Operating Checking", "4500.00", "250.00"),
		suite.activity(domain.Revenue, "4000", "Rental Income", "0", "4500.00"),
		suite.activity(domain.Expense, "6100", "Repairs and Maintenance", "250.00", "0"),
		suite.activity(domain.Equity, "3000", "Owner Equity", "0", "0"), // no activity
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.entityID, asOf).Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.entityID, asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	// The zero-balance equity account is omitted
	suite.Len(report.Rows, 3)
	suite.True(report.TotalDebit.Equal(decimal.RequireFromString("4500.00")), "got %s", report.TotalDebit)
	suite.True(report.TotalCredit.Equal(decimal.RequireFromString("4500.00")), "got %s", report.TotalCredit)

	// Checking: 4500 debits less 250 credits nets to a 4250 debit balance
	suite.True(report.Rows[0].Debit.Equal(decimal.RequireFromString("4250.00")))
	suite.True(report.Rows[0].Credit.IsZero())
	suite.True(report.Rows[1].Credit.Equal(decimal.RequireFromString("4500.00")))
	suite.True(report.Rows[2].Debit.Equal(decimal.RequireFromString("250.00")))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NegativeBalanceFlipsColumn() {
	ctx := context.Background()
	asOf := time.Now().UTC()
	// Overdrawn asset: more credits than debits
	activities := []portsrepo.AccountActivity{
		suite.activity(domain.Asset, "1010", "Operating Checking", "100.00", "400.00"),
		suite.activity(domain.Revenue, "4000", "Rental Income", "300.00", "0"),
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.entityID, asOf).Return(activities, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.entityID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	// The overdrawn asset shows in the credit column
	suite.True(report.Rows[0].Debit.IsZero())
	suite.True(report.Rows[0].Credit.Equal(decimal.RequireFromString("300.00")))
	// The debit-side revenue (a contra balance) shows in the debit column
	suite.True(report.Rows[1].Debit.Equal(decimal.RequireFromString("300.00")))
	suite.True(report.TotalDebit.Equal(report.TotalCredit))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_OutOfBalance() {
	ctx := context.Background()
	asOf := time.Now().UTC()
	// Corrupted: a lone debit with no matching credit anywhere
	activities := []portsrepo.AccountActivity{
		suite.activity(domain.Asset, "1010", "Operating Checking", "100.00", "0"),
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.entityID, asOf).Return(activities, nil).Once()

	_, err := suite.service.TrialBalance(ctx, suite.entityID, asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
}

func (suite *ReportingServiceTestSuite) TestFinancialSummary_Balanced() {
	ctx := context.Background()
	activities := []portsrepo.AccountActivity{
		suite.activity(domain.Asset, "1010", "Operating Checking", "6000.00", "1750.00"),
		suite.activity(domain.Liability, "2100", "Security Deposits Held", "0", "1500.00"),
		suite.activity(domain.Revenue, "4000", "Rental Income", "0", "4500.00"),
		suite.activity(domain.Expense, "6100", "Repairs and Maintenance", "1750.00", "0"),
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.entityID, mock.AnythingOfType("time.Time")).Return(activities, nil).Once()

	summary, err := suite.service.FinancialSummary(ctx, suite.entityID)

	suite.Require().NoError(err)
	suite.True(summary.TotalAssets.Equal(decimal.RequireFromString("4250.00")))
	suite.True(summary.TotalLiabilities.Equal(decimal.RequireFromString("1500.00")))
	suite.True(summary.NetIncome.Equal(decimal.RequireFromString("2750.00")))
	suite.True(summary.IsBalanced, "assets 4250 = liabilities 1500 + equity 0 + net income 2750")
	suite.True(summary.Discrepancy.IsZero())
}

func (suite *ReportingServiceTestSuite) TestFinancialSummary_Unbalanced() {
	ctx := context.Background()
	// A lone asset balance with nothing on the other side of the equation
	activities := []portsrepo.AccountActivity{
		suite.activity(domain.Asset, "1010", "Operating Checking", "100.00", "0"),
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.entityID, mock.AnythingOfType("time.Time")).Return(activities, nil).Once()

	summary, err := suite.service.FinancialSummary(ctx, suite.entityID)

	// Surfaced, not corrected: the summary still comes back with the discrepancy
	suite.Require().NoError(err)
	suite.False(summary.IsBalanced)
	suite.True(summary.Discrepancy.Equal(decimal.RequireFromString("100.00")))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement() {
	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	activities := []portsrepo.AccountActivity{
		suite.activity(domain.Revenue, "4000", "Rental Income", "0", "4500.00"),
		suite.activity(domain.Revenue, "4100", "Late Fees", "0", "50.00"),
		suite.activity(domain.Expense, "6100", "Repairs and Maintenance", "1200.00", "0"),
	}

	suite.mockRepo.On("GetIncomeStatementData", ctx, suite.entityID, from, to).Return(activities, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, suite.entityID, from, to)

	suite.Require().NoError(err)
	suite.Len(report.Revenue, 2)
	suite.Len(report.Expenses, 1)
	suite.True(report.TotalRevenue.Equal(decimal.RequireFromString("4550.00")))
	suite.True(report.TotalExpenses.Equal(decimal.RequireFromString("1200.00")))
	suite.True(report.NetIncome.Equal(decimal.RequireFromString("3350.00")))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	activities := []portsrepo.AccountActivity{
		suite.activity(domain.Asset, "1010", "Operating Checking", "5000.00", "0"),
		suite.activity(domain.Liability, "2100", "Security Deposits Held", "0", "3000.00"),
		suite.activity(domain.Equity, "3000", "Owner Equity", "0", "2000.00"),
	}

	suite.mockRepo.On("GetBalanceSheetData", ctx, suite.entityID, asOf).Return(activities, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.entityID, asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.RequireFromString("5000.00")))
	suite.True(report.TotalLiabilities.Equal(decimal.RequireFromString("3000.00")))
	suite.True(report.TotalEquity.Equal(decimal.RequireFromString("2000.00")))
	suite.True(report.TotalLiabilitiesAndEquity.Equal(report.TotalAssets))
}

func (suite *ReportingServiceTestSuite) TestCashFlowStatement_Buckets() {
	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	rent := suite.activity(domain.Revenue, "4000", "Rental Income", "0", "4500.00")
	repairs := suite.activity(domain.Expense, "6100", "Repairs and Maintenance", "1200.00", "0")
	equipment := suite.activity(domain.Asset, "1500", "Equipment", "800.00", "0")
	mortgage := suite.activity(domain.Liability, "2500", "Mortgage Payable", "650.00", "0")
	idle := suite.activity(domain.Asset, "1020", "Savings", "0", "0")

	activities := []portsrepo.AccountActivity{rent, repairs, equipment, mortgage, idle}
	suite.mockRepo.On("GetCashFlowData", ctx, suite.entityID, from, to).Return(activities, nil).Once()

	report, err := suite.service.CashFlowStatement(ctx, suite.entityID, from, to)

	suite.Require().NoError(err)
	// Operating: rent in (+4500) less repairs paid (-1200)
	suite.True(report.Operating.Equal(decimal.RequireFromString("3300.00")), "got %s", report.Operating)
	// Investing: equipment purchase (-800)
	suite.True(report.Investing.Equal(decimal.RequireFromString("-800.00")), "got %s", report.Investing)
	// Financing: mortgage principal paid down (-650)
	suite.True(report.Financing.Equal(decimal.RequireFromString("-650.00")), "got %s", report.Financing)
	suite.True(report.NetCashFlow.Equal(decimal.RequireFromString("1850.00")), "got %s", report.NetCashFlow)
}

func (suite *ReportingServiceTestSuite) TestCashFlowStatement_ExplicitCategoryWins() {
	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	// Named like a financing account but tagged Investing explicitly
	tagged := suite.activity(domain.Liability, "2600", "Equipment Loan", "0", "900.00")
	tagged.Account.CashFlowCategory = domain.CashFlowInvesting

	suite.mockRepo.On("GetCashFlowData", ctx, suite.entityID, from, to).Return([]portsrepo.AccountActivity{tagged}, nil).Once()

	report, err := suite.service.CashFlowStatement(ctx, suite.entityID, from, to)

	suite.Require().NoError(err)
	suite.True(report.Investing.Equal(decimal.RequireFromString("900.00")))
	suite.True(report.Financing.IsZero())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

// --- Classifier heuristics ---

func TestDefaultCashFlowClassifier(t *testing.T) {
	classifier := services.DefaultCashFlowClassifier{}

	tests := []struct {
		name    string
		account domain.ChartAccount
		want    domain.CashFlowCategory
	}{
		{"explicit category wins", domain.ChartAccount{Name: "Building Fund", CashFlowCategory: domain.CashFlowFinancing}, domain.CashFlowFinancing},
		{"revenue is operating", domain.ChartAccount{Name: "Rental Income", AccountType: domain.Revenue}, domain.CashFlowOperating},
		{"expense is operating", domain.ChartAccount{Name: "Repairs", AccountType: domain.Expense}, domain.CashFlowOperating},
		{"equipment is investing", domain.ChartAccount{Name: "Office Equipment", AccountType: domain.Asset}, domain.CashFlowInvesting},
		{"building is investing", domain.ChartAccount{Name: "Building Improvements", AccountType: domain.Asset}, domain.CashFlowInvesting},
		{"mortgage is financing", domain.ChartAccount{Name: "Mortgage Payable", AccountType: domain.Liability}, domain.CashFlowFinancing},
		{"owner equity is financing", domain.ChartAccount{Name: "Owner Equity", AccountType: domain.Equity}, domain.CashFlowFinancing},
		{"plain asset falls back to operating", domain.ChartAccount{Name: "Prepaid Insurance", AccountType: domain.Asset}, domain.CashFlowOperating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.account)
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.account.Name, got, tt.want)
			}
		})
	}
}
