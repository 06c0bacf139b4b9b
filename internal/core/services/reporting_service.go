package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propfolio/property_ledger/internal/apperrors"
	"github.com/propfolio/property_ledger/internal/core/domain"
	portsrepo "github.com/propfolio/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/propfolio/property_ledger/internal/core/ports/services"
)

// reportingService implements the balance calculator and statement generator.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	classifier    portssvc.CashFlowClassifier
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithCashFlowClassifier overrides the default cash-flow classification policy.
func WithCashFlowClassifier(classifier portssvc.CashFlowClassifier) ReportingServiceOption {
	return func(s *reportingService) {
		s.classifier = classifier
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		reportingRepo: repo,
		classifier:    DefaultCashFlowClassifier{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DefaultCashFlowClassifier honors an explicit account-level cash-flow
// category first, then falls back to the name heuristic inherited from the
// books: Revenue/Expense activity is Operating, equipment/building/investment
// accounts are Investing, loan/mortgage/equity accounts are Financing.
type DefaultCashFlowClassifier struct{}

var _ portssvc.CashFlowClassifier = DefaultCashFlowClassifier{}

func (DefaultCashFlowClassifier) Classify(account domain.ChartAccount) domain.CashFlowCategory {
	if account.CashFlowCategory != domain.CashFlowUnset {
		return account.CashFlowCategory
	}
	if account.AccountType == domain.Revenue || account.AccountType == domain.Expense {
		return domain.CashFlowOperating
	}
	name := strings.ToLower(account.Name)
	for _, keyword := range []string{"equipment", "building", "investment"} {
		if strings.Contains(name, keyword) {
			return domain.CashFlowInvesting
		}
	}
	for _, keyword := range []string{"loan", "mortgage", "equity"} {
		if strings.Contains(name, keyword) {
			return domain.CashFlowFinancing
		}
	}
	return domain.CashFlowOperating
}

// normalBalance folds raw debit/credit totals into a balance on the account's
// normal side: debit-normal accounts grow with debits, credit-normal accounts
// grow with credits.
func normalBalance(activity portsrepo.AccountActivity) decimal.Decimal {
	if activity.Account.AccountType.NormalSide() == domain.DebitNormal {
		return activity.TotalDebit.Sub(activity.TotalCredit)
	}
	return activity.TotalCredit.Sub(activity.TotalDebit)
}

// AccountBalance derives one account's balance from its entry history.
func (s *reportingService) AccountBalance(ctx context.Context, entityID string, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, entityID, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to retrieve account activity: %w", err)
	}
	return normalBalance(*activity), nil
}

// TrialBalance lists every active account's balance split into debit/credit
// columns according to its normal side, plus a totals row. The totals are
// re-validated: a mismatch means corrupted entries upstream and is surfaced
// as ErrIntegrity rather than silently corrected.
func (s *reportingService) TrialBalance(ctx context.Context, entityID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	activities, err := s.reportingRepo.GetTrialBalanceData(ctx, entityID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(activities)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, activity := range activities {
		balance := normalBalance(activity)
		if balance.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{
			AccountID:   activity.Account.AccountID,
			AccountCode: activity.Account.Code,
			AccountName: activity.Account.Name,
			AccountType: activity.Account.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		// A negative balance flips to the opposite column
		side := activity.Account.AccountType.NormalSide()
		if balance.IsNegative() {
			balance = balance.Neg()
			if side == domain.DebitNormal {
				side = domain.CreditNormal
			} else {
				side = domain.DebitNormal
			}
		}
		if side == domain.DebitNormal {
			row.Debit = balance
		} else {
			row.Credit = balance
		}

		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	if !report.TotalDebit.Equal(report.TotalCredit) {
		diff := report.TotalDebit.Sub(report.TotalCredit)
		s.LogError(ctx, apperrors.ErrIntegrity, "Trial balance columns do not match",
			slog.String("entity_id", entityID),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()),
			slog.String("difference", diff.String()))
		return nil, fmt.Errorf("%w: trial balance out of balance by %s", apperrors.ErrIntegrity, diff.String())
	}

	s.LogInfo(ctx, "Trial balance generated", slog.String("entity_id", entityID), slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// FinancialSummary aggregates the trial balance into the five account classes
// and checks the accounting equation Assets = Liabilities + Equity + NetIncome.
// An unbalanced result is logged as a data-integrity alert and returned with
// IsBalanced=false so the caller can surface it; it is never corrected here.
func (s *reportingService) FinancialSummary(ctx context.Context, entityID string) (*domain.FinancialSummary, error) {
	activities, err := s.reportingRepo.GetTrialBalanceData(ctx, entityID, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve financial summary data", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to retrieve financial summary data: %w", err)
	}

	summary := &domain.FinancialSummary{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
	}

	for _, activity := range activities {
		balance := normalBalance(activity)
		switch activity.Account.AccountType {
		case domain.Asset:
			summary.TotalAssets = summary.TotalAssets.Add(balance)
		case domain.Liability:
			summary.TotalLiabilities = summary.TotalLiabilities.Add(balance)
		case domain.Equity:
			summary.TotalEquity = summary.TotalEquity.Add(balance)
		case domain.Revenue:
			summary.TotalRevenue = summary.TotalRevenue.Add(balance)
		case domain.Expense:
			summary.TotalExpenses = summary.TotalExpenses.Add(balance)
		}
	}

	summary.NetIncome = summary.TotalRevenue.Sub(summary.TotalExpenses)
	summary.Discrepancy = summary.TotalAssets.
		Sub(summary.TotalLiabilities).
		Sub(summary.TotalEquity).
		Sub(summary.NetIncome)
	summary.IsBalanced = summary.Discrepancy.IsZero()

	if !summary.IsBalanced {
		s.LogError(ctx, apperrors.ErrIntegrity, "Accounting equation does not hold",
			slog.String("entity_id", entityID),
			slog.String("discrepancy", summary.Discrepancy.String()))
	}

	return summary, nil
}

// IncomeStatement sums Revenue and Expense balances restricted to a period.
func (s *reportingService) IncomeStatement(ctx context.Context, entityID string, from, to time.Time) (*domain.IncomeStatementReport, error) {
	activities, err := s.reportingRepo.GetIncomeStatementData(ctx, entityID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve income statement data", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	report := &domain.IncomeStatementReport{
		From:          from,
		To:            to,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, activity := range activities {
		line := domain.AccountAmount{
			AccountID: activity.Account.AccountID,
			Code:      activity.Account.Code,
			Name:      activity.Account.Name,
			NetAmount: normalBalance(activity),
		}
		switch activity.Account.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, line)
			report.TotalRevenue = report.TotalRevenue.Add(line.NetAmount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, line)
			report.TotalExpenses = report.TotalExpenses.Add(line.NetAmount)
		}
	}

	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Income statement generated",
		slog.String("entity_id", entityID),
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}

// BalanceSheet sums Asset, Liability and Equity balances as of a date.
func (s *reportingService) BalanceSheet(ctx context.Context, entityID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	activities, err := s.reportingRepo.GetBalanceSheetData(ctx, entityID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, activity := range activities {
		line := domain.AccountAmount{
			AccountID: activity.Account.AccountID,
			Code:      activity.Account.Code,
			Name:      activity.Account.Name,
			NetAmount: normalBalance(activity),
		}
		switch activity.Account.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(line.NetAmount)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(line.NetAmount)
		case domain.Equity:
			report.Equity = append(report.Equity, line)
			report.TotalEquity = report.TotalEquity.Add(line.NetAmount)
		}
	}

	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)

	s.LogInfo(ctx, "Balance sheet generated", slog.String("entity_id", entityID))
	return report, nil
}

// CashFlowStatement nets each non-cash account's activity into Operating,
// Investing or Financing using the configured classifier. The cash effect of
// an account over the period is its credits minus debits: a credit to Rent
// Income means cash came in, a debit to an expense means cash went out.
func (s *reportingService) CashFlowStatement(ctx context.Context, entityID string, from, to time.Time) (*domain.CashFlowReport, error) {
	activities, err := s.reportingRepo.GetCashFlowData(ctx, entityID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cash flow data", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to retrieve cash flow data: %w", err)
	}

	report := &domain.CashFlowReport{
		From:      from,
		To:        to,
		Operating: decimal.Zero,
		Investing: decimal.Zero,
		Financing: decimal.Zero,
	}

	for _, activity := range activities {
		cashEffect := activity.TotalCredit.Sub(activity.TotalDebit)
		if cashEffect.IsZero() {
			continue
		}
		switch s.classifier.Classify(activity.Account) {
		case domain.CashFlowInvesting:
			report.Investing = report.Investing.Add(cashEffect)
		case domain.CashFlowFinancing:
			report.Financing = report.Financing.Add(cashEffect)
		default:
			report.Operating = report.Operating.Add(cashEffect)
		}
	}

	report.NetCashFlow = report.Operating.Add(report.Investing).Add(report.Financing)

	s.LogInfo(ctx, "Cash flow statement generated", slog.String("entity_id", entityID), slog.String("net_cash_flow", report.NetCashFlow.String()))
	return report, nil
}
