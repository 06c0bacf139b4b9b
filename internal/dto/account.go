package dto

import (
	"github.com/propfolio/property_ledger/internal/core/domain"
)

// CreateChartAccountRequest is the payload for creating a chart account.
type CreateChartAccountRequest struct {
	Code             string                  `json:"code" binding:"required,numeric,min=3,max=6"`
	Name             string                  `json:"name" binding:"required"`
	AccountType      domain.AccountType      `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID  *string                 `json:"parentAccountID"`
	CashFlowCategory domain.CashFlowCategory `json:"cashFlowCategory" binding:"omitempty,oneof=OPERATING INVESTING FINANCING"`
}

// ChartAccountResponse is the API representation of a chart account.
type ChartAccountResponse struct {
	AccountID        string                  `json:"accountID"`
	EntityID         string                  `json:"entityID"`
	Code             string                  `json:"code"`
	Name             string                  `json:"name"`
	AccountType      domain.AccountType      `json:"accountType"`
	NormalSide       domain.NormalSide       `json:"normalSide"`
	ParentAccountID  *string                 `json:"parentAccountID,omitempty"`
	CashFlowCategory domain.CashFlowCategory `json:"cashFlowCategory,omitempty"`
	IsActive         bool                    `json:"isActive"`
}

// ToChartAccountResponse converts a domain ChartAccount to its response form.
func ToChartAccountResponse(a *domain.ChartAccount) ChartAccountResponse {
	return ChartAccountResponse{
		AccountID:        a.AccountID,
		EntityID:         a.EntityID,
		Code:             a.Code,
		Name:             a.Name,
		AccountType:      a.AccountType,
		NormalSide:       a.AccountType.NormalSide(),
		ParentAccountID:  a.ParentAccountID,
		CashFlowCategory: a.CashFlowCategory,
		IsActive:         a.IsActive,
	}
}

// ToChartAccountResponses converts a slice of domain accounts.
func ToChartAccountResponses(accounts []domain.ChartAccount) []ChartAccountResponse {
	out := make([]ChartAccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToChartAccountResponse(&accounts[i])
	}
	return out
}
