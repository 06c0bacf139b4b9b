package mapping

import (
	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/propfolio/property_ledger/internal/models"
)

// ToModelChartAccount converts a domain ChartAccount to a model ChartAccount
func ToModelChartAccount(d domain.ChartAccount) models.ChartAccount {
	return models.ChartAccount{
		AccountID:        d.AccountID,
		EntityID:         d.EntityID,
		Code:             d.Code,
		Name:             d.Name,
		AccountType:      models.AccountType(d.AccountType),
		ParentAccountID:  d.ParentAccountID,
		CashFlowCategory: string(d.CashFlowCategory),
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChartAccount converts a model ChartAccount to a domain ChartAccount
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		AccountID:        m.AccountID,
		EntityID:         m.EntityID,
		Code:             m.Code,
		Name:             m.Name,
		AccountType:      domain.AccountType(m.AccountType),
		ParentAccountID:  m.ParentAccountID,
		CashFlowCategory: domain.CashFlowCategory(m.CashFlowCategory),
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
