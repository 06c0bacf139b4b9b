package mapping

import (
	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/propfolio/property_ledger/internal/models"
)

// ToModelBankLedger converts a domain BankLedger to a model BankLedger
func ToModelBankLedger(d domain.BankLedger) models.BankLedger {
	return models.BankLedger{
		BankLedgerID:   d.BankLedgerID,
		EntityID:       d.EntityID,
		AccountName:    d.AccountName,
		AccountNumber:  d.AccountNumber,
		ChartAccountID: d.ChartAccountID,
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankLedger converts a model BankLedger to a domain BankLedger
func ToDomainBankLedger(m models.BankLedger) domain.BankLedger {
	return domain.BankLedger{
		BankLedgerID:   m.BankLedgerID,
		EntityID:       m.EntityID,
		AccountName:    m.AccountName,
		AccountNumber:  m.AccountNumber,
		ChartAccountID: m.ChartAccountID,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		BankLedgerID:    d.BankLedgerID,
		ChartAccountID:  d.ChartAccountID,
		DebitAmount:     d.DebitAmount,
		CreditAmount:    d.CreditAmount,
		Amount:          d.Amount,
		TransactionType: models.TransactionType(d.TransactionType),
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		ReferenceID:     d.ReferenceID,
		ReferenceNumber: d.ReferenceNumber,
		Reconciled:      d.Reconciled,
		RunningBalance:  d.RunningBalance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		BankLedgerID:    m.BankLedgerID,
		ChartAccountID:  m.ChartAccountID,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		ReferenceID:     m.ReferenceID,
		ReferenceNumber: m.ReferenceNumber,
		Reconciled:      m.Reconciled,
		RunningBalance:  m.RunningBalance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
