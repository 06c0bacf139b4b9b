package mapping

import (
	"github.com/propfolio/property_ledger/internal/core/domain"
	"github.com/propfolio/property_ledger/internal/models"
)

// ToModelBankStatement converts a domain BankStatement to a model BankStatement
func ToModelBankStatement(d domain.BankStatement) models.BankStatement {
	return models.BankStatement{
		StatementID:    d.StatementID,
		BankLedgerID:   d.BankLedgerID,
		PeriodStart:    d.PeriodStart,
		PeriodEnd:      d.PeriodEnd,
		OpeningBalance: d.OpeningBalance,
		ClosingBalance: d.ClosingBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankStatement converts a model BankStatement to a domain BankStatement
func ToDomainBankStatement(m models.BankStatement) domain.BankStatement {
	return domain.BankStatement{
		StatementID:    m.StatementID,
		BankLedgerID:   m.BankLedgerID,
		PeriodStart:    m.PeriodStart,
		PeriodEnd:      m.PeriodEnd,
		OpeningBalance: m.OpeningBalance,
		ClosingBalance: m.ClosingBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankTransaction converts a domain BankTransaction to a model BankTransaction
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID:   d.TransactionID,
		StatementID:     d.StatementID,
		TransactionDate: d.TransactionDate,
		Amount:          d.Amount,
		Description:     d.Description,
		ReferenceNumber: d.ReferenceNumber,
		RunningBalance:  d.RunningBalance,
	}
}

// ToDomainBankTransaction converts a model BankTransaction to a domain BankTransaction
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:   m.TransactionID,
		StatementID:     m.StatementID,
		TransactionDate: m.TransactionDate,
		Amount:          m.Amount,
		Description:     m.Description,
		ReferenceNumber: m.ReferenceNumber,
		RunningBalance:  m.RunningBalance,
	}
}

// ToDomainBankTransactionSlice converts model bank transactions to domain ones
func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	ds := make([]domain.BankTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankTransaction(m)
	}
	return ds
}

// ToDomainReconciliation converts a model BankReconciliation to a domain BankReconciliation
func ToDomainReconciliation(m models.BankReconciliation) domain.BankReconciliation {
	return domain.BankReconciliation{
		ReconciliationID:   m.ReconciliationID,
		BankLedgerID:       m.BankLedgerID,
		StatementID:        m.StatementID,
		ReconciliationDate: m.ReconciliationDate,
		Status:             domain.ReconciliationStatus(m.Status),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainReconciliationMatch converts a model ReconciliationMatch to its domain form
func ToDomainReconciliationMatch(m models.ReconciliationMatch) domain.ReconciliationMatch {
	return domain.ReconciliationMatch{
		MatchID:           m.MatchID,
		ReconciliationID:  m.ReconciliationID,
		LedgerEntryID:     m.LedgerEntryID,
		BankTransactionID: m.BankTransactionID,
		MatchNotes:        m.MatchNotes,
	}
}
