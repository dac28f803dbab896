package finance

import (
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/summary"
)

// Event is a state transition request. The set of events is closed:
// only the types declared in this file implement it.
type Event interface {
	isEvent()
}

type (
	// LoadingStarted marks the start of a remote call
	LoadingStarted struct{}

	// ErrorOccurred records the message of a failed remote call
	ErrorOccurred struct {
		Message string
	}

	// TransactionsReplaced replaces the whole transaction list
	TransactionsReplaced struct {
		Transactions []domain.Transaction
	}

	// TransactionAdded prepends a transaction
	TransactionAdded struct {
		Transaction domain.Transaction
	}

	// TransactionUpdated replaces the transaction with the same ID
	TransactionUpdated struct {
		Transaction domain.Transaction
	}

	// TransactionRemoved removes the transaction with the given ID
	TransactionRemoved struct {
		ID string
	}

	// CategoriesReplaced replaces the whole category list
	CategoriesReplaced struct {
		Categories []domain.Category
	}

	// CategoryAdded appends a category
	CategoryAdded struct {
		Category domain.Category
	}

	// CategoryUpdated replaces the category with the same ID
	CategoryUpdated struct {
		Category domain.Category
	}

	// CategoryRemoved removes the category with the given ID
	CategoryRemoved struct {
		ID string
	}

	// SummaryReplaced sets the derived summary. It does not touch Loading.
	SummaryReplaced struct {
		Summary summary.Summary
	}
)

func (LoadingStarted) isEvent()       {}
func (ErrorOccurred) isEvent()        {}
func (TransactionsReplaced) isEvent() {}
func (TransactionAdded) isEvent()     {}
func (TransactionUpdated) isEvent()   {}
func (TransactionRemoved) isEvent()   {}
func (CategoriesReplaced) isEvent()   {}
func (CategoryAdded) isEvent()        {}
func (CategoryUpdated) isEvent()      {}
func (CategoryRemoved) isEvent()      {}
func (SummaryReplaced) isEvent()      {}

// changesTransactions reports whether ev rewrites the transaction list,
// which makes the summary stale
func changesTransactions(ev Event) bool {
	switch ev.(type) {
	case TransactionsReplaced, TransactionAdded, TransactionUpdated, TransactionRemoved:
		return true
	default:
		return false
	}
}
