package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRepository defines the remote store operations on transactions
type TransactionRepository interface {
	// List retrieves all transactions joined with their category,
	// ordered by date descending
	List(ctx context.Context) ([]Transaction, error)

	// Create stores a new transaction and returns it as persisted
	Create(ctx context.Context, draft TransactionDraft) (*Transaction, error)

	// Update applies a partial update and returns the updated transaction
	Update(ctx context.Context, id string, patch TransactionPatch) (*Transaction, error)

	// Delete removes a transaction
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the remote store operations on categories
type CategoryRepository interface {
	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]Category, error)

	// Create stores a new category and returns it as persisted
	Create(ctx context.Context, draft CategoryDraft) (*Category, error)

	// Update applies a partial update and returns the updated category
	Update(ctx context.Context, id string, patch CategoryPatch) (*Category, error)

	// Delete removes a category. Transactions referencing it are not touched.
	Delete(ctx context.Context, id string) error
}

// PeriodReader is implemented by stores that can filter transactions by date.
// Not used by the application state.
type PeriodReader interface {
	// ListByPeriod retrieves transactions dated within [start, end] inclusive,
	// ordered by date descending
	ListByPeriod(ctx context.Context, start, end time.Time) ([]Transaction, error)
}

// SummaryReader is implemented by stores that aggregate on the server side.
// Not used by the application state.
type SummaryReader interface {
	GetFinancialSummary(ctx context.Context) (*FinancialSummary, error)
}

// FinancialSummary is the aggregate computed by the remote store
type FinancialSummary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}
