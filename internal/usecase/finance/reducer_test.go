package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/summary"
)

func tx(id string, amount int64, typ domain.TransactionType) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		Description: "tx " + id,
		Amount:      decimal.NewFromInt(amount),
		Type:        typ,
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func ids(list []domain.Transaction) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.ID)
	}
	return out
}

func TestReduce_LoadingAndError(t *testing.T) {
	s := Reduce(InitialState(), LoadingStarted{})
	assert.True(t, s.Loading)

	s = Reduce(s, ErrorOccurred{Message: "boom"})
	assert.False(t, s.Loading)
	assert.Equal(t, "boom", s.Error)

	// a later success does not clear the error
	s = Reduce(s, TransactionsReplaced{Transactions: []domain.Transaction{tx("1", 10, domain.TransactionTypeIncome)}})
	assert.Equal(t, "boom", s.Error)
}

func TestReduce_Transactions(t *testing.T) {
	s := InitialState()
	s.Loading = true

	s = Reduce(s, TransactionsReplaced{Transactions: []domain.Transaction{
		tx("1", 100, domain.TransactionTypeIncome),
		tx("2", 40, domain.TransactionTypeExpense),
	}})
	assert.False(t, s.Loading)
	assert.Equal(t, []string{"1", "2"}, ids(s.Transactions))

	s.Loading = true
	s = Reduce(s, TransactionAdded{Transaction: tx("3", 5, domain.TransactionTypeExpense)})
	assert.False(t, s.Loading)
	assert.Equal(t, []string{"3", "1", "2"}, ids(s.Transactions))

	updated := tx("1", 150, domain.TransactionTypeIncome)
	s = Reduce(s, TransactionUpdated{Transaction: updated})
	assert.Equal(t, []string{"3", "1", "2"}, ids(s.Transactions))
	assert.True(t, s.Transactions[1].Amount.Equal(decimal.NewFromInt(150)))

	s = Reduce(s, TransactionRemoved{ID: "2"})
	assert.Equal(t, []string{"3", "1"}, ids(s.Transactions))

	s = Reduce(s, TransactionRemoved{ID: "missing"})
	assert.Equal(t, []string{"3", "1"}, ids(s.Transactions))
}

func TestReduce_UpdateUnknownIDIsNoop(t *testing.T) {
	s := Reduce(InitialState(), TransactionsReplaced{Transactions: []domain.Transaction{tx("1", 1, domain.TransactionTypeIncome)}})
	s = Reduce(s, TransactionUpdated{Transaction: tx("9", 99, domain.TransactionTypeIncome)})
	assert.Equal(t, []string{"1"}, ids(s.Transactions))
}

func TestReduce_Categories(t *testing.T) {
	s := Reduce(InitialState(), CategoriesReplaced{Categories: []domain.Category{{ID: "a", Name: "Food"}}})
	s = Reduce(s, CategoryAdded{Category: domain.Category{ID: "b", Name: "Rent"}})
	require.Len(t, s.Categories, 2)
	assert.Equal(t, "b", s.Categories[1].ID)

	s = Reduce(s, CategoryUpdated{Category: domain.Category{ID: "a", Name: "Groceries"}})
	assert.Equal(t, "Groceries", s.Categories[0].Name)

	s = Reduce(s, CategoryRemoved{ID: "a"})
	require.Len(t, s.Categories, 1)
	assert.Equal(t, "b", s.Categories[0].ID)
	assert.False(t, s.Loading)
}

func TestReduce_SummaryReplacedKeepsLoading(t *testing.T) {
	s := Reduce(InitialState(), LoadingStarted{})
	want := summary.Summary{
		TotalIncome:   decimal.NewFromInt(10),
		TotalExpenses: decimal.NewFromInt(4),
		Balance:       decimal.NewFromInt(6),
	}
	s = Reduce(s, SummaryReplaced{Summary: want})
	assert.True(t, s.Loading)
	assert.Equal(t, want, s.Summary)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	base := Reduce(InitialState(), TransactionsReplaced{Transactions: []domain.Transaction{
		tx("1", 1, domain.TransactionTypeIncome),
		tx("2", 2, domain.TransactionTypeExpense),
	}})
	before := ids(base.Transactions)

	_ = Reduce(base, TransactionAdded{Transaction: tx("3", 3, domain.TransactionTypeIncome)})
	_ = Reduce(base, TransactionUpdated{Transaction: tx("1", 100, domain.TransactionTypeIncome)})
	_ = Reduce(base, TransactionRemoved{ID: "1"})

	assert.Equal(t, before, ids(base.Transactions))
	assert.True(t, base.Transactions[0].Amount.Equal(decimal.NewFromInt(1)))
}
