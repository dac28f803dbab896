package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

func draft(desc string, amount int64, typ domain.TransactionType, date time.Time) domain.TransactionDraft {
	return domain.TransactionDraft{
		Description: desc,
		Amount:      decimal.NewFromInt(amount),
		Type:        typ,
		Date:        date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()

	first, err := repo.Create(ctx, draft("a", 1, domain.TransactionTypeIncome, day(2024, 5, 1)))
	require.NoError(t, err)
	second, err := repo.Create(ctx, draft("b", 1, domain.TransactionTypeIncome, day(2024, 5, 10)))
	require.NoError(t, err)
	third, err := repo.Create(ctx, draft("c", 1, domain.TransactionTypeIncome, day(2024, 5, 10)))
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// date desc, then most recently created first
	assert.Equal(t, third.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, first.ID, list[2].ID)
}

func TestTransactionRepository_CreateValidates(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()

	_, err := repo.Create(ctx, draft("", 10, domain.TransactionTypeIncome, day(2024, 1, 1)))
	assert.True(t, errors.Is(err, domain.ErrEmptyDescription))

	_, err = repo.Create(ctx, draft("x", -10, domain.TransactionTypeIncome, day(2024, 1, 1)))
	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}

func TestTransactionRepository_JoinsCategory(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	txs, cats := store.Transactions(), store.Categories()

	food, err := cats.Create(ctx, domain.CategoryDraft{Name: "Food", Type: domain.TransactionTypeExpense})
	require.NoError(t, err)

	d := draft("lunch", 12, domain.TransactionTypeExpense, day(2024, 5, 2))
	d.CategoryID = &food.ID
	created, err := txs.Create(ctx, d)
	require.NoError(t, err)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Food", created.Category.Name)

	// Deleting the category keeps the reference but drops the join
	require.NoError(t, cats.Delete(ctx, food.ID))
	list, err := txs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].CategoryID)
	assert.Equal(t, food.ID, *list[0].CategoryID)
	assert.Nil(t, list[0].Category)
}

func TestTransactionRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()

	created, err := repo.Create(ctx, draft("rent", 900, domain.TransactionTypeExpense, day(2024, 6, 1)))
	require.NoError(t, err)

	desc := "June rent"
	updated, err := repo.Update(ctx, created.ID, domain.TransactionPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "June rent", updated.Description)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(900)))

	_, err = repo.Update(ctx, created.ID, domain.TransactionPatch{})
	assert.True(t, errors.Is(err, domain.ErrEmptyPatch))

	_, err = repo.Update(ctx, "missing", domain.TransactionPatch{Description: &desc})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, created.ID), domain.ErrNotFound))
}

func TestTransactionRepository_ListByPeriodInclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()

	for _, d := range []time.Time{day(2024, 4, 30), day(2024, 5, 1), day(2024, 5, 31), day(2024, 6, 1)} {
		_, err := repo.Create(ctx, draft("x", 1, domain.TransactionTypeExpense, d))
		require.NoError(t, err)
	}

	list, err := repo.ListByPeriod(ctx, day(2024, 5, 1), time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, day(2024, 5, 31), list[0].Date)
	assert.Equal(t, day(2024, 5, 1), list[1].Date)
}

func TestTransactionRepository_GetFinancialSummary(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()

	_, err := repo.Create(ctx, draft("salary", 1000, domain.TransactionTypeIncome, day(2024, 5, 1)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, draft("food", 300, domain.TransactionTypeExpense, day(2024, 5, 2)))
	require.NoError(t, err)

	s, err := repo.GetFinancialSummary(ctx)
	require.NoError(t, err)
	assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(300)))
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, 2, s.TransactionCount)
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Categories()

	for _, name := range []string{"transport", "Food", "Rent"} {
		_, err := repo.Create(ctx, domain.CategoryDraft{Name: name})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Food", list[0].Name)
	assert.Equal(t, "Rent", list[1].Name)
	assert.Equal(t, "transport", list[2].Name)

	color := "#000000"
	updated, err := repo.Update(ctx, list[0].ID, domain.CategoryPatch{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "#000000", updated.Color)
	assert.Equal(t, "Food", updated.Name)

	_, err = repo.Create(ctx, domain.CategoryDraft{Name: " "})
	assert.True(t, errors.Is(err, domain.ErrEmptyCategoryName))
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore()
	_, err := store.Transactions().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.Categories().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Transactions()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(ctx, draft("x", 1, domain.TransactionTypeIncome, day(2024, 1, 1)))
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.List(ctx)
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
