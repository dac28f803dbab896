package summary

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finance-dashboard/internal/domain"
)

// TrailingMonths is the number of calendar months covered by the monthly series
const TrailingMonths = 6

// Distribution colors used by the dashboard pie chart
const (
	IncomeColor  = "#48bb78"
	ExpenseColor = "#f56565"
)

// Summary is the aggregate of a transaction list. It is derived, never stored.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// MonthlyBucket aggregates the transactions of one calendar month.
// Start and End are the first and last day of the month, both inclusive.
type MonthlyBucket struct {
	Label    string
	Year     int
	Month    time.Month
	Start    time.Time
	End      time.Time
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// DistributionSlice is one labeled slice of the income/expense distribution
type DistributionSlice struct {
	Name  string
	Value decimal.Decimal
	Color string
}

// ComputeSummary sums incomes and expenses in a single pass.
// Logic:
//   - TotalIncome: Sum of amounts where type is income
//   - TotalExpenses: Sum of amounts of every other transaction
//   - Balance: TotalIncome - TotalExpenses
func ComputeSummary(transactions []domain.Transaction) Summary {
	income, expenses := split(transactions)
	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}

// ComputeMonthlyBuckets builds exactly TrailingMonths buckets for the calendar
// months ending at now's month, oldest first. A transaction belongs to a
// bucket when its calendar date falls within [Start, End].
func ComputeMonthlyBuckets(transactions []domain.Transaction, now time.Time) []MonthlyBucket {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	buckets := make([]MonthlyBucket, 0, TrailingMonths)

	for i := TrailingMonths - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, -1)

		inMonth := make([]domain.Transaction, 0)
		for _, tx := range transactions {
			if withinDays(tx.Date, start, end) {
				inMonth = append(inMonth, tx)
			}
		}

		income, expenses := split(inMonth)
		buckets = append(buckets, MonthlyBucket{
			Label:    start.Format("Jan"),
			Year:     start.Year(),
			Month:    start.Month(),
			Start:    start,
			End:      end,
			Income:   income,
			Expenses: expenses,
			Net:      income.Sub(expenses),
		})
	}

	return buckets
}

// ComputeDistribution pairs the totals for the income/expense chart.
// Returns nil when both totals are zero, there is nothing to draw.
func ComputeDistribution(s Summary) []DistributionSlice {
	if s.TotalIncome.IsZero() && s.TotalExpenses.IsZero() {
		return nil
	}

	return []DistributionSlice{
		{Name: "Income", Value: s.TotalIncome, Color: IncomeColor},
		{Name: "Expenses", Value: s.TotalExpenses, Color: ExpenseColor},
	}
}

// RecentTransactions returns at most n transactions from the head of the list.
// The list is expected in date-descending order, as the remote store returns it.
func RecentTransactions(transactions []domain.Transaction, n int) []domain.Transaction {
	if n <= 0 {
		return []domain.Transaction{}
	}
	if n > len(transactions) {
		n = len(transactions)
	}

	recent := make([]domain.Transaction, n)
	copy(recent, transactions[:n])
	return recent
}

// split returns the income and expense totals of transactions
func split(transactions []domain.Transaction) (decimal.Decimal, decimal.Decimal) {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range transactions {
		if tx.Type == domain.TransactionTypeIncome {
			income = income.Add(tx.Amount)
		} else {
			expenses = expenses.Add(tx.Amount)
		}
	}

	return income, expenses
}

// withinDays compares calendar days only, so the time of day and location of
// date never push a boundary day into the adjacent bucket
func withinDays(date, start, end time.Time) bool {
	day := domain.CalendarDate(date)
	return !day.Before(start) && !day.After(end)
}
