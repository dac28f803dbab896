package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

const dateLayout = "2006-01-02"

const selectTransactionsQuery = `
	SELECT t.id, t.description, t.amount, t.type, t.date, t.category_id,
	       c.id, c.name, c.type, c.color, c.icon
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id
`

// transactionRepository implements domain.TransactionRepository,
// domain.PeriodReader and domain.SummaryReader
type transactionRepository struct {
	db *DB
}

// TransactionRepository is the full set of operations the Postgres store offers
type TransactionRepository interface {
	domain.TransactionRepository
	domain.PeriodReader
	domain.SummaryReader
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// List retrieves all transactions, newest first
func (r *transactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	query := selectTransactionsQuery + `ORDER BY t.date DESC, t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByPeriod retrieves transactions dated within [start, end], newest first
func (r *transactionRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	query := selectTransactionsQuery + `
		WHERE t.date BETWEEN $1 AND $2
		ORDER BY t.date DESC, t.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by period: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Create inserts a new transaction and returns it joined with its category
func (r *transactionRepository) Create(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO transactions (id, description, amount, type, date, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		draft.Description,
		draft.Amount.String(),
		string(draft.Type),
		draft.Date.Format(dateLayout),
		nullableString(draft.CategoryID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return r.getByID(ctx, r.db, id)
}

// Update applies patch inside a database transaction so concurrent updates
// to the same row do not interleave
func (r *transactionRepository) Update(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	current, err := r.getByID(ctx, dbTx, id, "FOR UPDATE OF t")
	if err != nil {
		return nil, err
	}

	next := patch.Apply(*current)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE transactions
		SET description = $2, amount = $3, type = $4, date = $5, category_id = $6, updated_at = NOW()
		WHERE id = $1
	`

	_, err = dbTx.ExecContext(ctx, query,
		id,
		next.Description,
		next.Amount.String(),
		string(next.Type),
		next.Date.Format(dateLayout),
		nullableString(next.CategoryID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	updated, err := r.getByID(ctx, dbTx, id)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// Delete removes a transaction
func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetFinancialSummary aggregates all transactions on the database side
func (r *transactionRepository) GetFinancialSummary(ctx context.Context) (*domain.FinancialSummary, error) {
	query := `SELECT total_income, total_expenses, balance, transaction_count FROM get_financial_summary()`

	var incomeStr, expensesStr, balanceStr string
	var count int

	err := r.db.QueryRowContext(ctx, query).Scan(&incomeStr, &expensesStr, &balanceStr, &count)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial summary: %w", err)
	}

	income, err := decimal.NewFromString(incomeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total_income: %w", err)
	}
	expenses, err := decimal.NewFromString(expensesStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total_expenses: %w", err)
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}

	return &domain.FinancialSummary{
		TotalIncome:      income,
		TotalExpenses:    expenses,
		Balance:          balance,
		TransactionCount: count,
	}, nil
}

// queryer is satisfied by both *DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *transactionRepository) getByID(ctx context.Context, q queryer, id string, lock ...string) (*domain.Transaction, error) {
	query := selectTransactionsQuery + `WHERE t.id = $1`
	for _, clause := range lock {
		query += " " + clause
	}

	tx, err := scanTransaction(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction by ID: %w", err)
	}

	return tx, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// scanTransaction reads one joined row and validates it before it enters the core
func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		tx         domain.Transaction
		amountStr  string
		typ        string
		categoryID sql.NullString
		joined     joinedCategory
	)

	err := row.Scan(
		&tx.ID,
		&tx.Description,
		&amountStr,
		&typ,
		&tx.Date,
		&categoryID,
		&joined.id,
		&joined.name,
		&joined.typ,
		&joined.color,
		&joined.icon,
	)
	if err != nil {
		return nil, err
	}

	// Parse amount (NUMERIC)
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	tx.Amount = amount
	tx.Type = domain.TransactionType(typ)
	tx.Date = domain.CalendarDate(tx.Date)

	if categoryID.Valid {
		id := categoryID.String
		tx.CategoryID = &id
	}
	tx.Category = joined.category()

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction record %s: %w", tx.ID, err)
	}

	return &tx, nil
}

// joinedCategory holds the nullable columns of a LEFT JOIN on categories
type joinedCategory struct {
	id, name, typ, color, icon sql.NullString
}

func (j joinedCategory) category() *domain.Category {
	if !j.id.Valid {
		return nil
	}
	return &domain.Category{
		ID:    j.id.String,
		Name:  j.name.String,
		Type:  domain.TransactionType(j.typ.String),
		Color: j.color.String,
		Icon:  j.icon.String,
	}
}

func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
