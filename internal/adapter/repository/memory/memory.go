package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// Store is an in-memory remote store with the same ordering semantics as
// the Postgres store. Both repositories returned by it share one lock.
type Store struct {
	// mu protects transactions, categories and seq
	mu sync.RWMutex

	transactions map[string]record
	categories   map[string]domain.Category

	// seq orders records created on the same date, newest first
	seq int64
}

// record is a stored transaction plus its insertion sequence
type record struct {
	tx  domain.Transaction
	seq int64
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		transactions: make(map[string]record),
		categories:   make(map[string]domain.Category),
	}
}

// Transactions returns the transaction repository backed by s
func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{store: s}
}

// Categories returns the category repository backed by s
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

// TransactionRepository implements domain.TransactionRepository,
// domain.PeriodReader and domain.SummaryReader
type TransactionRepository struct {
	store *Store
}

var (
	_ domain.TransactionRepository = (*TransactionRepository)(nil)
	_ domain.PeriodReader          = (*TransactionRepository)(nil)
	_ domain.SummaryReader         = (*TransactionRepository)(nil)
	_ domain.CategoryRepository    = (*CategoryRepository)(nil)
)

// List returns all transactions, newest first, joined with their category
func (r *TransactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	return r.filter(ctx, func(domain.Transaction) bool { return true })
}

// ListByPeriod returns transactions dated within [start, end], newest first
func (r *TransactionRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	from, to := domain.CalendarDate(start), domain.CalendarDate(end)
	return r.filter(ctx, func(tx domain.Transaction) bool {
		return !tx.Date.Before(from) && !tx.Date.After(to)
	})
}

func (r *TransactionRepository) filter(ctx context.Context, keep func(domain.Transaction) bool) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]record, 0, len(r.store.transactions))
	for _, rec := range r.store.transactions {
		if keep(rec.tx) {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].tx.Date.Equal(records[j].tx.Date) {
			return records[i].tx.Date.After(records[j].tx.Date)
		}
		return records[i].seq > records[j].seq
	})

	out := make([]domain.Transaction, 0, len(records))
	for _, rec := range records {
		out = append(out, r.store.join(rec.tx))
	}
	return out, nil
}

// Create stores a new transaction under a fresh UUID
func (r *TransactionRepository) Create(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	tx := domain.Transaction{
		ID:          uuid.NewString(),
		Description: draft.Description,
		Amount:      draft.Amount,
		Type:        draft.Type,
		Date:        domain.CalendarDate(draft.Date),
	}
	if draft.CategoryID != nil && *draft.CategoryID != "" {
		id := *draft.CategoryID
		tx.CategoryID = &id
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.seq++
	r.store.transactions[tx.ID] = record{tx: tx, seq: r.store.seq}

	joined := r.store.join(tx)
	return &joined, nil
}

// Update applies patch to an existing transaction
func (r *TransactionRepository) Update(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}

	next := patch.Apply(rec.tx)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	next.Category = nil
	rec.tx = next
	r.store.transactions[id] = rec

	joined := r.store.join(next)
	return &joined, nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.transactions[id]; !ok {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.transactions, id)
	return nil
}

// GetFinancialSummary aggregates every stored transaction
func (r *TransactionRepository) GetFinancialSummary(ctx context.Context) (*domain.FinancialSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	income, expenses := decimal.Zero, decimal.Zero
	for _, rec := range r.store.transactions {
		if rec.tx.Type == domain.TransactionTypeIncome {
			income = income.Add(rec.tx.Amount)
		} else {
			expenses = expenses.Add(rec.tx.Amount)
		}
	}

	return &domain.FinancialSummary{
		TotalIncome:      income,
		TotalExpenses:    expenses,
		Balance:          income.Sub(expenses),
		TransactionCount: len(r.store.transactions),
	}, nil
}

// join attaches the referenced category, if it still exists. Callers hold mu.
func (s *Store) join(tx domain.Transaction) domain.Transaction {
	tx.Category = nil
	if tx.CategoryID == nil {
		return tx
	}
	if c, ok := s.categories[*tx.CategoryID]; ok {
		tx.Category = &c
	}
	return tx
}

// CategoryRepository implements domain.CategoryRepository
type CategoryRepository struct {
	store *Store
}

// List returns all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Create stores a new category under a fresh UUID
func (r *CategoryRepository) Create(ctx context.Context, draft domain.CategoryDraft) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	c := domain.Category{
		ID:    uuid.NewString(),
		Name:  draft.Name,
		Type:  draft.Type,
		Color: draft.Color,
		Icon:  draft.Icon,
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.categories[c.ID] = c
	return &c, nil
}

// Update applies patch to an existing category
func (r *CategoryRepository) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	next := patch.Apply(c)
	r.store.categories[id] = next
	return &next, nil
}

// Delete removes a category. Transactions referencing it keep their CategoryID.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.categories, id)
	return nil
}
