package resilient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/simaogato/finance-dashboard/internal/metrics"
)

// ErrCircuitOpen is returned while the breaker rejects calls
var ErrCircuitOpen = errors.New("remote store unavailable: circuit open")

// Config holds circuit breaker configuration
type Config struct {
	// Name identifies the breaker in logs and metrics
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again
	OpenTimeout time.Duration
}

// DefaultConfig returns the default breaker configuration
func DefaultConfig() Config {
	return Config{
		Name:        "remote-store",
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
	}
}

// Breaker guards every call to the remote store. It never retries.
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	metrics metrics.Collector
	logger  *logging.Logger
}

// NewBreaker creates a breaker reporting state changes to collector
func NewBreaker(config Config, collector metrics.Collector, logger *logging.Logger) *Breaker {
	if config.Name == "" {
		config.Name = DefaultConfig().Name
	}
	if config.MaxFailures == 0 {
		config.MaxFailures = DefaultConfig().MaxFailures
	}
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}

	b := &Breaker{
		metrics: collector,
		logger:  logger.Named("resilience"),
	}

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: 1,
		Timeout:     config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.MaxFailures
		},
		// Rejections by the store itself say nothing about its health
		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			b.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)

			var state metrics.CircuitState
			switch to {
			case gobreaker.StateClosed:
				state = metrics.CircuitClosed
			case gobreaker.StateHalfOpen:
				state = metrics.CircuitHalfOpen
			case gobreaker.StateOpen:
				state = metrics.CircuitOpen
			}
			b.metrics.RecordCircuitState(name, state)
		},
	}

	b.cb = gobreaker.NewCircuitBreaker(settings)
	return b
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func execute[T any](b *Breaker, op string, fn func() (T, error)) (T, error) {
	var zero T

	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			b.logger.Warn("circuit breaker open - request rejected", zap.String("operation", op))
			return zero, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		return zero, err
	}

	return result.(T), nil
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		domain.IsValidationError(err) ||
		errors.Is(err, context.Canceled)
}

// TransactionRepository wraps a domain.TransactionRepository with a breaker
type TransactionRepository struct {
	next    domain.TransactionRepository
	breaker *Breaker
}

// NewTransactionRepository wraps next
func NewTransactionRepository(next domain.TransactionRepository, breaker *Breaker) *TransactionRepository {
	return &TransactionRepository{next: next, breaker: breaker}
}

var (
	_ domain.TransactionRepository = (*TransactionRepository)(nil)
	_ domain.PeriodReader          = (*TransactionRepository)(nil)
	_ domain.SummaryReader         = (*TransactionRepository)(nil)
	_ domain.CategoryRepository    = (*CategoryRepository)(nil)
)

func (r *TransactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	return execute(r.breaker, "list_transactions", func() ([]domain.Transaction, error) {
		return r.next.List(ctx)
	})
}

func (r *TransactionRepository) Create(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	return execute(r.breaker, "create_transaction", func() (*domain.Transaction, error) {
		return r.next.Create(ctx, draft)
	})
}

func (r *TransactionRepository) Update(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	return execute(r.breaker, "update_transaction", func() (*domain.Transaction, error) {
		return r.next.Update(ctx, id, patch)
	})
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	_, err := execute(r.breaker, "delete_transaction", func() (struct{}, error) {
		return struct{}{}, r.next.Delete(ctx, id)
	})
	return err
}

// ListByPeriod forwards to the wrapped store when it supports period queries
func (r *TransactionRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	reader, ok := r.next.(domain.PeriodReader)
	if !ok {
		return nil, fmt.Errorf("list by period: %w", errors.ErrUnsupported)
	}
	return execute(r.breaker, "list_by_period", func() ([]domain.Transaction, error) {
		return reader.ListByPeriod(ctx, start, end)
	})
}

// GetFinancialSummary forwards to the wrapped store when it aggregates remotely
func (r *TransactionRepository) GetFinancialSummary(ctx context.Context) (*domain.FinancialSummary, error) {
	reader, ok := r.next.(domain.SummaryReader)
	if !ok {
		return nil, fmt.Errorf("financial summary: %w", errors.ErrUnsupported)
	}
	return execute(r.breaker, "financial_summary", func() (*domain.FinancialSummary, error) {
		return reader.GetFinancialSummary(ctx)
	})
}

// CategoryRepository wraps a domain.CategoryRepository with a breaker
type CategoryRepository struct {
	next    domain.CategoryRepository
	breaker *Breaker
}

// NewCategoryRepository wraps next
func NewCategoryRepository(next domain.CategoryRepository, breaker *Breaker) *CategoryRepository {
	return &CategoryRepository{next: next, breaker: breaker}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return execute(r.breaker, "list_categories", func() ([]domain.Category, error) {
		return r.next.List(ctx)
	})
}

func (r *CategoryRepository) Create(ctx context.Context, draft domain.CategoryDraft) (*domain.Category, error) {
	return execute(r.breaker, "create_category", func() (*domain.Category, error) {
		return r.next.Create(ctx, draft)
	})
}

func (r *CategoryRepository) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	return execute(r.breaker, "update_category", func() (*domain.Category, error) {
		return r.next.Update(ctx, id, patch)
	})
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := execute(r.breaker, "delete_category", func() (struct{}, error) {
		return struct{}{}, r.next.Delete(ctx, id)
	})
	return err
}
