package finance

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/simaogato/finance-dashboard/internal/metrics"
	"github.com/simaogato/finance-dashboard/internal/usecase/summary"
)

// Intent names used for notifications, logs and metrics
const (
	IntentInitialize        = "initialize"
	IntentAddTransaction    = "add_transaction"
	IntentUpdateTransaction = "update_transaction"
	IntentDeleteTransaction = "delete_transaction"
	IntentAddCategory       = "add_category"
	IntentUpdateCategory    = "update_category"
	IntentDeleteCategory    = "delete_category"
)

var successMessages = map[string]string{
	IntentAddTransaction:    "transaction added",
	IntentUpdateTransaction: "transaction updated",
	IntentDeleteTransaction: "transaction removed",
	IntentAddCategory:       "category added",
	IntentUpdateCategory:    "category updated",
	IntentDeleteCategory:    "category removed",
}

// Store owns the application state. Every transition runs under mu;
// remote calls run outside it. Local state only changes after the remote
// store reported success.
type Store struct {
	transactions domain.TransactionRepository
	categories   domain.CategoryRepository
	notifier     Notifier
	metrics      metrics.Collector
	logger       *logging.Logger

	mu          sync.Mutex
	state       State
	subscribers []func(State)
	// message of the last failed Initialize, cleared by a successful one
	loadErr string

	// held while subscribers run so they observe states in dispatch order
	notifyMu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithNotifier sets the notifier. Defaults to a LogNotifier.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithMetrics sets the metrics collector. Defaults to metrics.NoOpCollector.
func WithMetrics(c metrics.Collector) Option {
	return func(s *Store) { s.metrics = c }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store in its initial state
func NewStore(transactions domain.TransactionRepository, categories domain.CategoryRepository, opts ...Option) *Store {
	s := &Store{
		transactions: transactions,
		categories:   categories,
		metrics:      metrics.NoOpCollector{},
		logger:       logging.NewNop(),
		state:        InitialState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier(s.logger)
	}
	s.logger = s.logger.Named("store")
	return s
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// LastLoadError returns the message of the last Initialize when it failed,
// or "" once an Initialize succeeded. Unlike State.Error it recovers.
func (s *Store) LastLoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Store) setLoadError(msg string) {
	s.mu.Lock()
	s.loadErr = msg
	s.mu.Unlock()
}

// Subscribe registers fn to receive a snapshot after every dispatch.
// fn must not call Dispatch or an intent.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies ev. When ev changes the transaction list the summary is
// recomputed within the same critical section.
func (s *Store) Dispatch(ev Event) {
	s.mu.Lock()
	next := Reduce(s.state, ev)
	if changesTransactions(ev) {
		next = Reduce(next, SummaryReplaced{Summary: summary.ComputeSummary(next.Transactions)})
	}
	s.state = next
	snapshot := next.Clone()
	subscribers := append([]func(State){}, s.subscribers...)

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.metrics.RecordLoading(snapshot.Loading)
	s.metrics.RecordTransactionCount(len(snapshot.Transactions))
	s.logger.Debug("state transition",
		zap.String("event", eventName(ev)),
		zap.Bool("loading", snapshot.Loading),
		zap.Int("transactions", len(snapshot.Transactions)),
		zap.Int("categories", len(snapshot.Categories)),
	)

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

// Initialize fetches transactions and categories concurrently. The first
// failure wins and cancels the other fetch; nothing is merged on failure.
// On success the two lists are replaced one after the other, so subscribers
// see one snapshot with new transactions and old categories. A refresh that
// overlaps an intent may drop that intent's change until the next refresh.
func (s *Store) Initialize(ctx context.Context) error {
	start := time.Now()
	s.Dispatch(LoadingStarted{})

	var (
		txs  []domain.Transaction
		cats []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.transactions.List(gctx)
		if err != nil {
			return domain.NewRemoteCallError("list transactions", err)
		}
		txs = list
		return nil
	})
	g.Go(func() error {
		list, err := s.categories.List(gctx)
		if err != nil {
			return domain.NewRemoteCallError("list categories", err)
		}
		cats = list
		return nil
	})

	if err := g.Wait(); err != nil {
		s.setLoadError(domain.ErrorMessage(err))
		return s.fail(IntentInitialize, start, err)
	}

	s.Dispatch(TransactionsReplaced{Transactions: txs})
	s.Dispatch(CategoriesReplaced{Categories: cats})
	s.setLoadError("")
	s.record(IntentInitialize, start, true)
	return nil
}

// AddTransaction creates a transaction remotely and prepends it locally
func (s *Store) AddTransaction(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	start := time.Now()
	s.Dispatch(LoadingStarted{})

	tx, err := s.transactions.Create(ctx, draft)
	if err != nil {
		return nil, s.fail(IntentAddTransaction, start, domain.NewRemoteCallError("create transaction", err))
	}

	s.Dispatch(TransactionAdded{Transaction: *tx})
	s.succeed(IntentAddTransaction, start)
	return tx, nil
}

// UpdateTransaction applies patch remotely and replaces the local copy
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	start := time.Now()
	s.Dispatch(LoadingStarted{})

	tx, err := s.transactions.Update(ctx, id, patch)
	if err != nil {
		return nil, s.fail(IntentUpdateTransaction, start, domain.NewRemoteCallError("update transaction", err))
	}

	s.Dispatch(TransactionUpdated{Transaction: *tx})
	s.succeed(IntentUpdateTransaction, start)
	return tx, nil
}

// DeleteTransaction deletes remotely and removes the local copy
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	start := time.Now()
	s.Dispatch(LoadingStarted{})

	if err := s.transactions.Delete(ctx, id); err != nil {
		return s.fail(IntentDeleteTransaction, start, domain.NewRemoteCallError("delete transaction", err))
	}

	s.Dispatch(TransactionRemoved{ID: id})
	s.succeed(IntentDeleteTransaction, start)
	return nil
}

// AddCategory creates a category remotely and appends it locally
func (s *Store) AddCategory(ctx context.Context, draft domain.CategoryDraft) (*domain.Category, error) {
	start := time.Now()
	s.Dispatch(LoadingStarted{})

	c, err := s.categories.Create(ctx, draft)
	if err != nil {
		return nil, s.fail(IntentAddCategory, start, domain.NewRemoteCallError("create category", err))
	}

	s.Dispatch(CategoryAdded{Category: *c})
	s.succeed(IntentAddCategory, start)
	return c, nil
}

// UpdateCategory applies patch remotely and replaces the local copy
func (s *Store) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	start := time.Now()
	s.Dispatch(LoadingStarted{})

	c, err := s.categories.Update(ctx, id, patch)
	if err != nil {
		return nil, s.fail(IntentUpdateCategory, start, domain.NewRemoteCallError("update category", err))
	}

	s.Dispatch(CategoryUpdated{Category: *c})
	s.succeed(IntentUpdateCategory, start)
	return c, nil
}

// DeleteCategory deletes remotely and removes the local copy.
// Transactions that reference the category are left as they are.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	start := time.Now()
	s.Dispatch(LoadingStarted{})

	if err := s.categories.Delete(ctx, id); err != nil {
		return s.fail(IntentDeleteCategory, start, domain.NewRemoteCallError("delete category", err))
	}

	s.Dispatch(CategoryRemoved{ID: id})
	s.succeed(IntentDeleteCategory, start)
	return nil
}

func (s *Store) succeed(intent string, start time.Time) {
	s.record(intent, start, true)
	s.notifier.Notify(Notification{
		Level:   NotificationSuccess,
		Intent:  intent,
		Message: successMessages[intent],
	})
}

func (s *Store) fail(intent string, start time.Time, err error) error {
	msg := domain.ErrorMessage(err)
	s.Dispatch(ErrorOccurred{Message: msg})
	s.record(intent, start, false)
	s.logger.Warn("intent failed", zap.String("intent", intent), zap.Error(err))
	s.notifier.Notify(Notification{
		Level:   NotificationFailure,
		Intent:  intent,
		Message: msg,
	})
	return err
}

func (s *Store) record(intent string, start time.Time, success bool) {
	s.metrics.RecordIntent(intent, success, time.Since(start))
}

func eventName(ev Event) string {
	switch ev.(type) {
	case LoadingStarted:
		return "loading_started"
	case ErrorOccurred:
		return "error_occurred"
	case TransactionsReplaced:
		return "transactions_replaced"
	case TransactionAdded:
		return "transaction_added"
	case TransactionUpdated:
		return "transaction_updated"
	case TransactionRemoved:
		return "transaction_removed"
	case CategoriesReplaced:
		return "categories_replaced"
	case CategoryAdded:
		return "category_added"
	case CategoryUpdated:
		return "category_updated"
	case CategoryRemoved:
		return "category_removed"
	case SummaryReplaced:
		return "summary_replaced"
	default:
		return "unknown"
	}
}
