package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/finance-dashboard/internal/usecase/finance"
	"github.com/simaogato/finance-dashboard/internal/usecase/summary"
)

const dateLayout = "2006-01-02"

// StateStore is the part of the application state store the server drives
type StateStore interface {
	Snapshot() finance.State
	Initialize(ctx context.Context) error
	AddTransaction(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, patch domain.TransactionPatch) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	AddCategory(ctx context.Context, draft domain.CategoryDraft) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Server implements the FinanceService gRPC server
type Server struct {
	Store            StateStore
	DashboardService *dashboard.DashboardService

	// Optional remote-store queries; the RPCs answer Unimplemented when nil
	PeriodReader  domain.PeriodReader
	SummaryReader domain.SummaryReader

	now func() time.Time
}

var _ FinanceServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	store StateStore,
	dashboardService *dashboard.DashboardService,
	periodReader domain.PeriodReader,
	summaryReader domain.SummaryReader,
) *Server {
	return &Server{
		Store:            store,
		DashboardService: dashboardService,
		PeriodReader:     periodReader,
		SummaryReader:    summaryReader,
		now:              time.Now,
	}
}

// GetState handles the GetState RPC
func (s *Server) GetState(ctx context.Context, _ *emptypb.Empty) (*GetStateResponse, error) {
	return stateToProto(s.Store.Snapshot()), nil
}

// GetOverview handles the GetOverview RPC
func (s *Server) GetOverview(ctx context.Context, req *GetOverviewRequest) (*GetOverviewResponse, error) {
	now := s.now()
	if req.Now != "" {
		parsed, err := time.Parse(dateLayout, req.Now)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid now format: %v", err)
		}
		now = parsed
	}

	overview := s.DashboardService.GetOverview(now)

	monthly := make([]*MonthlyBucket, 0, len(overview.Monthly))
	for _, b := range overview.Monthly {
		monthly = append(monthly, &MonthlyBucket{
			Label:    b.Label,
			Year:     b.Year,
			Month:    int(b.Month),
			Start:    b.Start.Format(dateLayout),
			End:      b.End.Format(dateLayout),
			Income:   b.Income.String(),
			Expenses: b.Expenses.String(),
			Net:      b.Net.String(),
		})
	}

	distribution := make([]*DistributionSlice, 0, len(overview.Distribution))
	for _, d := range overview.Distribution {
		distribution = append(distribution, &DistributionSlice{
			Name:  d.Name,
			Value: d.Value.String(),
			Color: d.Color,
		})
	}

	return &GetOverviewResponse{
		Summary:          summaryToProto(overview.Summary),
		Monthly:          monthly,
		Distribution:     distribution,
		Recent:           transactionsToProto(overview.Recent),
		TransactionCount: overview.TransactionCount,
		CategoryCount:    overview.CategoryCount,
		Loading:          overview.Loading,
		Error:            overview.Error,
	}, nil
}

// Initialize handles the Initialize RPC: reloads everything from the remote store
func (s *Server) Initialize(ctx context.Context, _ *emptypb.Empty) (*GetStateResponse, error) {
	if err := s.Store.Initialize(ctx); err != nil {
		return nil, mapError(err)
	}
	return stateToProto(s.Store.Snapshot()), nil
}

// AddTransaction handles the AddTransaction RPC
func (s *Server) AddTransaction(ctx context.Context, req *AddTransactionRequest) (*TransactionResponse, error) {
	// Parse amount from string to decimal
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount format: %v", err)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid date format: %v", err)
	}

	draft := domain.TransactionDraft{
		Description: req.Description,
		Amount:      amount,
		Type:        domain.TransactionType(req.Type),
		Date:        date,
	}
	if req.CategoryId != "" {
		id := req.CategoryId
		draft.CategoryID = &id
	}

	tx, err := s.Store.AddTransaction(ctx, draft)
	if err != nil {
		return nil, mapError(err)
	}

	return &TransactionResponse{Transaction: transactionToProto(*tx)}, nil
}

// UpdateTransaction handles the UpdateTransaction RPC
func (s *Server) UpdateTransaction(ctx context.Context, req *UpdateTransactionRequest) (*TransactionResponse, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	patch := domain.TransactionPatch{
		Description: req.Description,
		CategoryID:  req.CategoryId,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid amount format: %v", err)
		}
		patch.Amount = &amount
	}
	if req.Type != nil {
		typ := domain.TransactionType(*req.Type)
		patch.Type = &typ
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid date format: %v", err)
		}
		patch.Date = &date
	}

	tx, err := s.Store.UpdateTransaction(ctx, req.Id, patch)
	if err != nil {
		return nil, mapError(err)
	}

	return &TransactionResponse{Transaction: transactionToProto(*tx)}, nil
}

// DeleteTransaction handles the DeleteTransaction RPC
func (s *Server) DeleteTransaction(ctx context.Context, req *DeleteRequest) (*emptypb.Empty, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	if err := s.Store.DeleteTransaction(ctx, req.Id); err != nil {
		return nil, mapError(err)
	}
	return &emptypb.Empty{}, nil
}

// AddCategory handles the AddCategory RPC
func (s *Server) AddCategory(ctx context.Context, req *AddCategoryRequest) (*CategoryResponse, error) {
	c, err := s.Store.AddCategory(ctx, domain.CategoryDraft{
		Name:  req.Name,
		Type:  domain.TransactionType(req.Type),
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &CategoryResponse{Category: categoryToProto(*c)}, nil
}

// UpdateCategory handles the UpdateCategory RPC
func (s *Server) UpdateCategory(ctx context.Context, req *UpdateCategoryRequest) (*CategoryResponse, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	patch := domain.CategoryPatch{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	}
	if req.Type != nil {
		typ := domain.TransactionType(*req.Type)
		patch.Type = &typ
	}

	c, err := s.Store.UpdateCategory(ctx, req.Id, patch)
	if err != nil {
		return nil, mapError(err)
	}
	return &CategoryResponse{Category: categoryToProto(*c)}, nil
}

// DeleteCategory handles the DeleteCategory RPC
func (s *Server) DeleteCategory(ctx context.Context, req *DeleteRequest) (*emptypb.Empty, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	if err := s.Store.DeleteCategory(ctx, req.Id); err != nil {
		return nil, mapError(err)
	}
	return &emptypb.Empty{}, nil
}

// ListTransactionsByPeriod handles the ListTransactionsByPeriod RPC.
// It queries the remote store directly and leaves the application state alone.
func (s *Server) ListTransactionsByPeriod(ctx context.Context, req *ListTransactionsByPeriodRequest) (*ListTransactionsResponse, error) {
	if s.PeriodReader == nil {
		return nil, status.Error(codes.Unimplemented, "period queries are not supported by this store")
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid start format: %v", err)
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid end format: %v", err)
	}
	if end.Before(start) {
		return nil, status.Error(codes.InvalidArgument, "end must not be before start")
	}

	txs, err := s.PeriodReader.ListByPeriod(ctx, start, end)
	if err != nil {
		return nil, mapError(domain.NewRemoteCallError("list transactions by period", err))
	}

	return &ListTransactionsResponse{Transactions: transactionsToProto(txs)}, nil
}

// GetFinancialSummary handles the GetFinancialSummary RPC
func (s *Server) GetFinancialSummary(ctx context.Context, _ *emptypb.Empty) (*FinancialSummaryResponse, error) {
	if s.SummaryReader == nil {
		return nil, status.Error(codes.Unimplemented, "remote summaries are not supported by this store")
	}

	fs, err := s.SummaryReader.GetFinancialSummary(ctx)
	if err != nil {
		return nil, mapError(domain.NewRemoteCallError("get financial summary", err))
	}

	return &FinancialSummaryResponse{
		TotalIncome:      fs.TotalIncome.String(),
		TotalExpenses:    fs.TotalExpenses.String(),
		Balance:          fs.Balance.String(),
		TransactionCount: fs.TransactionCount,
	}, nil
}

func stateToProto(state finance.State) *GetStateResponse {
	categories := make([]*Category, 0, len(state.Categories))
	for _, c := range state.Categories {
		categories = append(categories, categoryToProto(c))
	}

	return &GetStateResponse{
		Transactions: transactionsToProto(state.Transactions),
		Categories:   categories,
		Summary:      summaryToProto(state.Summary),
		Loading:      state.Loading,
		Error:        state.Error,
	}
}

func summaryToProto(s summary.Summary) *Summary {
	return &Summary{
		TotalIncome:   s.TotalIncome.String(),
		TotalExpenses: s.TotalExpenses.String(),
		Balance:       s.Balance.String(),
	}
}

func transactionsToProto(txs []domain.Transaction) []*Transaction {
	out := make([]*Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionToProto(tx))
	}
	return out
}

func transactionToProto(tx domain.Transaction) *Transaction {
	pb := &Transaction{
		Id:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount.String(),
		Type:        string(tx.Type),
		Date:        tx.Date.Format(dateLayout),
	}
	if tx.CategoryID != nil {
		pb.CategoryId = *tx.CategoryID
	}
	if tx.Category != nil {
		pb.Category = categoryToProto(*tx.Category)
	}
	return pb
}

func categoryToProto(c domain.Category) *Category {
	return &Category{
		Id:    c.ID,
		Name:  c.Name,
		Type:  string(c.Type),
		Color: c.Color,
		Icon:  c.Icon,
	}
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	msg := domain.ErrorMessage(err)

	switch {
	case domain.IsValidationError(err):
		return status.Error(codes.InvalidArgument, msg)
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, msg)
	case errors.Is(err, errors.ErrUnsupported):
		return status.Error(codes.Unimplemented, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, msg)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, msg)
	}

	var rce *domain.RemoteCallError
	if errors.As(err, &rce) {
		return status.Error(codes.Unavailable, msg)
	}

	// Default to Internal error for unknown errors
	return status.Error(codes.Internal, fmt.Sprintf("internal error: %s", msg))
}
