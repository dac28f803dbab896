package dashboard

import (
	"time"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/finance"
	"github.com/simaogato/finance-dashboard/internal/usecase/summary"
)

// RecentCount is the number of transactions listed on the dashboard
const RecentCount = 5

// Overview is everything the dashboard renders, as data
type Overview struct {
	Summary          summary.Summary
	Monthly          []summary.MonthlyBucket
	Distribution     []summary.DistributionSlice
	Recent           []domain.Transaction
	TransactionCount int
	CategoryCount    int
	Loading          bool
	Error            string
}

// StateSource provides snapshots of the application state
type StateSource interface {
	Snapshot() finance.State
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	State StateSource
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(state StateSource) *DashboardService {
	return &DashboardService{
		State: state,
	}
}

// GetOverview assembles the dashboard from a single state snapshot
// Logic:
//   - Summary: the store's summary, already in sync with its transactions
//   - Monthly: the six calendar months ending at now's month
//   - Distribution: income vs expenses, empty when there is nothing to draw
//   - Recent: the first RecentCount transactions, newest first
func (s *DashboardService) GetOverview(now time.Time) *Overview {
	state := s.State.Snapshot()

	return &Overview{
		Summary:          state.Summary,
		Monthly:          summary.ComputeMonthlyBuckets(state.Transactions, now),
		Distribution:     summary.ComputeDistribution(state.Summary),
		Recent:           summary.RecentTransactions(state.Transactions, RecentCount),
		TransactionCount: len(state.Transactions),
		CategoryCount:    len(state.Categories),
		Loading:          state.Loading,
		Error:            state.Error,
	}
}
