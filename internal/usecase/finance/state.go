package finance

import (
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/summary"
)

// State is the canonical in-memory state of the dashboard.
// Summary is derived from Transactions and never set on its own.
type State struct {
	Transactions []domain.Transaction
	Categories   []domain.Category
	Summary      summary.Summary
	Loading      bool
	Error        string
}

// InitialState returns the empty state the store starts from
func InitialState() State {
	return State{
		Transactions: []domain.Transaction{},
		Categories:   []domain.Category{},
		Summary:      summary.ComputeSummary(nil),
	}
}

// Clone returns a copy of s whose slices can be modified freely
func (s State) Clone() State {
	out := s
	out.Transactions = append(make([]domain.Transaction, 0, len(s.Transactions)), s.Transactions...)
	out.Categories = append(make([]domain.Category, 0, len(s.Categories)), s.Categories...)
	return out
}
