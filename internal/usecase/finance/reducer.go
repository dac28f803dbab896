package finance

import (
	"fmt"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// Reduce applies ev to s and returns the next state.
// The input state and its slices are never modified.
func Reduce(s State, ev Event) State {
	next := s

	switch e := ev.(type) {
	case LoadingStarted:
		next.Loading = true

	case ErrorOccurred:
		next.Error = e.Message
		next.Loading = false

	case TransactionsReplaced:
		next.Transactions = append([]domain.Transaction{}, e.Transactions...)
		next.Loading = false

	case TransactionAdded:
		list := make([]domain.Transaction, 0, len(s.Transactions)+1)
		list = append(list, e.Transaction)
		next.Transactions = append(list, s.Transactions...)
		next.Loading = false

	case TransactionUpdated:
		next.Transactions = replaceTransaction(s.Transactions, e.Transaction)
		next.Loading = false

	case TransactionRemoved:
		next.Transactions = removeTransaction(s.Transactions, e.ID)
		next.Loading = false

	case CategoriesReplaced:
		next.Categories = append([]domain.Category{}, e.Categories...)
		next.Loading = false

	case CategoryAdded:
		list := make([]domain.Category, 0, len(s.Categories)+1)
		list = append(list, s.Categories...)
		next.Categories = append(list, e.Category)
		next.Loading = false

	case CategoryUpdated:
		next.Categories = replaceCategory(s.Categories, e.Category)
		next.Loading = false

	case CategoryRemoved:
		next.Categories = removeCategory(s.Categories, e.ID)
		next.Loading = false

	case SummaryReplaced:
		next.Summary = e.Summary

	default:
		panic(fmt.Sprintf("finance: unhandled event %T", ev))
	}

	return next
}

func replaceTransaction(list []domain.Transaction, tx domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(list))
	for i, item := range list {
		if item.ID == tx.ID {
			out[i] = tx
			continue
		}
		out[i] = item
	}
	return out
}

func removeTransaction(list []domain.Transaction, id string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(list))
	for _, item := range list {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func replaceCategory(list []domain.Category, c domain.Category) []domain.Category {
	out := make([]domain.Category, len(list))
	for i, item := range list {
		if item.ID == c.ID {
			out[i] = c
			continue
		}
		out[i] = item
	}
	return out
}

func removeCategory(list []domain.Category, id string) []domain.Category {
	out := make([]domain.Category, 0, len(list))
	for _, item := range list {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}
