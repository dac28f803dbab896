package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// DefaultCategories is the set of categories a fresh installation starts with
var DefaultCategories = []domain.CategoryDraft{
	{Name: "Salary", Type: domain.TransactionTypeIncome, Color: "#48bb78", Icon: "briefcase"},
	{Name: "Freelance", Type: domain.TransactionTypeIncome, Color: "#38b2ac", Icon: "laptop"},
	{Name: "Food", Type: domain.TransactionTypeExpense, Color: "#ed8936", Icon: "utensils"},
	{Name: "Housing", Type: domain.TransactionTypeExpense, Color: "#f56565", Icon: "home"},
	{Name: "Transport", Type: domain.TransactionTypeExpense, Color: "#4299e1", Icon: "car"},
	{Name: "Health", Type: domain.TransactionTypeExpense, Color: "#9f7aea", Icon: "heart"},
	{Name: "Leisure", Type: domain.TransactionTypeExpense, Color: "#ecc94b", Icon: "gamepad"},
}

// CategorySeeder handles seeding of the default categories
type CategorySeeder struct {
	repo domain.CategoryRepository
}

// NewCategorySeeder creates a new CategorySeeder instance
func NewCategorySeeder(repo domain.CategoryRepository) *CategorySeeder {
	return &CategorySeeder{
		repo: repo,
	}
}

// Seed ensures every default category exists in the remote store.
// Categories are matched by name, case insensitive; existing ones are left untouched.
// Returns the number of categories created.
func (s *CategorySeeder) Seed(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list categories: %w", err)
	}

	names := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		names[strings.ToLower(c.Name)] = struct{}{}
	}

	created := 0
	for _, draft := range DefaultCategories {
		if _, ok := names[strings.ToLower(draft.Name)]; ok {
			continue
		}

		// Validate before creating
		if err := draft.Validate(); err != nil {
			return created, err
		}

		if _, err := s.repo.Create(ctx, draft); err != nil {
			return created, fmt.Errorf("failed to create category %q: %w", draft.Name, err)
		}
		created++
	}

	return created, nil
}
