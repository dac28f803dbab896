package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// categoryRepository implements domain.CategoryRepository
type categoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

// List retrieves all categories ordered by name
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, type, color, icon
		FROM categories
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Create inserts a new category
func (r *categoryRepository) Create(ctx context.Context, draft domain.CategoryDraft) (*domain.Category, error) {
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

	query := `
		INSERT INTO categories (id, name, type, color, icon)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, nullableType(c.Type), c.Color, c.Icon)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &c, nil
}

// Update applies patch and returns the stored category
func (r *categoryRepository) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	row := dbTx.QueryRowContext(ctx, `SELECT id, name, type, color, icon FROM categories WHERE id = $1 FOR UPDATE`, id)
	current, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}

	next := patch.Apply(*current)

	query := `
		UPDATE categories
		SET name = $2, type = $3, color = $4, icon = $5
		WHERE id = $1
	`
	if _, err := dbTx.ExecContext(ctx, query, id, next.Name, nullableType(next.Type), next.Color, next.Icon); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &next, nil
}

// Delete removes a category. Transactions referencing it keep their category_id.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var typ sql.NullString

	if err := row.Scan(&c.ID, &c.Name, &typ, &c.Color, &c.Icon); err != nil {
		return nil, err
	}
	c.Type = domain.TransactionType(typ.String)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid category record %s: %w", c.ID, err)
	}

	return &c, nil
}

func nullableType(t domain.TransactionType) any {
	if t == "" {
		return nil
	}
	return string(t)
}
