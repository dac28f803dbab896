package domain

import (
	"strings"
)

// Category represents a category entity in the domain layer.
// Type is optional: a category may be shared by income and expenses.
type Category struct {
	ID    string
	Name  string
	Type  TransactionType // Empty when the category applies to both directions
	Color string
	Icon  string
}

// Validate ensures the category adheres to domain rules
func (c *Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyID
	}
	return validateCategoryFields(c.Name, c.Type)
}

// CategoryDraft is the user-submitted payload for a new category
type CategoryDraft struct {
	Name  string
	Type  TransactionType
	Color string
	Icon  string
}

// Validate ensures the draft can be submitted to the remote store
func (d *CategoryDraft) Validate() error {
	return validateCategoryFields(d.Name, d.Type)
}

// CategoryPatch is a partial update of a category. Nil fields are left unchanged.
type CategoryPatch struct {
	Name  *string
	Type  *TransactionType
	Color *string
	Icon  *string
}

// Validate checks every field the patch sets
func (p *CategoryPatch) Validate() error {
	if p.Name == nil && p.Type == nil && p.Color == nil && p.Icon == nil {
		return ErrEmptyPatch
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrEmptyCategoryName
	}
	if p.Type != nil && *p.Type != "" && !p.Type.IsValid() {
		return ErrInvalidType
	}
	return nil
}

// Apply returns a copy of c with the patch applied
func (p *CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	return c
}

func validateCategoryFields(name string, typ TransactionType) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCategoryName
	}
	// An empty type is allowed for categories
	if typ != "" && !typ.IsValid() {
		return ErrInvalidType
	}
	return nil
}
