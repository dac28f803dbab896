package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// MaxDescriptionLength bounds the description of a transaction, in characters
const MaxDescriptionLength = 200

// Transaction represents a transaction entity in the domain layer.
// Owned by the remote store; the application state holds a cached copy.
type Transaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal // ABSOLUTE VALUE (Always non-negative)
	Type        TransactionType // 'income' or 'expense'
	Date        time.Time       // Calendar date, time of day is ignored
	CategoryID  *string
	Category    *Category // Joined category, nil when not loaded or not set
}

// SignedAmount returns the amount with the sign implied by the transaction type
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate ensures the transaction adheres to domain rules.
// Remote records are validated before entering the application state.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	return validateFields(t.Description, t.Amount, t.Type, t.Date)
}

// TransactionDraft is the user-submitted payload for a new transaction
type TransactionDraft struct {
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Date        time.Time
	CategoryID  *string
}

// Validate ensures the draft can be submitted to the remote store
func (d *TransactionDraft) Validate() error {
	return validateFields(d.Description, d.Amount, d.Type, d.Date)
}

// TransactionPatch is a partial update of a transaction.
// Nil fields are left unchanged. A CategoryID pointing to an empty string
// clears the category reference.
type TransactionPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Type        *TransactionType
	Date        *time.Time
	CategoryID  *string
}

// IsEmpty reports whether the patch changes nothing
func (p *TransactionPatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Type == nil && p.Date == nil && p.CategoryID == nil
}

// Validate checks every field the patch sets
func (p *TransactionPatch) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPatch
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if p.Type != nil && !p.Type.IsValid() {
		return ErrInvalidType
	}
	if p.Date != nil && p.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Apply returns a copy of t with the patch applied
func (p *TransactionPatch) Apply(t Transaction) Transaction {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Date != nil {
		t.Date = CalendarDate(*p.Date)
	}
	if p.CategoryID != nil {
		if *p.CategoryID == "" {
			t.CategoryID = nil
		} else {
			id := *p.CategoryID
			t.CategoryID = &id
		}
		t.Category = nil
	}
	return t
}

// CalendarDate strips the time of day, keeping the calendar day in UTC
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateFields(description string, amount decimal.Decimal, typ TransactionType, date time.Time) error {
	if err := validateDescription(description); err != nil {
		return err
	}
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !typ.IsValid() {
		return ErrInvalidType
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
