package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Debit  TxnType = "debit"
	Credit TxnType = "credit"
)

const (
	ModeCash  PaymentMode = "cash"
	ModeBank  PaymentMode = "bank"
	ModeUPI   PaymentMode = "upi"
	ModeCard  PaymentMode = "card"
	ModeOther PaymentMode = "other"
)

type (
	TxnType     string
	PaymentMode string

	// Date is a calendar date. The zero value is the null-date sentinel:
	// such records stay out of date-based aggregates but are still listed.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is one immutable ledger entry. Rows are appended once
	// and never updated or removed.
	Transaction struct {
		Date        Date
		Type        TxnType
		Amount      Money
		Mode        PaymentMode
		Description string
		Account     string
		SubAccount  string
		CreatedAt   time.Time
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyAccount  = errors.New("empty account")
)

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsNull reports whether the date is the null-date sentinel.
func (d Date) IsNull() bool {
	return d.IsZero()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t TxnType) Valid() bool {
	switch t {
	case Debit, Credit:
		return true
	default:
		return false
	}
}

func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeBank, ModeUPI, ModeCard, ModeOther:
		return true
	default:
		return false
	}
}

// PaymentModes lists the accepted modes in entry-form order.
func PaymentModes() []PaymentMode {
	return []PaymentMode{ModeCash, ModeBank, ModeUPI, ModeCard, ModeOther}
}

// Signed returns the record's signed contribution in cents:
// +amount for credit, -amount otherwise. A malformed type deliberately
// falls into the debit branch.
func (t Transaction) Signed() int64 {
	if t.Type == Credit {
		return t.Amount.Cents
	}
	return -t.Amount.Cents
}

// Validate enforces the entry-form contract. It runs at the boundary
// before an append; normalization of rows read back from the store never
// rejects (see NormalizeRow).
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if !t.Mode.Valid() {
		return errors.New("invalid payment mode")
	}
	if strings.TrimSpace(t.Account) == "" {
		return ErrEmptyAccount
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
