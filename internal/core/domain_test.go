package core

import (
	"testing"
	"time"
)

func TestSigned(t *testing.T) {
	cases := []struct {
		typ  TxnType
		amt  int64
		want int64
	}{
		{Credit, 100, 100},
		{Debit, 100, -100},
		{TxnType("transfer"), 50, -50}, // unknown types sign as debit
		{TxnType(""), 30, -30},
	}
	for _, tc := range cases {
		txn := Transaction{Type: tc.typ, Amount: Money{Cents: tc.amt}}
		if got := txn.Signed(); got != tc.want {
			t.Fatalf("type=%q expected %d, got %d", tc.typ, tc.want, got)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        NewDate(2024, 2, 10),
		Type:        Debit,
		Amount:      Money{Cents: 3000},
		Mode:        ModeUPI,
		Description: "groceries",
		Account:     "household",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{Time: time.Time{}}, Type: Debit, Amount: Money{Cents: 1}, Mode: ModeCash, Account: "a"},
		{Date: NewDate(2024, 1, 1), Type: TxnType("refund"), Amount: Money{Cents: 1}, Mode: ModeCash, Account: "a"},
		{Date: NewDate(2024, 1, 1), Type: Debit, Amount: Money{Cents: -1}, Mode: ModeCash, Account: "a"},
		{Date: NewDate(2024, 1, 1), Type: Debit, Amount: Money{Cents: 1}, Mode: PaymentMode("cheque"), Account: "a"},
		{Date: NewDate(2024, 1, 1), Type: Debit, Amount: Money{Cents: 1}, Mode: ModeCash, Account: "  "},
	}
	for i, txn := range bads {
		if err := txn.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestZeroAmountIsValid(t *testing.T) {
	txn := Transaction{
		Date:    NewDate(2024, 1, 1),
		Type:    Credit,
		Amount:  Money{},
		Mode:    ModeOther,
		Account: "misc",
	}
	if err := txn.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}
}
