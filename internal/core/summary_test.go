package core

import (
	"testing"
	"time"
)

func txn(date Date, typ TxnType, cents int64, account string) Transaction {
	return Transaction{Date: date, Type: typ, Amount: Money{Cents: cents}, Account: account}
}

// The three-record scenario used throughout: one January credit, a February
// debit and a February credit.
func scenario() []Transaction {
	return []Transaction{
		txn(NewDate(2024, 1, 15), Credit, 10000, "main"),
		txn(NewDate(2024, 2, 10), Debit, 3000, "main"),
		txn(NewDate(2024, 2, 20), Credit, 500, "main"),
	}
}

func TestSummarizeFebruary(t *testing.T) {
	// Any date inside February selects the same window.
	for _, ref := range []time.Time{
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 14, 12, 30, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
	} {
		s := Summarize(scenario(), AllAccounts, ref)
		if !s.HasData {
			t.Fatalf("ref=%v expected data", ref)
		}
		if s.CarryForward.Cents != 10000 || s.MonthNet.Cents != -2500 || s.NewBalance.Cents != 7500 {
			t.Fatalf("ref=%v got carry=%d net=%d balance=%d", ref, s.CarryForward.Cents, s.MonthNet.Cents, s.NewBalance.Cents)
		}
	}
}

func TestSummarizeJanuary(t *testing.T) {
	s := Summarize(scenario(), AllAccounts, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	if s.CarryForward.Cents != 0 || s.MonthNet.Cents != 10000 || s.NewBalance.Cents != 10000 {
		t.Fatalf("got carry=%d net=%d balance=%d", s.CarryForward.Cents, s.MonthNet.Cents, s.NewBalance.Cents)
	}
}

func TestSummarizeBalanceIdentity(t *testing.T) {
	s := Summarize(scenario(), AllAccounts, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC))
	if s.CarryForward.Cents+s.MonthNet.Cents != s.NewBalance.Cents {
		t.Fatalf("carry+net must equal balance: %d + %d != %d", s.CarryForward.Cents, s.MonthNet.Cents, s.NewBalance.Cents)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	records := scenario()
	reversed := []Transaction{records[2], records[1], records[0]}
	ref := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	a := Summarize(records, AllAccounts, ref)
	b := Summarize(reversed, AllAccounts, ref)
	if a != b {
		t.Fatalf("summaries differ by input order: %+v vs %+v", a, b)
	}
}

func TestSummarizePartition(t *testing.T) {
	// Signed sums over before + inMonth + after must equal the full sum.
	records := append(scenario(),
		txn(NewDate(2024, 3, 2), Debit, 700, "main"),
		txn(NewDate(2023, 11, 5), Credit, 4200, "main"),
	)
	first, next := MonthWindow(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	var before, inMonth, after, total int64
	for _, r := range records {
		total += r.Signed()
		switch {
		case r.Date.Before(first.Time):
			before += r.Signed()
		case r.Date.Before(next.Time):
			inMonth += r.Signed()
		default:
			after += r.Signed()
		}
	}
	if before+inMonth+after != total {
		t.Fatalf("partition does not cover the set: %d+%d+%d != %d", before, inMonth, after, total)
	}
	s := Summarize(records, AllAccounts, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	if s.CarryForward.Cents != before || s.MonthNet.Cents != inMonth {
		t.Fatalf("summary disagrees with manual partition")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, AllAccounts, time.Now())
	if s.HasData {
		t.Fatalf("empty input must signal no data")
	}
	if s.CarryForward.Cents != 0 || s.MonthNet.Cents != 0 || s.NewBalance.Cents != 0 {
		t.Fatalf("empty input must be all-zero, got %+v", s)
	}
}

func TestSummarizeAccountFilter(t *testing.T) {
	records := append(scenario(),
		txn(NewDate(2024, 2, 12), Credit, 9900, "savings"),
		txn(NewDate(2024, 2, 13), Debit, 100, ""), // blank account
	)
	ref := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	s := Summarize(records, "savings", ref)
	if !s.HasData || s.MonthNet.Cents != 9900 {
		t.Fatalf("savings filter: got %+v", s)
	}

	// No record matches: all-zero with no-data signal, while the account
	// list over the unfiltered set is unaffected.
	s = Summarize(records, "missing", ref)
	if s.HasData || s.NewBalance.Cents != 0 {
		t.Fatalf("missing account should be no-data, got %+v", s)
	}
	accounts := Accounts(records)
	if len(accounts) != 2 || accounts[0] != "main" || accounts[1] != "savings" {
		t.Fatalf("unexpected accounts %v", accounts)
	}

	// Blank-account rows never match a specific filter but count under all.
	all := Summarize(records, AllAccounts, ref)
	if all.MonthNet.Cents != -2500+9900-100 {
		t.Fatalf("all-accounts net should include the blank-account row, got %d", all.MonthNet.Cents)
	}
}

func TestSummarizeNullDateExcluded(t *testing.T) {
	records := append(scenario(), txn(Date{}, Credit, 100000, "main"))
	s := Summarize(records, AllAccounts, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	if s.CarryForward.Cents != 10000 || s.MonthNet.Cents != -2500 {
		t.Fatalf("null-date record must not reach the aggregates, got %+v", s)
	}
	if !s.HasData {
		t.Fatalf("null-date record still counts as data")
	}
}

func TestMonthWindowYearRollover(t *testing.T) {
	first, next := MonthWindow(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC))
	if first != NewDate(2024, 12, 1) {
		t.Fatalf("unexpected first day %v", first)
	}
	if next != NewDate(2025, 1, 1) {
		t.Fatalf("December must roll into January of the next year, got %v", next)
	}
}

func TestListRecent(t *testing.T) {
	records := []Transaction{
		txn(Date{}, Debit, 1, "a"), // null date sorts last
		txn(NewDate(2024, 1, 1), Debit, 2, "a"),
		txn(NewDate(2024, 3, 1), Debit, 3, "a"),
		txn(NewDate(2024, 2, 1), Debit, 4, "a"),
	}
	recent := ListRecent(records, 0)
	if len(recent) != 4 {
		t.Fatalf("expected all records, got %d", len(recent))
	}
	want := []int64{3, 4, 2, 1}
	for i, w := range want {
		if recent[i].Amount.Cents != w {
			t.Fatalf("position %d: expected amount %d, got %d", i, w, recent[i].Amount.Cents)
		}
	}

	if got := ListRecent(records, 2); len(got) != 2 || got[0].Amount.Cents != 3 {
		t.Fatalf("limit should truncate after sorting, got %v", got)
	}
}

func TestListRecentStableTies(t *testing.T) {
	day := NewDate(2024, 5, 5)
	records := []Transaction{
		txn(day, Debit, 1, "a"),
		txn(day, Debit, 2, "a"),
		txn(day, Debit, 3, "a"),
	}
	recent := ListRecent(records, 0)
	for i, want := range []int64{1, 2, 3} {
		if recent[i].Amount.Cents != want {
			t.Fatalf("ties must keep snapshot order: position %d got %d", i, recent[i].Amount.Cents)
		}
	}
}

func TestUnparsableAmountStillListed(t *testing.T) {
	row := []string{"2024-02-10", "debit", "junk", "cash", "typo", "main", "", ""}
	bad, _ := NormalizeRow(row)
	records := append(scenario(), bad)

	s := Summarize(records, AllAccounts, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	if s.MonthNet.Cents != -2500 {
		t.Fatalf("coerced-zero amount must not move the aggregates, got %d", s.MonthNet.Cents)
	}

	recent := ListRecent(records, 0)
	found := false
	for _, r := range recent {
		if r.Description == "typo" {
			found = true
		}
	}
	if !found {
		t.Fatalf("coerced record must still appear in the recent list")
	}
}

func TestUnparsableDateListedLast(t *testing.T) {
	bad, _ := NormalizeRow([]string{"??", "debit", "1.00", "cash", "nodate", "main", "", ""})
	records := append(scenario(), bad)
	recent := ListRecent(records, 0)
	if recent[len(recent)-1].Description != "nodate" {
		t.Fatalf("null-date record must sort last, got %v", recent)
	}
}
