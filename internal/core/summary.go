package core

import (
	"sort"
	"time"
)

// AllAccounts is the account-filter sentinel meaning "no account filter".
const AllAccounts = ""

// DefaultRecentLimit bounds the recent-transactions listing.
const DefaultRecentLimit = 200

// Summary is the monthly balance overview for one account filter.
//
// CarryForward is the net signed balance of everything strictly before the
// first day of the reference month, MonthNet the net of the month itself,
// and NewBalance their sum. HasData distinguishes a genuinely empty result
// set from one that happens to net to zero, so the caller can render an
// empty state instead of a zeroed table.
type Summary struct {
	Account      string
	Year         int
	Month        int // 1-12
	CarryForward Money
	MonthNet     Money
	NewBalance   Money
	HasData      bool
}

// MonthWindow returns the first day of the reference date's month and the
// first day of the following month. December rolls over into January of
// the next year.
func MonthWindow(ref time.Time) (first, next Date) {
	first = NewDate(ref.Year(), int(ref.Month()), 1)
	n := first.AddDate(0, 1, 0)
	next = NewDate(n.Year(), int(n.Month()), n.Day())
	return first, next
}

// Summarize computes the monthly summary over a snapshot.
//
// The filter selects a single account, or every record when it is
// AllAccounts. Records with a blank account never match a specific filter
// but do count under AllAccounts. Null-date records are excluded from both
// aggregation windows. The function is pure and order-independent: it never
// touches the store and two calls over the same snapshot agree exactly.
func Summarize(records []Transaction, account string, ref time.Time) Summary {
	first, next := MonthWindow(ref)

	s := Summary{
		Account: account,
		Year:    first.Year(),
		Month:   int(first.Month()),
	}

	var carry, month int64
	for _, t := range records {
		if account != AllAccounts && t.Account != account {
			continue
		}
		s.HasData = true
		if t.Date.IsNull() {
			continue
		}
		switch {
		case t.Date.Before(first.Time):
			carry += t.Signed()
		case t.Date.Before(next.Time):
			month += t.Signed()
		}
	}

	s.CarryForward = Money{Cents: carry}
	s.MonthNet = Money{Cents: month}
	s.NewBalance = Money{Cents: carry + month}
	return s
}

// ListRecent returns up to limit records, newest first. Null-date records
// sort last; ties keep their snapshot order. Display only, the balances
// never depend on it. A non-positive limit means DefaultRecentLimit.
func ListRecent(records []Transaction, limit int) []Transaction {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	out := make([]Transaction, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		if di.IsNull() || dj.IsNull() {
			// Non-null before null; two nulls keep input order.
			return !di.IsNull() && dj.IsNull()
		}
		return di.After(dj.Time)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Accounts returns the distinct non-empty account names in ascending order.
// It feeds the account filter of the summary view.
func Accounts(records []Transaction) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range records {
		if t.Account == "" {
			continue
		}
		if _, ok := seen[t.Account]; ok {
			continue
		}
		seen[t.Account] = struct{}{}
		out = append(out, t.Account)
	}
	sort.Strings(out)
	return out
}
