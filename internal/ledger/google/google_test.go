package google

import "testing"

func TestIsHeader(t *testing.T) {
	cases := []struct {
		cols []string
		want bool
	}{
		{[]string{"txn_date", "type", "amount"}, true},
		{[]string{"TXN_DATE"}, true},
		{[]string{"2024-02-10", "debit", "30.00"}, false},
		{[]string{}, false},
	}
	for i, tc := range cases {
		if got := isHeader(tc.cols); got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}

func TestToStrings(t *testing.T) {
	got := toStrings([]interface{}{"  a ", 12, 3.5, nil})
	want := []string{"a", "12", "3.5", "<nil>"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
