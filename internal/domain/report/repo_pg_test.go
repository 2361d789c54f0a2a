package report

import (
	"strings"
	"testing"
)

func TestParseYear(t *testing.T) {
	if _, err := parseYear("2024"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "20x4", "2024; DROP TABLE"} {
		if _, err := parseYear(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestCaseFilter_AllOmitsGroupPredicate(t *testing.T) {
	clause, args := caseFilter(AllGroups, 2024)
	if strings.Contains(clause, "groupname") {
		t.Errorf("sentinel filter must omit group predicate: %s", clause)
	}
	if len(args) != 1 {
		t.Errorf("expected 1 arg, got %d", len(args))
	}
}

func TestCaseFilter_SpecificGroup(t *testing.T) {
	clause, args := caseFilter("Respiratory", 2024)
	if !strings.Contains(clause, "groupname = $2") {
		t.Errorf("expected exact-match group predicate: %s", clause)
	}
	if len(args) != 2 || args[1] != "Respiratory" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestFormatRate(t *testing.T) {
	cases := []struct {
		cases      int64
		population int64
		want       string
	}{
		{15, 100000, "15.00"},
		{0, 100000, "0.00"},
		{7, 0, "0.00"},
		{3, -1, "0.00"},
		{1, 300000, "0.33"},
		{12345, 1000000, "1234.50"},
	}
	for _, tc := range cases {
		if got := FormatRate(tc.cases, tc.population); got != tc.want {
			t.Errorf("FormatRate(%d, %d) = %s, want %s", tc.cases, tc.population, got, tc.want)
		}
	}
}
