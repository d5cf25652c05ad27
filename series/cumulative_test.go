package series

import (
	"testing"
	"time"

	"github.com/epimap/epimap-api/schema"
)

func TestCumulatePrefixSums(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(1), 5, 1),
		obs("a", day(2), 0, 0),
		obs("a", day(3), 2, 2),
		obs("b", day(1), 1, 0),
		obs("b", day(2), 1, 1),
		obs("b", day(3), 1, 0),
	}

	rows, err := Cumulate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	expectedCases := []int{5, 5, 7, 1, 2, 3}
	expectedDeaths := []int{1, 1, 3, 0, 1, 1}
	for i, row := range rows {
		if row.SumCases != expectedCases[i] {
			t.Fatalf("row %d: sum_cases = %d, expected %d", i, row.SumCases, expectedCases[i])
		}
		if row.SumDeaths != expectedDeaths[i] {
			t.Fatalf("row %d: sum_deaths = %d, expected %d", i, row.SumDeaths, expectedDeaths[i])
		}
	}
}

func TestCumulateMonotonic(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(1), 3, 0),
		obs("a", day(2), 0, 2),
		obs("a", day(3), 10, 0),
		obs("a", day(4), 0, 0),
	}

	rows, err := Cumulate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].SumCases < rows[i-1].SumCases || rows[i].SumDeaths < rows[i-1].SumDeaths {
			t.Fatalf("cumulative sums decreased at row %d", i)
		}
	}
}

func TestCumulateResetsPerCountry(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(1), 7, 1),
		obs("b", day(1), 2, 0),
	}

	rows, err := Cumulate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if rows[1].SumCases != 2 || rows[1].SumDeaths != 0 {
		t.Fatalf("country b inherited sums from country a: %+v", rows[1])
	}
}

func TestCumulateOutOfOrderDates(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(2), 1, 0),
		obs("a", day(1), 1, 0),
	}

	if _, err := Cumulate(raw); err == nil {
		t.Fatal("expected an error for out-of-order dates")
	}
}

func TestCumulateDuplicateDates(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(1), 1, 0),
		obs("a", day(1), 1, 0),
	}

	if _, err := Cumulate(raw); err == nil {
		t.Fatal("expected an error for duplicate dates")
	}
}

func TestCumulateNegativeCount(t *testing.T) {
	raw := []schema.Observation{
		{Date: day(1), Country: "a", NewCases: -1},
	}

	if _, err := Cumulate(raw); err == nil {
		t.Fatal("expected an error for a negative count")
	}
}

func TestCumulateTimeKeys(t *testing.T) {
	raw := []schema.Observation{
		obs("a", time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), 1, 0),
	}

	rows, err := Cumulate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	// 2020-03-01T00:00:00Z
	if key := rows[0].TimeKey(); key != "1583020800" {
		t.Fatalf("unexpected time key %q", key)
	}
}
