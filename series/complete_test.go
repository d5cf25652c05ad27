package series

import (
	"errors"
	"testing"
	"time"

	"github.com/epimap/epimap-api/schema"
)

func day(n int) time.Time {
	return time.Date(2020, 3, n, 0, 0, 0, 0, time.UTC)
}

func obs(country string, date time.Time, cases, deaths int) schema.Observation {
	return schema.Observation{
		Date:      date,
		Country:   country,
		GeoID:     country[:1],
		NewCases:  cases,
		NewDeaths: deaths,
	}
}

func TestCompleteFillsMissingDates(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(1), 5, 0),
		obs("a", day(3), 2, 1),
	}
	dates := []time.Time{day(1), day(2), day(3)}

	completed, err := Complete(raw, dates)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(completed) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(completed))
	}

	expected := []schema.Observation{
		obs("a", day(1), 5, 0),
		obs("a", day(2), 0, 0),
		obs("a", day(3), 2, 1),
	}
	for i, e := range expected {
		got := completed[i]
		if !got.Date.Equal(e.Date) || got.Country != e.Country ||
			got.NewCases != e.NewCases || got.NewDeaths != e.NewDeaths {
			t.Fatalf("row %d: got %+v, expected %+v", i, got, e)
		}
	}
	// synthesized rows carry the geo id of the last raw row
	if completed[1].GeoID != "a" {
		t.Fatalf("synthesized row lost geo id: %+v", completed[1])
	}
}

func TestCompleteCoversGlobalDateSet(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(1), 1, 0),
		obs("b", day(2), 2, 0),
		obs("c", day(3), 3, 0),
	}
	dates := GlobalDates(raw)

	completed, err := Complete(raw, dates)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	byCountry := GroupByCountry(completed)
	for country, rows := range byCountry {
		if len(rows) != len(dates) {
			t.Fatalf("country %s has %d rows, expected %d", country, len(rows), len(dates))
		}
		for i, row := range rows {
			if !row.Date.Equal(dates[i]) {
				t.Fatalf("country %s row %d has date %s, expected %s",
					country, i, row.Date, dates[i])
			}
		}
	}
}

func TestCompleteCountriesMissingSourceRow(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(1), 1, 0),
	}

	_, err := CompleteCountries(raw, []time.Time{day(1)}, []string{"a", "atlantis"})
	if !errors.Is(err, ErrNoSourceRow) {
		t.Fatalf("expected ErrNoSourceRow, got %v", err)
	}
}

func TestCompleteDuplicateObservation(t *testing.T) {
	raw := []schema.Observation{
		obs("a", day(1), 1, 0),
		obs("a", day(1), 2, 0),
	}

	_, err := Complete(raw, []time.Time{day(1)})
	if err == nil {
		t.Fatal("expected an error for duplicate (country, date) pair")
	}
}

func TestGlobalDates(t *testing.T) {
	raw := []schema.Observation{
		obs("b", day(3), 0, 0),
		obs("a", day(1), 0, 0),
		obs("b", day(1), 0, 0),
	}

	dates := GlobalDates(raw)
	if len(dates) != 2 {
		t.Fatalf("expected 2 distinct dates, got %d", len(dates))
	}
	if !dates[0].Equal(day(1)) || !dates[1].Equal(day(3)) {
		t.Fatalf("dates not sorted: %v", dates)
	}
}

func TestCountries(t *testing.T) {
	raw := []schema.Observation{
		obs("norway", day(1), 0, 0),
		obs("austria", day(1), 0, 0),
		obs("norway", day(2), 0, 0),
	}

	countries := Countries(raw)
	if len(countries) != 2 || countries[0] != "austria" || countries[1] != "norway" {
		t.Fatalf("unexpected countries: %v", countries)
	}
}
