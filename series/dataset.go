// Package series turns raw per-country daily observations into a complete,
// cumulative, population-normalized time series.
package series

import (
	"sort"
	"time"

	"github.com/epimap/epimap-api/schema"
)

const logPrefix = "series"

// GroupByCountry groups observations by country key. Order within a group
// follows the input order.
func GroupByCountry(observations []schema.Observation) map[string][]schema.Observation {
	groups := make(map[string][]schema.Observation)
	for _, o := range observations {
		groups[o.Country] = append(groups[o.Country], o)
	}
	return groups
}

// Countries returns the sorted distinct country names of the observations.
func Countries(observations []schema.Observation) []string {
	seen := make(map[string]struct{})
	countries := make([]string, 0)
	for _, o := range observations {
		if _, ok := seen[o.Country]; ok {
			continue
		}
		seen[o.Country] = struct{}{}
		countries = append(countries, o.Country)
	}
	sort.Strings(countries)
	return countries
}

// GlobalDates returns the sorted distinct dates present anywhere in the
// observations.
func GlobalDates(observations []schema.Observation) []time.Time {
	seen := make(map[int64]time.Time)
	for _, o := range observations {
		day := o.Date.UTC().Truncate(24 * time.Hour)
		seen[day.Unix()] = day
	}
	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func sortObservations(observations []schema.Observation) {
	sort.Slice(observations, func(i, j int) bool {
		if observations[i].Country != observations[j].Country {
			return observations[i].Country < observations[j].Country
		}
		return observations[i].Date.Before(observations[j].Date)
	})
}

func sortByDate(observations []schema.Observation) {
	sort.Slice(observations, func(i, j int) bool {
		return observations[i].Date.Before(observations[j].Date)
	})
}
