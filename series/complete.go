package series

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/epimap/epimap-api/schema"
)

var (
	ErrNoSourceRow = fmt.Errorf("country has no raw observations to complete from")
)

// Complete closes the observations over the product of the given global
// date set and the countries observed in the data. Synthesized rows carry
// zero counts and copy the geo id from the country's chronologically last
// raw row. The result is sorted by (country, date) ascending.
func Complete(observations []schema.Observation, dates []time.Time) ([]schema.Observation, error) {
	return CompleteCountries(observations, dates, Countries(observations))
}

// CompleteCountries is Complete for an explicit country set. It fails when
// a listed country has no raw rows, or when the raw data contains duplicate
// (country, date) pairs.
func CompleteCountries(observations []schema.Observation, dates []time.Time, countries []string) ([]schema.Observation, error) {
	groups := GroupByCountry(observations)

	completed := make([]schema.Observation, 0, len(countries)*len(dates))
	for _, country := range countries {
		group := groups[country]
		if len(group) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoSourceRow, country)
		}

		rows := make([]schema.Observation, len(group))
		copy(rows, group)
		sortByDate(rows)

		observed := make(map[int64]struct{}, len(rows))
		for _, row := range rows {
			day := row.Date.UTC().Truncate(24 * time.Hour).Unix()
			if _, ok := observed[day]; ok {
				return nil, fmt.Errorf("duplicate observation for (%s, %s)",
					country, row.Date.Format("2006-01-02"))
			}
			observed[day] = struct{}{}
		}

		// The geo id and any other per-country attributes come from the
		// last observed row.
		last := rows[len(rows)-1]
		synthesized := 0
		for _, date := range dates {
			if _, ok := observed[date.Unix()]; ok {
				continue
			}
			rows = append(rows, schema.Observation{
				Date:      date,
				Country:   country,
				GeoID:     last.GeoID,
				NewCases:  0,
				NewDeaths: 0,
			})
			synthesized++
		}

		if len(rows) != len(dates) {
			return nil, fmt.Errorf("country %s covers %d dates, global date set has %d",
				country, len(rows), len(dates))
		}

		if synthesized > 0 {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"country": country,
				"rows":    synthesized,
			}).Debug("filled missing dates")
		}

		completed = append(completed, rows...)
	}

	sortObservations(completed)
	return completed, nil
}
