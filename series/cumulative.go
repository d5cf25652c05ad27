package series

import (
	"fmt"
	"time"

	"github.com/epimap/epimap-api/schema"
)

// Cumulate computes running totals of new cases and deaths per country over
// the date-ascending ordering. The input must be a completed series sorted
// by (country, date), as produced by Complete; out-of-order or duplicate
// dates within a country are reported as errors instead of producing wrong
// sums.
func Cumulate(observations []schema.Observation) ([]schema.CountryDay, error) {
	rows := make([]schema.CountryDay, 0, len(observations))

	country := ""
	sumCases, sumDeaths := 0, 0
	var lastDate int64

	for _, o := range observations {
		if o.NewCases < 0 || o.NewDeaths < 0 {
			return nil, fmt.Errorf("negative count for (%s, %s)",
				o.Country, o.Date.Format("2006-01-02"))
		}

		day := o.Date.UTC().Truncate(24 * time.Hour).Unix()
		if o.Country != country {
			country = o.Country
			sumCases, sumDeaths = 0, 0
		} else if day <= lastDate {
			return nil, fmt.Errorf("dates out of order for country %s at %s",
				o.Country, o.Date.Format("2006-01-02"))
		}
		lastDate = day

		sumCases += o.NewCases
		sumDeaths += o.NewDeaths
		rows = append(rows, schema.CountryDay{
			Observation: o,
			SumCases:    sumCases,
			SumDeaths:   sumDeaths,
		})
	}

	return rows, nil
}
