package series

import (
	log "github.com/sirupsen/logrus"

	"github.com/epimap/epimap-api/schema"
)

// populationUnit converts a population in thousands into units of 100,000
// inhabitants, the denominator of all per-capita columns.
const populationUnit = 100.0

// PerCapita fills the four per-capita columns of the derived series for
// every country with exactly one population match. Countries with zero or
// multiple matches keep all four columns undefined; they are reported once
// at debug level and otherwise left alone. The computation is independent
// per country and returns a new slice, the input rows are not modified.
func PerCapita(rows []schema.CountryDay, population *schema.PopulationTable) []schema.CountryDay {
	out := make([]schema.CountryDay, len(rows))
	copy(out, rows)

	skipped := make(map[string]struct{})
	for i := range out {
		thousands, ok := population.Lookup(out[i].Country)
		if !ok {
			skipped[out[i].Country] = struct{}{}
			continue
		}
		capita := thousands / populationUnit

		out[i].SumCasesPerCapita = ratio(float64(out[i].SumCases), capita)
		out[i].SumDeathsPerCapita = ratio(float64(out[i].SumDeaths), capita)
		out[i].NewCasesPerCapita = ratio(float64(out[i].NewCases), capita)
		out[i].NewDeathsPerCapita = ratio(float64(out[i].NewDeaths), capita)
	}

	for country := range skipped {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"country": country,
		}).Debug("no unambiguous population match")
	}

	return out
}

func ratio(value, capita float64) *float64 {
	if capita == 0 {
		return nil
	}
	v := value / capita
	return &v
}
