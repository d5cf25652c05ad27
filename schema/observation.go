package schema

import (
	"strconv"
	"time"
)

const (
	SeriesCollection = "series"
)

// Column identifies one numeric column of the derived series.
type Column string

const (
	ColumnNewCases           Column = "new_cases"
	ColumnNewDeaths          Column = "new_deaths"
	ColumnSumCases           Column = "sum_cases"
	ColumnSumDeaths          Column = "sum_deaths"
	ColumnSumCasesPerCapita  Column = "sum_cases_per_capita"
	ColumnSumDeathsPerCapita Column = "sum_deaths_per_capita"
	ColumnNewCasesPerCapita  Column = "new_cases_per_capita"
	ColumnNewDeathsPerCapita Column = "new_deaths_per_capita"
)

// Columns lists every selectable column of the derived series.
var Columns = []Column{
	ColumnNewCases,
	ColumnNewDeaths,
	ColumnSumCases,
	ColumnSumDeaths,
	ColumnSumCasesPerCapita,
	ColumnSumDeathsPerCapita,
	ColumnNewCasesPerCapita,
	ColumnNewDeathsPerCapita,
}

// ParseColumn validates a column name coming from the outside.
func ParseColumn(name string) (Column, bool) {
	for _, c := range Columns {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// Title returns the human readable caption of the column, for map legends
// and chart labels.
func (c Column) Title() string {
	switch c {
	case ColumnNewCases:
		return "New cases"
	case ColumnNewDeaths:
		return "New deaths"
	case ColumnSumCases:
		return "Cases"
	case ColumnSumDeaths:
		return "Deaths"
	case ColumnSumCasesPerCapita:
		return "Cases per 100k"
	case ColumnSumDeathsPerCapita:
		return "Deaths per 100k"
	case ColumnNewCasesPerCapita:
		return "New cases per 100k"
	case ColumnNewDeathsPerCapita:
		return "New deaths per 100k"
	}
	return string(c)
}

// Observation - one reported (country, date) record. Country and geo id are
// normalized: all lower case, spaces instead of underscores.
type Observation struct {
	Date      time.Time `json:"date" bson:"date"`
	Country   string    `json:"country" bson:"country"`
	GeoID     string    `json:"geo_id" bson:"geo_id"`
	NewCases  int       `json:"new_cases" bson:"new_cases"`
	NewDeaths int       `json:"new_deaths" bson:"new_deaths"`
}

// CountryDay - one derived (country, date) row. The per-capita columns are
// nil for countries without an unambiguous population match; nil is the only
// representation of an undefined value, a zero rate is always a real zero.
type CountryDay struct {
	Observation        `bson:",inline"`
	SumCases           int      `json:"sum_cases" bson:"sum_cases"`
	SumDeaths          int      `json:"sum_deaths" bson:"sum_deaths"`
	SumCasesPerCapita  *float64 `json:"sum_cases_per_capita" bson:"sum_cases_per_capita,omitempty"`
	SumDeathsPerCapita *float64 `json:"sum_deaths_per_capita" bson:"sum_deaths_per_capita,omitempty"`
	NewCasesPerCapita  *float64 `json:"new_cases_per_capita" bson:"new_cases_per_capita,omitempty"`
	NewDeathsPerCapita *float64 `json:"new_deaths_per_capita" bson:"new_deaths_per_capita,omitempty"`
}

// Value returns the selected column of the row. Count columns are always
// defined; per-capita columns may return nil.
func (d CountryDay) Value(column Column) *float64 {
	switch column {
	case ColumnNewCases:
		v := float64(d.NewCases)
		return &v
	case ColumnNewDeaths:
		v := float64(d.NewDeaths)
		return &v
	case ColumnSumCases:
		v := float64(d.SumCases)
		return &v
	case ColumnSumDeaths:
		v := float64(d.SumDeaths)
		return &v
	case ColumnSumCasesPerCapita:
		return d.SumCasesPerCapita
	case ColumnSumDeathsPerCapita:
		return d.SumDeathsPerCapita
	case ColumnNewCasesPerCapita:
		return d.NewCasesPerCapita
	case ColumnNewDeathsPerCapita:
		return d.NewDeathsPerCapita
	}
	return nil
}

// TimeKey returns the animation key for the row: the unix timestamp of the
// observation date at UTC midnight, in seconds, as a decimal string.
func (d CountryDay) TimeKey() string {
	day := d.Date.UTC().Truncate(24 * time.Hour)
	return strconv.FormatInt(day.Unix(), 10)
}
