package ecdc

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/series"
	"github.com/epimap/epimap-api/utils"
)

// Header spellings vary between the xls and csv editions of the dataset;
// both map onto the same canonical columns.
var columnAliases = map[string][]string{
	"date":       {"daterep", "date"},
	"new_cases":  {"cases"},
	"new_deaths": {"deaths"},
	"country":    {"countriesandterritories", "countries and territories"},
	"geo_id":     {"geoid"},
}

var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
}

// DecodeCSV reads the raw dataset and returns normalized observations plus
// the sorted global date set. Missing columns, unparseable rows and
// negative counts fail fast with a descriptive error instead of silently
// producing wrong cumulative sums later.
func DecodeCSV(r io.Reader) ([]schema.Observation, []time.Time, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if nil != err {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	columns, err := resolveColumns(header)
	if nil != err {
		return nil, nil, err
	}

	observations := make([]schema.Observation, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if nil != err {
			return nil, nil, fmt.Errorf("read csv record: %w", err)
		}
		line++

		observation, err := decodeRecord(record, columns)
		if nil != err {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		observations = append(observations, observation)
	}

	return observations, series.GlobalDates(observations), nil
}

func resolveColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		for canonical, aliases := range columnAliases {
			for _, alias := range aliases {
				if name == alias {
					columns[canonical] = i
				}
			}
		}
	}

	for canonical := range columnAliases {
		if _, ok := columns[canonical]; !ok {
			return nil, fmt.Errorf("dataset is missing the %s column", canonical)
		}
	}
	return columns, nil
}

func decodeRecord(record []string, columns map[string]int) (schema.Observation, error) {
	var observation schema.Observation

	date, err := parseDate(record[columns["date"]])
	if nil != err {
		return observation, err
	}

	cases, err := parseCount(record[columns["new_cases"]], "cases")
	if nil != err {
		return observation, err
	}
	deaths, err := parseCount(record[columns["new_deaths"]], "deaths")
	if nil != err {
		return observation, err
	}

	observation = schema.Observation{
		Date:      date,
		Country:   utils.NormalizeCountryName(record[columns["country"]]),
		GeoID:     strings.ToLower(strings.TrimSpace(record[columns["geo_id"]])),
		NewCases:  cases,
		NewDeaths: deaths,
	}
	return observation, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

func parseCount(value, what string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(value))
	if nil != err {
		return 0, fmt.Errorf("unparseable %s count %q", what, value)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative %s count %d", what, count)
	}
	return count, nil
}
