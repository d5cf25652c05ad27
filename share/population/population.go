// Package population loads the region population table used to normalize
// the case series.
package population

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/utils"
)

const logPrefix = "population"

// Load reads a population CSV with a Region column and a population column
// in thousands (Population_2020). Region names are normalized; regions that
// appear more than once stay in the table but never match.
func Load(path string) (*schema.PopulationTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("read population table %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"regions": table.Len(),
	}).Debug("loaded population table")

	return table, nil
}

// Decode reads the population table from a CSV stream.
func Decode(r io.Reader) (*schema.PopulationTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	regionIdx, populationIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "region":
			regionIdx = i
		case "population_2020", "population":
			populationIdx = i
		}
	}
	if regionIdx < 0 || populationIdx < 0 {
		return nil, fmt.Errorf("population table needs Region and Population_2020 columns")
	}

	table := schema.NewPopulationTable()
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		line++

		thousands, err := strconv.ParseFloat(strings.TrimSpace(record[populationIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: unparseable population %q", line, record[populationIdx])
		}
		table.Add(utils.NormalizeCountryName(record[regionIdx]), thousands)
	}

	return table, nil
}
