// Package ecdc fetches the ECDC worldwide COVID-19 geographic distribution
// dataset.
package ecdc

import (
	"time"

	"github.com/epimap/epimap-api/schema"
)

// ECDC - interface to fetch the worldwide case distribution dataset
type ECDC interface {
	Run() ([]schema.Observation, []time.Time, error)
}

const (
	logPrefix = "ecdc"

	// DefaultPageURL is the publication page that links today's dataset.
	DefaultPageURL = "https://www.ecdc.europa.eu/en/publications-data/" +
		"download-todays-data-geographic-distribution-covid-19-cases-worldwide"
)
