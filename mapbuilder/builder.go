package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/epimap/epimap-api/choropleth"
	"github.com/epimap/epimap-api/external/ecdc"
	"github.com/epimap/epimap-api/geo"
	"github.com/epimap/epimap-api/render"
	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/series"
	"github.com/epimap/epimap-api/share/geojson"
	"github.com/epimap/epimap-api/store"
	"github.com/epimap/epimap-api/utils"
)

// mapJob describes one map page to build.
type mapJob struct {
	Column   schema.Column
	LogScale bool
	Animated bool
}

type builder struct {
	source     ecdc.ECDC
	mongoStore store.MongoStore
	population *schema.PopulationTable
	boundary   schema.FeatureCollection
	index      geo.FeatureIndex
	outDir     string
	settings   render.MapSettings
	jobs       []mapJob
	// countries to render a time series chart page for
	chartCountries []string
}

// Run executes the whole pipeline: fetch the raw dataset, derive the
// per-country series, render the configured map pages and persist the
// series when a store is attached.
func (b *builder) Run() error {
	observations, dates, err := b.source.Run()
	if nil != err {
		return fmt.Errorf("fetch dataset: %w", err)
	}

	completed, err := series.Complete(observations, dates)
	if nil != err {
		return fmt.Errorf("complete series: %w", err)
	}

	rows, err := series.Cumulate(completed)
	if nil != err {
		return fmt.Errorf("cumulate series: %w", err)
	}
	rows = series.PerCapita(rows, b.population)

	countries := series.Countries(completed)
	unmatched := geo.Reconcile(b.index, countries)

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"countries": len(countries),
		"days":      len(dates),
		"unmatched": len(unmatched),
	}).Info("derived series")

	if err := b.renderMaps(rows); nil != err {
		return err
	}

	if err := b.renderCharts(rows); nil != err {
		return err
	}

	if b.mongoStore != nil {
		if err := b.persist(rows, len(countries), len(dates)); nil != err {
			return err
		}
	}

	return nil
}

func (b *builder) renderMaps(rows []schema.CountryDay) error {
	if err := os.MkdirAll(b.outDir, 0755); nil != err {
		return err
	}

	for _, job := range b.jobs {
		styles, scale, err := choropleth.Styles(rows, b.index, choropleth.StyleOptions{
			Column:   job.Column,
			LogScale: job.LogScale,
		})
		if nil != err {
			return fmt.Errorf("style %s: %w", job.Column, err)
		}

		boundary := b.boundary
		geojson.EmbedValues(&boundary, rows, job.Column)

		settings := b.settings
		settings.Title = job.Column.Title()
		settings.ColumnName = job.Column.Title()
		settings.LogScale = job.LogScale

		name := string(job.Column)
		if job.Animated {
			name += "_animated"
		}
		target := filepath.Join(b.outDir, name+".html")

		file, err := os.Create(target)
		if nil != err {
			return err
		}
		if job.Animated {
			err = render.TimeSliderChoropleth(file, boundary, styles, scale, settings)
		} else {
			err = render.ChoroplethMap(file, boundary, choropleth.First(styles), scale, settings)
		}
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if nil != err {
			return fmt.Errorf("render %s: %w", target, err)
		}

		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"file":   target,
		}).Info("map rendered")
	}

	return nil
}

func (b *builder) renderCharts(rows []schema.CountryDay) error {
	if len(b.chartCountries) == 0 {
		return nil
	}

	byCountry := make(map[string][]schema.CountryDay)
	for _, row := range rows {
		byCountry[row.Country] = append(byCountry[row.Country], row)
	}

	for _, name := range b.chartCountries {
		country := utils.NormalizeCountryName(name)
		countryRows, ok := byCountry[country]
		if !ok {
			return fmt.Errorf("no series for chart country %s", country)
		}

		target := filepath.Join(b.outDir, "chart_"+utils.NameToKey(country)+".html")
		file, err := os.Create(target)
		if nil != err {
			return err
		}
		err = render.CountryChart(file, country, countryRows)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if nil != err {
			return fmt.Errorf("render %s: %w", target, err)
		}

		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"file":   target,
		}).Info("chart rendered")
	}

	return nil
}

func (b *builder) persist(rows []schema.CountryDay, countries, days int) error {
	byCountry := make(map[string][]schema.CountryDay)
	for _, row := range rows {
		byCountry[row.Country] = append(byCountry[row.Country], row)
	}
	for country, countryRows := range byCountry {
		if err := b.mongoStore.ReplaceCountrySeries(country, countryRows); nil != err {
			return fmt.Errorf("store series of %s: %w", country, err)
		}
	}

	snapshot, err := b.mongoStore.SaveSnapshot(countries, days)
	if nil != err {
		return fmt.Errorf("save snapshot: %w", err)
	}

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"snapshot":  snapshot.ID,
		"countries": snapshot.Countries,
		"days":      snapshot.Days,
	}).Info("series persisted")

	return nil
}
