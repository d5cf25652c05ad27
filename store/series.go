package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/epimap/epimap-api/schema"
)

var (
	ErrCountryNotFound = fmt.Errorf("no series stored for country")
)

// SeriesUpdater - write the derived series of a country
type SeriesUpdater interface {
	ReplaceCountrySeries(country string, rows []schema.CountryDay) error
}

// SeriesGetter - read back stored series
type SeriesGetter interface {
	GetCountrySeries(country string) ([]schema.CountryDay, error)
	ListCountries() ([]string, error)
	// latest cumulative cases and deaths of a country
	LatestTotals(country string) (int, int, error)
}

type SeriesOperator interface {
	SeriesUpdater
	SeriesGetter
}

// SnapshotOperator - bookkeeping of completed pipeline runs
type SnapshotOperator interface {
	SaveSnapshot(countries, days int) (schema.Snapshot, error)
	LatestSnapshot() (schema.Snapshot, error)
}

// ReplaceCountrySeries drops the stored series of a country and inserts the
// given rows. The derived series is immutable per run, so replacement is
// the only write path.
func (m mongoDB) ReplaceCountrySeries(country string, rows []schema.CountryDay) error {
	c := m.client.Database(m.database).Collection(schema.SeriesCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if _, err := c.DeleteMany(ctx, bson.M{"country": country}); nil != err {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	documents := make([]interface{}, len(rows))
	for i, row := range rows {
		documents[i] = row
	}

	if _, err := c.InsertMany(ctx, documents); nil != err {
		return err
	}

	log.WithFields(log.Fields{
		"prefix":  mongoLogPrefix,
		"country": country,
		"rows":    len(rows),
	}).Debug("replaced country series")

	return nil
}

// GetCountrySeries returns a country's stored series in date order.
func (m mongoDB) GetCountrySeries(country string) ([]schema.CountryDay, error) {
	c := m.client.Database(m.database).Collection(schema.SeriesCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cursor, err := c.Find(ctx, bson.M{"country": country},
		options.Find().SetSort(bson.M{"date": 1}))
	if nil != err {
		return nil, err
	}

	var rows []schema.CountryDay
	if err := cursor.All(ctx, &rows); nil != err {
		return nil, err
	}
	return rows, nil
}

// ListCountries returns the sorted distinct countries with a stored series.
func (m mongoDB) ListCountries() ([]string, error) {
	c := m.client.Database(m.database).Collection(schema.SeriesCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	values, err := c.Distinct(ctx, "country", bson.M{})
	if nil != err {
		return nil, err
	}

	countries := make([]string, 0, len(values))
	for _, v := range values {
		if country, ok := v.(string); ok {
			countries = append(countries, country)
		}
	}
	// Distinct gives no ordering guarantee
	sort.Strings(countries)
	return countries, nil
}

// LatestTotals returns the cumulative cases and deaths of a country's most
// recent day.
func (m mongoDB) LatestTotals(country string) (int, int, error) {
	c := m.client.Database(m.database).Collection(schema.SeriesCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var row schema.CountryDay
	err := c.FindOne(ctx, bson.M{"country": country},
		options.FindOne().SetSort(bson.M{"date": -1})).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, 0, fmt.Errorf("%w: %s", ErrCountryNotFound, country)
	}
	if nil != err {
		return 0, 0, err
	}

	return row.SumCases, row.SumDeaths, nil
}

// SaveSnapshot records one completed pipeline run.
func (m mongoDB) SaveSnapshot(countries, days int) (schema.Snapshot, error) {
	c := m.client.Database(m.database).Collection(schema.SnapshotCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	snapshot := schema.Snapshot{
		ID:          uuid.New().String(),
		CreatedTime: time.Now().UTC().Unix(),
		Countries:   countries,
		Days:        days,
	}

	if _, err := c.InsertOne(ctx, snapshot); nil != err {
		return schema.Snapshot{}, err
	}
	return snapshot, nil
}

// LatestSnapshot returns the most recent completed run.
func (m mongoDB) LatestSnapshot() (schema.Snapshot, error) {
	c := m.client.Database(m.database).Collection(schema.SnapshotCollection)
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var snapshot schema.Snapshot
	err := c.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{
			{Key: "created_time", Value: -1},
			{Key: "_id", Value: -1},
		})).Decode(&snapshot)
	if nil != err {
		return schema.Snapshot{}, err
	}
	return snapshot, nil
}
