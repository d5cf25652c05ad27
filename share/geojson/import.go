package geojson

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/utils"
)

// LoadFeatureCollection reads a GeoJSON feature collection from disk,
// transparently decompressing files with a .gz suffix.
func LoadFeatureCollection(path string) (schema.FeatureCollection, error) {
	var result schema.FeatureCollection

	file, err := os.Open(path)
	if err != nil {
		return result, err
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		zipped, err := gzip.NewReader(file)
		if err != nil {
			return result, err
		}
		defer zipped.Close()
		reader = zipped
	}

	if err := json.NewDecoder(reader).Decode(&result); err != nil {
		return result, fmt.Errorf("decode geo json %s: %w", path, err)
	}

	return result, nil
}

// EmbedValues writes the first time-ordered value of the given column into
// each feature's properties, for map tooltips. Features without data get
// the string "0".
func EmbedValues(fc *schema.FeatureCollection, rows []schema.CountryDay, column schema.Column) {
	first := make(map[string]schema.CountryDay)
	for _, row := range rows {
		if existing, ok := first[row.Country]; !ok || row.Date.Before(existing.Date) {
			first[row.Country] = row
		}
	}

	for i := range fc.Features {
		name := utils.NormalizeCountryName(fc.Features[i].Name())
		display := "0"
		if row, ok := first[name]; ok {
			if v := row.Value(column); v != nil {
				display = strconv.FormatFloat(*v, 'f', -1, 64)
			}
		}
		if fc.Features[i].Properties == nil {
			fc.Features[i].Properties = make(map[string]interface{})
		}
		fc.Features[i].Properties[string(column)] = display
	}
}

// ImportWorldBoundary inserts one boundary document per feature into
// mongodb.
func ImportWorldBoundary(client *mongo.Client, dbName, geoJSONFile string) error {
	result, err := LoadFeatureCollection(geoJSONFile)
	if err != nil {
		return err
	}

	var boundaries []interface{}
	for _, feature := range result.Features {
		name := feature.Name()
		if name == "" {
			return fmt.Errorf("feature %s has no name property", feature.ID)
		}
		boundaries = append(boundaries, schema.Boundary{
			FeatureID: feature.ID,
			Country:   utils.NormalizeCountryName(name),
			Geometry:  feature.Geometry,
		})
	}

	if _, err := client.Database(dbName).Collection(schema.BoundaryCollection).InsertMany(context.Background(), boundaries); err != nil {
		return err
	}

	return nil
}
