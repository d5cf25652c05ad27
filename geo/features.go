// Package geo joins normalized country names onto geographic boundary
// features.
package geo

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/utils"
)

const logPrefix = "geo"

// FeatureIndex maps normalized country names to feature identifiers. It is
// built once from boundary data and read-only afterwards.
type FeatureIndex struct {
	ids map[string]string
}

// NewFeatureIndex builds the index from a boundary feature collection.
// Features without a name or identifier are skipped.
func NewFeatureIndex(fc schema.FeatureCollection) FeatureIndex {
	ids := make(map[string]string, len(fc.Features))
	for _, feature := range fc.Features {
		name := utils.NormalizeCountryName(feature.Name())
		if name == "" || feature.ID == "" {
			continue
		}
		ids[name] = feature.ID
	}
	return FeatureIndex{ids: ids}
}

// ID returns the feature identifier for a normalized country name.
func (x FeatureIndex) ID(country string) (string, bool) {
	id, ok := x.ids[utils.NormalizeCountryName(country)]
	return id, ok
}

// Len returns the number of indexed features.
func (x FeatureIndex) Len() int {
	return len(x.ids)
}

// Names returns the sorted normalized country names of the index.
func (x FeatureIndex) Names() []string {
	names := make([]string, 0, len(x.ids))
	for name := range x.ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reconcile reports every case-dataset country name with no matching
// boundary feature. Matching is exact lowercase equality, no aliasing; the
// returned names stay unresolved and surface downstream as "no data"
// styling. The list is sorted and logged for operator visibility.
func Reconcile(index FeatureIndex, countries []string) []string {
	missing := make([]string, 0)
	for _, country := range countries {
		if _, ok := index.ID(country); !ok {
			missing = append(missing, country)
		}
	}
	sort.Strings(missing)

	if len(missing) > 0 {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"count":  len(missing),
		}).Warn("countries without geo json features")
		for _, country := range missing {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"country": country,
			}).Info("no geo json feature")
		}
	}

	return missing
}
