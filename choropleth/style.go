package choropleth

import (
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/epimap/epimap-api/consts"
	"github.com/epimap/epimap-api/geo"
	"github.com/epimap/epimap-api/schema"
)

// StyleOptions selects what to style and how.
type StyleOptions struct {
	// Column of the derived series to visualize.
	Column schema.Column
	// Countries to style; empty means every country present in the rows.
	Countries []string
	// LogScale applies the natural log transform to values and range.
	LogScale bool
	// Palette is a name from consts.Palettes; empty uses the default.
	Palette string
	// MinValue and MaxValue override the computed scale bounds.
	MinValue *float64
	MaxValue *float64
	// Threshold hides (transformed) values below it.
	Threshold *float64
}

// Range computes the observed minimum and maximum of a column across the
// given countries, after the optional log transform. Both bounds are seeded
// at 0.0, so an all-nonnegative series without the transform never reports
// a negative floor. Undefined values are excluded.
func Range(rows []schema.CountryDay, countries []string, column schema.Column, logScale bool) schema.ValueRange {
	groups := groupByCountry(rows)
	selected := selectCountries(groups, countries)

	r := schema.ValueRange{Min: 0.0, Max: 0.0}
	for _, country := range selected {
		for _, v := range Values(groups[country], column, logScale) {
			if v == nil {
				continue
			}
			if *v < r.Min {
				r.Min = *v
			}
			if *v > r.Max {
				r.Max = *v
			}
		}
	}
	return r
}

// Styles builds the time-keyed style dictionary for the selected countries
// together with the color scale used. Countries without a boundary feature
// are skipped; undefined and below-threshold values get the blank sentinel
// with zero opacity. Malformed selections yield empty or partial
// dictionaries, never a panic.
func Styles(rows []schema.CountryDay, index geo.FeatureIndex, options StyleOptions) (schema.TimeStyleDictionary, LinearScale, error) {
	groups := groupByCountry(rows)
	selected := selectCountries(groups, options.Countries)

	bounds := Range(rows, selected, options.Column, options.LogScale)
	if options.MinValue != nil {
		bounds.Min = *options.MinValue
	}
	if options.MaxValue != nil {
		bounds.Max = *options.MaxValue
	}

	palette := options.Palette
	if palette == "" {
		palette = consts.DefaultPalette
	}
	scale, err := NewPaletteScale(palette, bounds.Min, bounds.Max)
	if err != nil {
		return nil, LinearScale{}, err
	}

	styles := make(schema.TimeStyleDictionary)
	for _, country := range selected {
		countryRows := groups[country]
		if len(countryRows) == 0 {
			continue
		}
		featureID, ok := index.ID(country)
		if !ok {
			continue
		}

		values := Values(countryRows, options.Column, options.LogScale)
		timed := make(map[string]schema.Style, len(values))
		for i, v := range values {
			timed[countryRows[i].TimeKey()] = styleValue(v, scale, options.Threshold)
		}
		styles[featureID] = timed
	}

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"column":    options.Column,
		"features":  len(styles),
		"min_value": bounds.Min,
		"max_value": bounds.Max,
	}).Debug("created style dictionary")

	return styles, scale, nil
}

// styleValue applies the per-value styling rules: undefined values and
// values below the threshold are blank and fully transparent, everything
// else gets the scale color at the fixed visible opacity.
func styleValue(v *float64, scale LinearScale, threshold *float64) schema.Style {
	if v == nil {
		return schema.Style{Color: consts.BlankColor, Opacity: 0}
	}
	if threshold != nil && *v < *threshold {
		return schema.Style{Color: consts.BlankColor, Opacity: 0}
	}
	return schema.Style{Color: scale.Color(*v), Opacity: consts.VisibleOpacity}
}

// First reduces a time-keyed dictionary to the first time-ordered style per
// feature, for static maps.
func First(styles schema.TimeStyleDictionary) schema.StyleDictionary {
	first := make(schema.StyleDictionary, len(styles))
	for featureID, timed := range styles {
		best := int64(0)
		found := false
		for key := range timed {
			ts, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				continue
			}
			if !found || ts < best {
				best = ts
				found = true
			}
		}
		if found {
			first[featureID] = timed[strconv.FormatInt(best, 10)]
		}
	}
	return first
}

// TimeKeys returns the sorted distinct time keys of a dictionary, for
// driving the time slider.
func TimeKeys(styles schema.TimeStyleDictionary) []string {
	seen := make(map[int64]struct{})
	keys := make([]int64, 0)
	for _, timed := range styles {
		for key := range timed {
			ts, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				continue
			}
			if _, ok := seen[ts]; ok {
				continue
			}
			seen[ts] = struct{}{}
			keys = append(keys, ts)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]string, len(keys))
	for i, ts := range keys {
		out[i] = strconv.FormatInt(ts, 10)
	}
	return out
}

func selectCountries(groups map[string][]schema.CountryDay, countries []string) []string {
	if len(countries) > 0 {
		return countries
	}
	out := make([]string, 0, len(groups))
	for country := range groups {
		out = append(out, country)
	}
	sort.Strings(out)
	return out
}

// groupByCountry groups the rows by country key, keeping input order within
// a group, so the whole dataset is scanned once instead of once per country.
func groupByCountry(rows []schema.CountryDay) map[string][]schema.CountryDay {
	groups := make(map[string][]schema.CountryDay)
	for _, row := range rows {
		groups[row.Country] = append(groups[row.Country], row)
	}
	return groups
}
