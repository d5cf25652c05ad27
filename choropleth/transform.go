// Package choropleth maps a derived time series into per-feature map styles.
package choropleth

import (
	"math"

	"github.com/epimap/epimap-api/schema"
)

const logPrefix = "choropleth"

// LogTransform replaces every value with its natural logarithm. Values that
// are undefined or not strictly positive become undefined. The same
// transform has to be applied to both the range computation and the style
// assignment, otherwise scale and style disagree.
func LogTransform(values []*float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if v == nil || *v <= 0 {
			continue
		}
		l := math.Log(*v)
		out[i] = &l
	}
	return out
}

// Values extracts one column of the rows in input order, applying the log
// transform when logScale is set.
func Values(rows []schema.CountryDay, column schema.Column, logScale bool) []*float64 {
	values := make([]*float64, len(rows))
	for i, row := range rows {
		values[i] = row.Value(column)
	}
	if logScale {
		return LogTransform(values)
	}
	return values
}
