package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/epimap/epimap-api/choropleth"
	"github.com/epimap/epimap-api/render"
	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/share/geojson"
	"github.com/epimap/epimap-api/utils"
)

func (s *Server) getMap(c *gin.Context) {
	options, ok := s.parseStyleOptions(c)
	if !ok {
		return
	}

	styles, scale, err := choropleth.Styles(s.rows, s.index, options)
	if shouldInterupt(err, c) {
		return
	}

	// embed display values into a copy of the boundary for tooltips
	boundary := s.copyBoundary()
	geojson.EmbedValues(&boundary, s.rows, options.Column)

	settings := render.MapSettings{
		Title:      options.Column.Title(),
		ColumnName: options.Column.Title(),
		LogScale:   options.LogScale,
		CenterLat:  viper.GetFloat64("map.center.lat"),
		CenterLong: viper.GetFloat64("map.center.long"),
		Zoom:       viper.GetInt("map.zoom"),
	}
	if settings.Zoom == 0 {
		settings.Zoom = 2
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if c.Query("animated") == "true" {
		err = render.TimeSliderChoropleth(c.Writer, boundary, styles, scale, settings)
	} else {
		err = render.ChoroplethMap(c.Writer, boundary, choropleth.First(styles), scale, settings)
	}
	if err != nil {
		c.Error(err)
	}
}

func (s *Server) getChart(c *gin.Context) {
	country := utils.NormalizeCountryName(c.Param("country"))

	rows, ok := s.byCountry[country]
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownCountry)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := render.CountryChart(c.Writer, country, rows); err != nil {
		c.Error(err)
	}
}

// copyBoundary clones the feature collection with fresh property maps, so
// concurrent requests never write into shared state.
func (s *Server) copyBoundary() schema.FeatureCollection {
	boundary := schema.FeatureCollection{
		Type:     s.boundary.Type,
		Features: make([]schema.Feature, len(s.boundary.Features)),
	}
	for i, feature := range s.boundary.Features {
		properties := make(map[string]interface{}, len(feature.Properties)+1)
		for key, value := range feature.Properties {
			properties[key] = value
		}
		feature.Properties = properties
		boundary.Features[i] = feature
	}
	return boundary
}
