package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/epimap/epimap-api/choropleth"
	"github.com/epimap/epimap-api/consts"
	"github.com/epimap/epimap-api/geo"
	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/utils"
)

func (s *Server) getColumns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"columns": schema.Columns,
	})
}

// parseStyleOptions reads the style selection from the request. The log
// scale defaults to enabled, matching the map defaults.
func (s *Server) parseStyleOptions(c *gin.Context) (choropleth.StyleOptions, bool) {
	var options choropleth.StyleOptions

	column, ok := schema.ParseColumn(c.Param("column"))
	if !ok {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownColumn)
		return options, false
	}
	options.Column = column

	options.LogScale = c.DefaultQuery("log", "true") == "true"

	if palette := c.Query("palette"); palette != "" {
		if _, ok := consts.Palettes[palette]; !ok {
			abortWithEncoding(c, http.StatusBadRequest, errorUnknownPalette)
			return options, false
		}
		options.Palette = palette
	}

	if countries := c.Query("countries"); countries != "" {
		for _, country := range strings.Split(countries, ",") {
			options.Countries = append(options.Countries, utils.NormalizeCountryName(country))
		}
	}

	for query, target := range map[string]**float64{
		"threshold": &options.Threshold,
		"min_value": &options.MinValue,
		"max_value": &options.MaxValue,
	} {
		raw := c.Query(query)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return options, false
		}
		*target = &value
	}

	return options, true
}

func (s *Server) getStyles(c *gin.Context) {
	options, ok := s.parseStyleOptions(c)
	if !ok {
		return
	}

	styles, scale, err := choropleth.Styles(s.rows, s.index, options)
	if shouldInterupt(err, c) {
		return
	}

	response := gin.H{
		"min_value": scale.Min(),
		"max_value": scale.Max(),
	}
	if c.Query("animated") == "true" {
		response["styles"] = styles
	} else {
		response["styles"] = choropleth.First(styles)
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) getRange(c *gin.Context) {
	options, ok := s.parseStyleOptions(c)
	if !ok {
		return
	}

	bounds := choropleth.Range(s.rows, options.Countries, options.Column, options.LogScale)
	c.JSON(http.StatusOK, bounds)
}

func (s *Server) getSeries(c *gin.Context) {
	country := utils.NormalizeCountryName(c.Param("country"))

	rows, ok := s.byCountry[country]
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownCountry)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"country": country,
		"series":  rows,
	})
}

func (s *Server) getUnmatched(c *gin.Context) {
	countries := make([]string, 0, len(s.byCountry))
	for country := range s.byCountry {
		countries = append(countries, country)
	}

	c.JSON(http.StatusOK, gin.H{
		"unmatched": geo.Reconcile(s.index, countries),
	})
}
