// Package render writes the interactive map and chart artifacts.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/epimap/epimap-api/choropleth"
	"github.com/epimap/epimap-api/consts"
	"github.com/epimap/epimap-api/schema"
)

// MapSettings controls one rendered map page.
type MapSettings struct {
	Title      string
	ColumnName string
	LogScale   bool
	CenterLat  float64
	CenterLong float64
	Zoom       int
}

type mapPage struct {
	Title            string
	Caption          string
	CenterLat        float64
	CenterLong       float64
	Zoom             int
	GeoJSON          template.JS
	Styles           template.JS
	TimeKeys         template.JS
	Animated         bool
	LegendStops      []string
	MinLabel         string
	MaxLabel         string
	BorderColor      string
	NoDataColor      string
	VisibleOpacity   float64
	HighlightOpacity float64
}

// ChoroplethMap writes a static single-snapshot choropleth page.
func ChoroplethMap(w io.Writer, fc schema.FeatureCollection, styles schema.StyleDictionary,
	scale choropleth.LinearScale, settings MapSettings) error {
	return renderMap(w, fc, styles, nil, scale, settings)
}

// TimeSliderChoropleth writes an animated choropleth page driven by the
// time-keyed style dictionary.
func TimeSliderChoropleth(w io.Writer, fc schema.FeatureCollection, styles schema.TimeStyleDictionary,
	scale choropleth.LinearScale, settings MapSettings) error {
	return renderMap(w, fc, nil, styles, scale, settings)
}

func renderMap(w io.Writer, fc schema.FeatureCollection, static schema.StyleDictionary,
	animated schema.TimeStyleDictionary, scale choropleth.LinearScale, settings MapSettings) error {

	geoJSON, err := json.Marshal(fc)
	if err != nil {
		return err
	}

	var stylesJSON []byte
	var timeKeysJSON []byte
	if animated != nil {
		stylesJSON, err = json.Marshal(animated)
		if err != nil {
			return err
		}
		timeKeysJSON, err = json.Marshal(choropleth.TimeKeys(animated))
		if err != nil {
			return err
		}
	} else {
		stylesJSON, err = json.Marshal(static)
		if err != nil {
			return err
		}
		timeKeysJSON = []byte("[]")
	}

	caption := settings.ColumnName
	if settings.LogScale {
		caption = fmt.Sprintf("%s (log scale)", settings.ColumnName)
	}

	page := mapPage{
		Title:            settings.Title,
		Caption:          caption,
		CenterLat:        settings.CenterLat,
		CenterLong:       settings.CenterLong,
		Zoom:             settings.Zoom,
		GeoJSON:          template.JS(geoJSON),
		Styles:           template.JS(stylesJSON),
		TimeKeys:         template.JS(timeKeysJSON),
		Animated:         animated != nil,
		LegendStops:      scale.Stops(6),
		MinLabel:         fmt.Sprintf("%.2f", scale.Min()),
		MaxLabel:         fmt.Sprintf("%.2f", scale.Max()),
		BorderColor:      consts.BorderColor,
		NoDataColor:      consts.NoDataColor,
		VisibleOpacity:   consts.VisibleOpacity,
		HighlightOpacity: consts.HighlightOpacity,
	}

	return mapTemplate.Execute(w, page)
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.6.0/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.6.0/dist/leaflet.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .legend {
    position: fixed; bottom: 30px; left: 10px; z-index: 1000;
    background: white; padding: 8px 10px; font: 14px sans-serif;
    border-radius: 4px; box-shadow: 0 1px 4px rgba(0,0,0,0.3);
  }
  .legend .bar { display: flex; height: 12px; width: 180px; margin: 4px 0; }
  .legend .bar span { flex: 1; }
  .legend .bounds { display: flex; justify-content: space-between; }
  .slider-box {
    position: fixed; top: 10px; right: 10px; z-index: 1000;
    background: white; padding: 8px 10px; font: 14px sans-serif;
    border-radius: 4px; box-shadow: 0 1px 4px rgba(0,0,0,0.3);
  }
</style>
</head>
<body>
<div id="map"></div>
<div class="legend">
  <b>{{.Caption}}</b>
  <div class="bar">{{range .LegendStops}}<span style="background:{{.}}"></span>{{end}}</div>
  <div class="bounds"><span>{{.MinLabel}}</span><span>{{.MaxLabel}}</span></div>
</div>
{{if .Animated}}
<div class="slider-box">
  <div id="slider-date"></div>
  <input id="slider" type="range" min="0" max="0" value="0" step="1">
</div>
{{end}}
<script>
var geojson = {{.GeoJSON}};
var styles = {{.Styles}};
var timeKeys = {{.TimeKeys}};
var animated = {{.Animated}};

var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLong}}], {{.Zoom}});
L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors &copy; CARTO'
}).addTo(map);

function styleFor(id, timeKey) {
  var entry = styles[id];
  if (entry && animated) { entry = entry[timeKey]; }
  if (!entry) {
    return {fillColor: '{{.NoDataColor}}', fillOpacity: 0.0, color: '{{.BorderColor}}', weight: 0.5};
  }
  return {fillColor: entry.color, fillOpacity: entry.opacity, color: '{{.BorderColor}}', weight: 0.5};
}

var currentKey = animated && timeKeys.length > 0 ? timeKeys[0] : null;

var layer = L.geoJson(geojson, {
  style: function (feature) { return styleFor(feature.id, currentKey); },
  onEachFeature: function (feature, l) {
    var props = feature.properties || {};
    var label = '<b>' + (props.name || feature.id) + '</b>';
    Object.keys(props).forEach(function (key) {
      if (key !== 'name') { label += '<br>' + key + ': ' + props[key]; }
    });
    l.bindTooltip(label);
    l.on('mouseover', function () { l.setStyle({weight: 2.0, fillOpacity: {{.HighlightOpacity}}}); });
    l.on('mouseout', function () { l.setStyle(styleFor(feature.id, currentKey)); });
  }
}).addTo(map);

if (animated && timeKeys.length > 0) {
  var slider = document.getElementById('slider');
  var sliderDate = document.getElementById('slider-date');
  slider.max = timeKeys.length - 1;
  var showDate = function () {
    var d = new Date(parseInt(timeKeys[slider.value], 10) * 1000);
    sliderDate.textContent = d.toISOString().slice(0, 10);
  };
  slider.addEventListener('input', function () {
    currentKey = timeKeys[slider.value];
    layer.setStyle(function (feature) { return styleFor(feature.id, currentKey); });
    showDate();
  });
  showDate();
}
</script>
</body>
</html>
`))
