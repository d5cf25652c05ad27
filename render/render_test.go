package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/epimap/epimap-api/choropleth"
	"github.com/epimap/epimap-api/schema"
)

func testRows() []schema.CountryDay {
	rows := make([]schema.CountryDay, 0, 3)
	sum := 0
	for i := 1; i <= 3; i++ {
		sum += i * 2
		rows = append(rows, schema.CountryDay{
			Observation: schema.Observation{
				Date:     time.Date(2020, 3, i, 0, 0, 0, 0, time.UTC),
				Country:  "norway",
				NewCases: i * 2,
			},
			SumCases: sum,
		})
	}
	return rows
}

func testCollection() schema.FeatureCollection {
	return schema.FeatureCollection{
		Type: "FeatureCollection",
		Features: []schema.Feature{
			{
				Type:       "Feature",
				ID:         "NOR",
				Properties: map[string]interface{}{"name": "Norway"},
				Geometry:   schema.Geometry{Type: "Polygon", Coordinates: []interface{}{}},
			},
		},
	}
}

func testScale(t *testing.T) choropleth.LinearScale {
	t.Helper()
	scale, err := choropleth.NewLinearScale([]string{"#fee0d2", "#de2d26"}, 0, 12)
	if err != nil {
		t.Fatal(err)
	}
	return scale
}

func TestChoroplethMap(t *testing.T) {
	styles := schema.StyleDictionary{
		"NOR": {Color: "#de2d26", Opacity: 0.7},
	}

	var buf bytes.Buffer
	err := ChoroplethMap(&buf, testCollection(), styles, testScale(t), MapSettings{
		Title:      "Cases",
		ColumnName: "Cases",
		Zoom:       2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	html := buf.String()
	if !strings.Contains(html, "NOR") {
		t.Fatal("page is missing the feature id")
	}
	if !strings.Contains(html, "#de2d26") {
		t.Fatal("page is missing the style color")
	}
	if strings.Contains(html, `<input id="slider"`) {
		t.Fatal("static page must not carry the time slider")
	}
}

func TestTimeSliderChoropleth(t *testing.T) {
	styles := schema.TimeStyleDictionary{
		"NOR": {
			"1583020800": {Color: "#fee0d2", Opacity: 0.7},
			"1583107200": {Color: "#de2d26", Opacity: 0.7},
		},
	}

	var buf bytes.Buffer
	err := TimeSliderChoropleth(&buf, testCollection(), styles, testScale(t), MapSettings{
		Title:      "Cases over time",
		ColumnName: "Cases",
		LogScale:   true,
		Zoom:       2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	html := buf.String()
	if !strings.Contains(html, `<input id="slider"`) {
		t.Fatal("animated page is missing the time slider")
	}
	if !strings.Contains(html, "1583020800") {
		t.Fatal("animated page is missing the time keys")
	}
	if !strings.Contains(html, "log scale") {
		t.Fatal("legend caption should mention the log scale")
	}
}

func TestCountryChart(t *testing.T) {
	var buf bytes.Buffer
	if err := CountryChart(&buf, "norway", testRows()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	html := buf.String()
	if !strings.Contains(html, "norway") {
		t.Fatal("chart page is missing the country name")
	}
	if !strings.Contains(html, "2020-03-01") {
		t.Fatal("chart page is missing the date labels")
	}
}

func TestCountryChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CountryChart(&buf, "norway", nil); err == nil {
		t.Fatal("expected an error for an empty series")
	}
}
