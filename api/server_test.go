package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/epimap/epimap-api/schema"
	"github.com/epimap/epimap-api/store"
)

// fakeStore satisfies store.MongoStore without a database. The handlers
// under test serve from the in-memory series, so only Ping matters.
type fakeStore struct{}

func (fakeStore) ReplaceCountrySeries(string, []schema.CountryDay) error { return nil }

func (fakeStore) GetCountrySeries(string) ([]schema.CountryDay, error) { return nil, nil }

func (fakeStore) ListCountries() ([]string, error) { return nil, nil }

func (fakeStore) LatestTotals(string) (int, int, error) {
	return 0, 0, store.ErrCountryNotFound
}

func (fakeStore) SaveSnapshot(int, int) (schema.Snapshot, error) { return schema.Snapshot{}, nil }

func (fakeStore) LatestSnapshot() (schema.Snapshot, error) { return schema.Snapshot{}, nil }

func (fakeStore) Close() {}

func (fakeStore) Ping() error { return nil }

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	day := func(n int) time.Time {
		return time.Date(2020, 3, n, 0, 0, 0, 0, time.UTC)
	}
	rows := []schema.CountryDay{
		{
			Observation: schema.Observation{Date: day(1), Country: "norway", GeoID: "no", NewCases: 5},
			SumCases:    5,
		},
		{
			Observation: schema.Observation{Date: day(2), Country: "norway", GeoID: "no", NewCases: 2, NewDeaths: 1},
			SumCases:    7,
			SumDeaths:   1,
		},
	}
	boundary := schema.FeatureCollection{
		Type: "FeatureCollection",
		Features: []schema.Feature{
			{
				Type:       "Feature",
				ID:         "NOR",
				Properties: map[string]interface{}{"name": "Norway"},
				Geometry:   schema.Geometry{Type: "Polygon"},
			},
		},
	}

	server := NewServer(fakeStore{}, rows, boundary)
	return server.setupRouter()
}

func request(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest("GET", path, nil)
	assert.NoError(t, err)
	router.ServeHTTP(w, req)
	return w
}

func TestGetColumns(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/columns")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sum_cases_per_capita")
}

func TestGetStyles(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/styles/sum_cases")
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		MinValue float64                 `json:"min_value"`
		MaxValue float64                 `json:"max_value"`
		Styles   map[string]schema.Style `json:"styles"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, response.MinValue)
	assert.Contains(t, response.Styles, "NOR")
}

func TestGetStylesAnimated(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/styles/sum_cases?animated=true&log=false")
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Styles map[string]map[string]schema.Style `json:"styles"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Styles["NOR"], 2)
	assert.Contains(t, response.Styles["NOR"], "1583020800")
}

func TestGetStylesUnknownColumn(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/styles/bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":1100`)
}

func TestGetStylesUnknownPalette(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/styles/sum_cases?palette=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":1102`)
}

func TestGetStylesBadThreshold(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/styles/sum_cases?threshold=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":1010`)
}

func TestGetRange(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/range/sum_cases?log=false")
	assert.Equal(t, http.StatusOK, w.Code)

	var bounds schema.ValueRange
	err := json.Unmarshal(w.Body.Bytes(), &bounds)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, bounds.Min)
	assert.Equal(t, 7.0, bounds.Max)
}

func TestGetSeries(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/series/Norway")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sum_cases":7`)

	w = request(t, router, "/v1/series/atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":1101`)
}

func TestGetUnmatched(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/v1/unmatched")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unmatched":[]`)
}

func TestGetMap(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/maps/sum_cases")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "leaflet")
	assert.Contains(t, w.Body.String(), "NOR")
	assert.NotContains(t, w.Body.String(), `<input id="slider"`)
}

func TestGetMapAnimated(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/maps/sum_cases?animated=true")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<input id="slider"`)
}

func TestGetChart(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/charts/norway")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "norway")

	w = request(t, router, "/charts/atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	router := testRouter(t)

	w := request(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OK")
}
