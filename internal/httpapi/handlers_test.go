package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eastside-atlas/velocity/core"
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/framestore"
	"github.com/eastside-atlas/velocity/schema"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	ds := &schema.Dataset{
		Observations: []schema.DviObservation{
			{Region: "Holly", Period: "2000-2010", DVI: 40},
			{Region: "Holly", Period: "2010-2020", DVI: 60},
			{Region: "The Domain", Period: "2000-2010", DVI: 10},
		},
		Samples: []schema.SocioSnapshot{
			{Region: "Holly", Year: 2010, IncomeAdj: 40000, HomeValue: 200000, PctBachelors: 0.2, PctCostBurdened: 0.4, Confidence: schema.HighConfidence},
			{Region: "Holly", Year: 2020, IncomeAdj: 60000, HomeValue: 400000, PctBachelors: 0.4, PctCostBurdened: 0.3, Confidence: schema.MediumConfidence},
		},
		Regions: []schema.RegionMeta{
			{ID: 1, Name: "Holly", ShortName: "Holly", Heritage: "Mexican American"},
			{ID: 2, Name: "The Domain", ShortName: "Domain", NewDevelopment: true},
		},
	}
	atlas, err := core.NewAtlas(ds)
	require.NoError(t, err)
	return NewApp(&contract.Config{Year: 2023}, atlas, &framestore.StoreManagerImpl{}, nil)
}

func do(t *testing.T, app *fiber.App, method, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealthAndRegions(t *testing.T) {
	app := testApp(t)

	code, body := do(t, app, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","service":"velocity","regions":2}`, string(body))

	code, body = do(t, app, http.MethodGet, "/api/v1/regions")
	require.Equal(t, http.StatusOK, code)
	var regions []schema.RegionMeta
	require.NoError(t, json.Unmarshal(body, &regions))
	require.Len(t, regions, 2)
	assert.Equal(t, "Holly", regions[0].Name)
	assert.True(t, regions[1].NewDevelopment)
}

func TestRegionView(t *testing.T) {
	app := testApp(t)

	code, body := do(t, app, http.MethodGet, "/api/v1/regions/The%20Domain?year=2010")
	require.Equal(t, http.StatusOK, code, string(body))
	var view schema.RegionView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "The Domain", view.Region)
	assert.Equal(t, schema.NewDevelopmentBand, view.Band)
	assert.Equal(t, schema.GreenfieldFillColor, view.MapFill)

	code, body = do(t, app, http.MethodGet, "/api/v1/regions/holly?year=2015")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "Holly", view.Region)
	assert.InDelta(t, 50.0, view.DVI, 1e-9)
	require.NotNil(t, view.Current)
	assert.Equal(t, schema.MediumConfidence, view.Current.Confidence)

	code, _ = do(t, app, http.MethodGet, "/api/v1/regions/Atlantis")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTimeseriesAndFrame(t *testing.T) {
	app := testApp(t)

	code, body := do(t, app, http.MethodGet, "/api/v1/regions/Holly/timeseries?years=2000,2010")
	require.Equal(t, http.StatusOK, code)
	var ts schema.TimeseriesResult
	require.NoError(t, json.Unmarshal(body, &ts))
	require.Len(t, ts.Points, 2)
	assert.Equal(t, 40.0, ts.Points[1].DVI)

	code, body = do(t, app, http.MethodGet, "/api/v1/regions/Holly/timeseries")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &ts))
	assert.Len(t, ts.Points, len(schema.ChartYears))

	code, body = do(t, app, http.MethodGet, "/api/v1/frame?year=1991")
	require.Equal(t, http.StatusOK, code)
	var frame []schema.RegionView
	require.NoError(t, json.Unmarshal(body, &frame))
	require.Len(t, frame, 2)
	assert.Equal(t, schema.PreObservationFillColor, frame[0].MapFill)

	code, body = do(t, app, http.MethodPost, "/api/v1/frames?year=2010")
	require.Equal(t, http.StatusCreated, code, string(body))
	assert.JSONEq(t, `{"run_id":0,"year":2010,"regions":2}`, string(body))
}

func TestScalarEndpoints(t *testing.T) {
	app := testApp(t)

	tests := []struct {
		name     string
		method   string
		target   string
		wantCode int
		wantJSON string
	}{
		{"dvi", http.MethodGet, "/api/v1/dvi?region=Holly&year=2015.5", http.StatusOK, `{"region":"Holly","year":2015.5,"dvi":51,"new_development":false}`},
		{"classify", http.MethodGet, "/api/v1/classify?dvi=20", http.StatusOK, ""},
		{"change", http.MethodGet, "/api/v1/change?current=50&prior=100", http.StatusOK, `{"percent":-50,"direction":"down","higher_is_worse":false}`},
		{"change no prior", http.MethodGet, "/api/v1/change?current=50", http.StatusNoContent, ""},
		{"change zero prior", http.MethodGet, "/api/v1/change?current=50&prior=0", http.StatusNoContent, ""},
		{"socio", http.MethodGet, "/api/v1/socio?region=Holly&year=2010", http.StatusOK, ""},
		{"socio no data", http.MethodGet, "/api/v1/socio?region=Domain", http.StatusNotFound, `{"error":true,"message":"no data"}`},
		{"prior socio none before first", http.MethodGet, "/api/v1/socio/prior?region=Holly&year=2010", http.StatusNotFound, ""},
		{"bad year", http.MethodGet, "/api/v1/frame?year=abc", http.StatusBadRequest, `{"error":true,"message":"invalid year 'abc'"}`},
		{"bad dvi", http.MethodGet, "/api/v1/classify?dvi=high", http.StatusBadRequest, ""},
		{"missing dvi", http.MethodGet, "/api/v1/classify", http.StatusBadRequest, `{"error":true,"message":"dvi is required"}`},
		{"bad bool", http.MethodGet, "/api/v1/classify?dvi=1&new_development=maybe", http.StatusBadRequest, ""},
		{"bad years", http.MethodGet, "/api/v1/regions/Holly/timeseries?years=x", http.StatusBadRequest, ""},
		{"missing region", http.MethodGet, "/api/v1/dvi?year=2000", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, app, tt.method, tt.target)
			assert.Equal(t, tt.wantCode, code, string(body))
			if tt.wantJSON != "" {
				assert.JSONEq(t, tt.wantJSON, string(body))
			}
		})
	}
}

func TestClassifyAndBands(t *testing.T) {
	app := testApp(t)

	code, body := do(t, app, http.MethodGet, "/api/v1/classify?dvi=20&new_development=true")
	require.Equal(t, http.StatusOK, code)
	var c schema.Classification
	require.NoError(t, json.Unmarshal(body, &c))
	assert.Equal(t, schema.NewDevelopmentBand, c.Band)
	assert.Equal(t, schema.GreenfieldFillColor, c.RampColor)

	code, body = do(t, app, http.MethodGet, "/api/v1/bands")
	require.Equal(t, http.StatusOK, code)
	var bands []bandInfo
	require.NoError(t, json.Unmarshal(body, &bands))
	require.Len(t, bands, 5)
	require.NotNil(t, bands[0].UpperDVI)
	assert.Equal(t, schema.StableMax, *bands[0].UpperDVI)
	assert.Nil(t, bands[3].UpperDVI)
}

func TestCompare(t *testing.T) {
	app := testApp(t)

	code, body := do(t, app, http.MethodGet, "/api/v1/compare?a=Holly&b=Domain&year=2010")
	require.Equal(t, http.StatusOK, code)
	var cmp schema.RegionComparison
	require.NoError(t, json.Unmarshal(body, &cmp))
	assert.Equal(t, "The Domain", cmp.RegionB)
	assert.Equal(t, 30.0, cmp.DviDelta)

	code, _ = do(t, app, http.MethodGet, "/api/v1/compare?a=Holly")
	assert.Equal(t, http.StatusBadRequest, code)
}
