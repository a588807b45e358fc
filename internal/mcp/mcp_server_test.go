package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/eastside-atlas/velocity/core"
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/framestore"
	mcp_internal "github.com/eastside-atlas/velocity/internal/mcp"
	"github.com/eastside-atlas/velocity/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAtlas(t *testing.T) *core.Atlas {
	t.Helper()
	ds := &schema.Dataset{
		Observations: []schema.DviObservation{
			{Region: "Holly", Period: "2000-2010", DVI: 40},
			{Region: "Holly", Period: "2010-2020", DVI: 60},
			{Region: "The Domain", Period: "2000-2010", DVI: 10},
		},
		Samples: []schema.SocioSnapshot{
			{Region: "Holly", Year: 2010, IncomeAdj: 40000, HomeValue: 200000, PctBachelors: 0.2, PctCostBurdened: 0.4, Confidence: schema.HighConfidence},
			{Region: "Holly", Year: 2020, IncomeAdj: 60000, HomeValue: 400000, PctBachelors: 0.4, PctCostBurdened: 0.3, Confidence: schema.HighConfidence},
		},
		Regions: []schema.RegionMeta{
			{ID: 1, Name: "Holly", ShortName: "Holly"},
			{ID: 2, Name: "The Domain", ShortName: "Domain", NewDevelopment: true},
		},
	}
	a, err := core.NewAtlas(ds)
	require.NoError(t, err)
	return a
}

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	baseCfg := &contract.Config{Year: 2023}
	return mcp_internal.NewMCPServer(baseCfg, testAtlas(t), &framestore.StoreManagerImpl{})
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		wantErr string
	}{
		{"missing region", "get_region_view", map[string]any{}, "region is required"},
		{"unknown region", "get_socio", map[string]any{"region": "Atlantis"}, `unknown region "Atlantis"`},
		{"year out of range", "get_frame", map[string]any{"year": 3000.0}, "year must be between"},
		{"missing dvi year", "get_dvi", map[string]any{"region": "Holly"}, "year"},
		{"missing dvi", "classify_dvi", map[string]any{}, "dvi"},
		{"bad years", "get_dvi_timeseries", map[string]any{"region": "Holly", "years": "soon"}, "invalid years"},
		{"missing region_b", "compare_regions", map[string]any{"region_a": "Holly"}, "region_b is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.wantErr)
		})
	}
}

func TestMCPServerHandlers_Results(t *testing.T) {
	s := newTestServer(t)

	t.Run("get_dvi interpolates fractional years", func(t *testing.T) {
		res := callTool(t, s, "get_dvi", map[string]any{"region": "holly", "year": 2015.0})
		require.False(t, res.IsError)
		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, "Holly", got["region"])
		assert.InDelta(t, 50.0, got["dvi"], 1e-9)
	})

	t.Run("get_socio interpolates", func(t *testing.T) {
		res := callTool(t, s, "get_socio", map[string]any{"region": "Holly", "year": 2015.0})
		var got schema.SocioSnapshot
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, 50000.0, got.IncomeAdj)
		assert.Equal(t, 2015, got.Year)
	})

	t.Run("get_socio without data is null", func(t *testing.T) {
		res := callTool(t, s, "get_socio", map[string]any{"region": "Domain"})
		assert.False(t, res.IsError)
		assert.Equal(t, "null", resultText(t, res))
	})

	t.Run("get_prior_socio", func(t *testing.T) {
		res := callTool(t, s, "get_prior_socio", map[string]any{"region": "Holly", "year": 2020.0})
		var got schema.SocioSnapshot
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, 2010, got.Year)
	})

	t.Run("get_region_view uses configured year", func(t *testing.T) {
		res := callTool(t, s, "get_region_view", map[string]any{"region": "Holly"})
		var got schema.RegionView
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, 2023, got.Year)
		require.NotNil(t, got.Prior)
		assert.Equal(t, 2020, got.Prior.Year)
		assert.Len(t, got.Changes, 4)
	})

	t.Run("get_frame records", func(t *testing.T) {
		res := callTool(t, s, "get_frame", map[string]any{"year": 2010.0, "record": true})
		require.False(t, res.IsError, resultText(t, res))
		var got []schema.RegionView
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		require.Len(t, got, 2)
		assert.Equal(t, schema.NewDevelopmentBand, got[1].Band)
	})

	t.Run("get_dvi_timeseries", func(t *testing.T) {
		res := callTool(t, s, "get_dvi_timeseries", map[string]any{"region": "Holly", "years": "2000,2010"})
		var got schema.TimeseriesResult
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, []schema.DviPoint{
			{Year: 2000, DVI: 0, Band: schema.StableBand},
			{Year: 2010, DVI: 40, Band: schema.ActiveDisplacementBand},
		}, got.Points)
	})

	t.Run("classify_dvi", func(t *testing.T) {
		res := callTool(t, s, "classify_dvi", map[string]any{"dvi": 30.0})
		var got schema.Classification
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, schema.EarlyPressureBand, got.Band)

		res = callTool(t, s, "classify_dvi", map[string]any{"dvi": 30.0, "new_development": true})
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, schema.NewDevelopmentBand, got.Band)
	})

	t.Run("compute_change", func(t *testing.T) {
		res := callTool(t, s, "compute_change", map[string]any{"current": 100.0, "prior": 80.0, "higher_is_worse": true})
		var got schema.Change
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.InDelta(t, 25.0, got.Percent, 1e-9)
		assert.Equal(t, schema.Up, got.Direction)
		assert.True(t, got.Worsened())

		res = callTool(t, s, "compute_change", map[string]any{"current": 100.0})
		assert.Equal(t, "null", resultText(t, res))

		res = callTool(t, s, "compute_change", map[string]any{"current": 100.0, "prior": 0.0})
		assert.Equal(t, "null", resultText(t, res))
	})

	t.Run("compare_regions", func(t *testing.T) {
		res := callTool(t, s, "compare_regions", map[string]any{"region_a": "Holly", "region_b": "Domain", "year": 2010.0})
		var got schema.RegionComparison
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
		assert.Equal(t, "The Domain", got.RegionB)
		assert.InDelta(t, 30.0, got.DviDelta, 1e-9)
		assert.Empty(t, got.Metrics)
	})
}
