// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/eastside-atlas/velocity/core"
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Velocity MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, atlas *core.Atlas, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Velocity Displacement Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		atlas:   atlas,
		mgr:     mgr,
	}

	yearOpt := mcp.WithNumber("year", mcp.Description("Calendar year (defaults to the configured year)."))

	// --- 1. Tool: get_region_view ---
	s.AddTool(mcp.NewTool("get_region_view",
		mcp.WithDescription("Get the displacement band, map colors and socioeconomic metric cards of a region at a year."),
		mcp.WithString("region", mcp.Description("Region name or short name."), mcp.Required()),
		yearOpt,
	), h.handleGetRegionView)

	// --- 2. Tool: get_frame ---
	s.AddTool(mcp.NewTool("get_frame",
		mcp.WithDescription("Get the view of every region at a year, as drawn on one map frame."),
		yearOpt,
		mcp.WithBoolean("record", mcp.Description("Archive the frame in the configured store.")),
	), h.handleGetFrame)

	// --- 3. Tool: get_dvi ---
	s.AddTool(mcp.NewTool("get_dvi",
		mcp.WithDescription("Interpolate the Displacement Velocity Index of a region. Fractional years are allowed."),
		mcp.WithString("region", mcp.Description("Region name or short name."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Year, possibly fractional."), mcp.Required()),
	), h.handleGetDvi)

	// --- 4. Tool: get_socio ---
	s.AddTool(mcp.NewTool("get_socio",
		mcp.WithDescription("Get the socioeconomic snapshot of a region at a year. Returns null when the region has no data."),
		mcp.WithString("region", mcp.Description("Region name or short name."), mcp.Required()),
		yearOpt,
	), h.handleGetSocio)

	// --- 5. Tool: get_prior_socio ---
	s.AddTool(mcp.NewTool("get_prior_socio",
		mcp.WithDescription("Get the latest measured socioeconomic sample strictly before a year."),
		mcp.WithString("region", mcp.Description("Region name or short name."), mcp.Required()),
		yearOpt,
	), h.handleGetPriorSocio)

	// --- 6. Tool: get_dvi_timeseries ---
	s.AddTool(mcp.NewTool("get_dvi_timeseries",
		mcp.WithDescription("Sample the DVI of a region over a list of years."),
		mcp.WithString("region", mcp.Description("Region name or short name."), mcp.Required()),
		mcp.WithString("years", mcp.Description("Comma-separated years, or one of 'chart', 'snap', 'play'. Defaults to 'chart'.")),
	), h.handleGetDviTimeseries)

	// --- 7. Tool: classify_dvi ---
	s.AddTool(mcp.NewTool("classify_dvi",
		mcp.WithDescription("Classify a DVI value into its displacement band and colors."),
		mcp.WithNumber("dvi", mcp.Description("DVI value."), mcp.Required()),
		mcp.WithBoolean("new_development", mcp.Description("Treat the value as belonging to a greenfield region.")),
	), h.handleClassifyDvi)

	// --- 8. Tool: compute_change ---
	s.AddTool(mcp.NewTool("compute_change",
		mcp.WithDescription("Compute the relative change of a value against a prior value."),
		mcp.WithNumber("current", mcp.Description("Current value."), mcp.Required()),
		mcp.WithNumber("prior", mcp.Description("Prior value. Omit when unknown.")),
		mcp.WithBoolean("higher_is_worse", mcp.Description("Whether an increase is unfavorable.")),
	), h.handleComputeChange)

	// --- 9. Tool: compare_regions ---
	s.AddTool(mcp.NewTool("compare_regions",
		mcp.WithDescription("Compare the DVI and socioeconomic metrics of two regions at a year."),
		mcp.WithString("region_a", mcp.Description("First region."), mcp.Required()),
		mcp.WithString("region_b", mcp.Description("Second region."), mcp.Required()),
		yearOpt,
	), h.handleCompareRegions)

	return s
}

// StartMCPServer starts the Velocity MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, atlas *core.Atlas, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, atlas, mgr)
	return server.ServeStdio(s)
}
