package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eastside-atlas/velocity/core"
	"github.com/eastside-atlas/velocity/core/algo"
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/framestore"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	atlas   *core.Atlas
	mgr     contract.StoreManager
}

// jsonResult encodes v as the text of a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// region resolves the named region argument to its canonical name.
func (h *toolHandler) region(request mcp.CallToolRequest, key string) (string, error) {
	name := request.GetString(key, "")
	if name == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	canonical, ok := h.atlas.Resolve(name)
	if !ok {
		return "", fmt.Errorf("unknown region %q", name)
	}
	return canonical, nil
}

// year reads the optional year argument, falling back to the configured year.
func (h *toolHandler) year(request mcp.CallToolRequest) (int, error) {
	year := request.GetInt("year", h.baseCfg.Year)
	if year == 0 {
		year = contract.DefaultYear
	}
	if year < contract.MinYear || year > contract.MaxYear {
		return 0, fmt.Errorf("year must be between %d and %d", contract.MinYear, contract.MaxYear)
	}
	return year, nil
}

// regionAndYear reads the common region and year arguments.
func (h *toolHandler) regionAndYear(request mcp.CallToolRequest) (string, int, error) {
	region, err := h.region(request, "region")
	if err != nil {
		return "", 0, err
	}
	year, err := h.year(request)
	if err != nil {
		return "", 0, err
	}
	return region, year, nil
}

func (h *toolHandler) handleGetRegionView(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	region, year, err := h.regionAndYear(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	return jsonResult(h.atlas.RegionView(region, year))
}

func (h *toolHandler) handleGetFrame(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := h.year(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	views := h.atlas.Frame(year)
	if request.GetBool("record", false) {
		if h.mgr == nil {
			return mcp.NewToolResultError("recording is not available: no frame store configured"), nil
		}
		params := map[string]any{"year": year, "source": "mcp"}
		if _, err := framestore.ArchiveFrame(h.mgr.GetFrameStore(), year, views, params, time.Now); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to archive frame: %v", err)), nil
		}
	}
	return jsonResult(views)
}

func (h *toolHandler) handleGetDvi(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	region, err := h.region(request, "region")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	year, err := request.RequireFloat("year")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	dvi := h.atlas.DviAt(region, year)
	return jsonResult(map[string]any{
		"region":          region,
		"year":            year,
		"dvi":             dvi,
		"new_development": h.atlas.IsNewDevelopment(region),
	})
}

func (h *toolHandler) handleGetSocio(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	region, year, err := h.regionAndYear(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	return jsonResult(h.atlas.SocioAt(region, year))
}

func (h *toolHandler) handleGetPriorSocio(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	region, year, err := h.regionAndYear(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	return jsonResult(h.atlas.PriorSocioAt(region, year))
}

func (h *toolHandler) handleGetDviTimeseries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	region, err := h.region(request, "region")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	years := h.baseCfg.Years
	if raw := request.GetString("years", ""); raw != "" {
		if years, err = contract.ParseYears(raw); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid years: %v", err)), nil
		}
	}
	return jsonResult(h.atlas.Timeseries(region, years))
}

func (h *toolHandler) handleClassifyDvi(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dvi, err := request.RequireFloat("dvi")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	return jsonResult(h.atlas.Classify(dvi, request.GetBool("new_development", false)))
}

func (h *toolHandler) handleComputeChange(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current, err := request.RequireFloat("current")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	var prior *float64
	if _, ok := request.GetArguments()["prior"]; ok {
		p, err := request.RequireFloat("prior")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		prior = &p
	}
	return jsonResult(algo.ChangeOf(current, prior, request.GetBool("higher_is_worse", false)))
}

func (h *toolHandler) handleCompareRegions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := h.region(request, "region_a")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	b, err := h.region(request, "region_b")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	year, err := h.year(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	return jsonResult(h.atlas.Compare(a, b, year))
}
