package httpapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/eastside-atlas/velocity/core"
	"github.com/eastside-atlas/velocity/core/algo"
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/framestore"
	"github.com/eastside-atlas/velocity/schema"
	"github.com/gofiber/fiber/v2"
)

// Handler contains all HTTP handlers.
type Handler struct {
	cfg   *contract.Config
	atlas *core.Atlas
	mgr   contract.StoreManager
}

// NewHandler creates a new handler.
func NewHandler(cfg *contract.Config, atlas *core.Atlas, mgr contract.StoreManager) *Handler {
	return &Handler{cfg: cfg, atlas: atlas, mgr: mgr}
}

// bandInfo is one entry of the band legend.
type bandInfo struct {
	Band     schema.Band `json:"band"`
	UpperDVI *float64    `json:"upper_dvi"` // inclusive; nil for the open-ended band
	Color    string      `json:"color"`
}

func (h *Handler) region(name string) (string, error) {
	if name == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "region is required")
	}
	canonical, ok := h.atlas.Resolve(name)
	if !ok {
		return "", fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown region %q", name))
	}
	return canonical, nil
}

// year reads the year query parameter, defaulting to the configured year.
func (h *Handler) year(c *fiber.Ctx) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		if h.cfg.Year != 0 {
			return h.cfg.Year, nil
		}
		return contract.DefaultYear, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < contract.MinYear || year > contract.MaxYear {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid year '%s'", raw))
	}
	return year, nil
}

// queryFloat reads a required numeric query parameter.
func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s is required", key))
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s '%s'", key, raw))
	}
	return v, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := contract.ParseBoolString(raw)
	if err != nil {
		return false, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid %s '%s'", key, raw))
	}
	return v, nil
}

// HealthCheck returns service health status.
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "velocity",
		"regions": len(h.atlas.Regions()),
	})
}

// ListRegions returns the metadata of every region.
func (h *Handler) ListRegions(c *fiber.Ctx) error {
	out := make([]schema.RegionMeta, 0, len(h.atlas.Regions()))
	for _, name := range h.atlas.Regions() {
		m, _ := h.atlas.Meta(name)
		m.Name = name
		m.NewDevelopment = h.atlas.IsNewDevelopment(name)
		out = append(out, m)
	}
	return c.JSON(out)
}

// GetRegionView returns the detail view of one region.
func (h *Handler) GetRegionView(c *fiber.Ctx) error {
	region, err := h.region(c.Params("name"))
	if err != nil {
		return err
	}
	year, err := h.year(c)
	if err != nil {
		return err
	}
	return c.JSON(h.atlas.RegionView(region, year))
}

// GetTimeseries returns the DVI of a region over the requested years.
func (h *Handler) GetTimeseries(c *fiber.Ctx) error {
	region, err := h.region(c.Params("name"))
	if err != nil {
		return err
	}
	years := h.cfg.Years
	if raw := c.Query("years"); raw != "" {
		if years, err = contract.ParseYears(raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(h.atlas.Timeseries(region, years))
}

// GetFrame returns every region view at a year.
func (h *Handler) GetFrame(c *fiber.Ctx) error {
	year, err := h.year(c)
	if err != nil {
		return err
	}
	return c.JSON(h.atlas.Frame(year))
}

// RecordFrame computes a frame and archives it in the frame store.
func (h *Handler) RecordFrame(c *fiber.Ctx) error {
	year, err := h.year(c)
	if err != nil {
		return err
	}
	if h.mgr == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "no frame store configured")
	}

	views := h.atlas.Frame(year)
	params := map[string]any{"year": year, "source": "http"}
	runID, err := framestore.ArchiveFrame(h.mgr.GetFrameStore(), year, views, params, time.Now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("failed to archive frame: %v", err))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"run_id":  runID,
		"year":    year,
		"regions": len(views),
	})
}

// GetDvi returns the interpolated DVI of a region. Fractional years are allowed.
func (h *Handler) GetDvi(c *fiber.Ctx) error {
	region, err := h.region(c.Query("region"))
	if err != nil {
		return err
	}
	year, err := queryFloat(c, "year")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"region":          region,
		"year":            year,
		"dvi":             h.atlas.DviAt(region, year),
		"new_development": h.atlas.IsNewDevelopment(region),
	})
}

// socioHandler serves a snapshot lookup; a nil snapshot is a 404.
func (h *Handler) socioHandler(c *fiber.Ctx, lookup func(region string, year int) *schema.SocioSnapshot) error {
	region, err := h.region(c.Query("region"))
	if err != nil {
		return err
	}
	year, err := h.year(c)
	if err != nil {
		return err
	}
	snap := lookup(region, year)
	if snap == nil {
		return fiber.NewError(fiber.StatusNotFound, "no data")
	}
	return c.JSON(snap)
}

// GetSocio returns the socioeconomic snapshot of a region at a year.
func (h *Handler) GetSocio(c *fiber.Ctx) error {
	return h.socioHandler(c, h.atlas.SocioAt)
}

// GetPriorSocio returns the latest sample strictly before a year.
func (h *Handler) GetPriorSocio(c *fiber.Ctx) error {
	return h.socioHandler(c, h.atlas.PriorSocioAt)
}

// Classify returns the band and colors of a DVI value.
func (h *Handler) Classify(c *fiber.Ctx) error {
	dvi, err := queryFloat(c, "dvi")
	if err != nil {
		return err
	}
	nd, err := queryBool(c, "new_development")
	if err != nil {
		return err
	}
	return c.JSON(h.atlas.Classify(dvi, nd))
}

// Change returns the relative change of current against prior. There is no
// body when prior is missing or zero.
func (h *Handler) Change(c *fiber.Ctx) error {
	current, err := queryFloat(c, "current")
	if err != nil {
		return err
	}
	var prior *float64
	if c.Query("prior") != "" {
		p, err := queryFloat(c, "prior")
		if err != nil {
			return err
		}
		prior = &p
	}
	worse, err := queryBool(c, "higher_is_worse")
	if err != nil {
		return err
	}

	change := algo.ChangeOf(current, prior, worse)
	if change == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(change)
}

// Bands returns the band legend.
func (h *Handler) Bands(c *fiber.Ctx) error {
	uppers := []float64{schema.StableMax, schema.EarlyPressureMax, schema.ActiveDisplacementMax}
	out := make([]bandInfo, 0, len(schema.AllBands)+1)
	for i, b := range schema.AllBands {
		info := bandInfo{Band: b, Color: algo.BandColor(b)}
		if i < len(uppers) {
			info.UpperDVI = &uppers[i]
		}
		out = append(out, info)
	}
	out = append(out, bandInfo{Band: schema.NewDevelopmentBand, Color: algo.BandColor(schema.NewDevelopmentBand)})
	return c.JSON(out)
}

// Compare sets two regions side by side at a year.
func (h *Handler) Compare(c *fiber.Ctx) error {
	a, err := h.region(c.Query("a"))
	if err != nil {
		return err
	}
	b, err := h.region(c.Query("b"))
	if err != nil {
		return err
	}
	year, err := h.year(c)
	if err != nil {
		return err
	}
	return c.JSON(h.atlas.Compare(a, b, year))
}
