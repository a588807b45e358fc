// Package core has the interpolation engines and the atlas that serves them.
package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/eastside-atlas/velocity/core/algo"
	"github.com/eastside-atlas/velocity/schema"
)

// DviEngine answers DVI queries for any region at any year.
// It is immutable after construction and safe for concurrent use.
type DviEngine struct {
	series  map[string]schema.RegionDviSeries
	regions []string
}

// BuildDviEngine builds one DVI series per region found in the observations.
//
// Each series starts with zero anchors at 1990 and 2000, takes one point per
// observation at the end year of its period, and is extended to 2023 and 2025
// with decayed values when those years were not observed.
func BuildDviEngine(obs []schema.DviObservation) (*DviEngine, error) {
	grouped := make(map[string][]schema.DviObservation)
	var order []string
	for i, o := range obs {
		if strings.TrimSpace(o.Region) == "" {
			return nil, fmt.Errorf("dvi observation %d: empty region", i)
		}
		if math.IsNaN(o.DVI) || math.IsInf(o.DVI, 0) {
			return nil, fmt.Errorf("dvi observation %d (%s): non-finite dvi %v", i, o.Region, o.DVI)
		}
		if _, ok := grouped[o.Region]; !ok {
			order = append(order, o.Region)
		}
		grouped[o.Region] = append(grouped[o.Region], o)
	}

	e := &DviEngine{series: make(map[string]schema.RegionDviSeries, len(grouped))}
	for _, region := range order {
		s, err := buildDviSeries(grouped[region])
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", region, err)
		}
		e.series[region] = s
	}
	e.regions = order
	sort.Strings(e.regions)
	return e, nil
}

func buildDviSeries(obs []schema.DviObservation) (schema.RegionDviSeries, error) {
	points := schema.RegionDviSeries{
		{Year: schema.DatasetStartYear, Value: 0},
		{Year: schema.ObservationStartYear, Value: 0},
	}
	for _, o := range obs {
		_, end, err := ParsePeriod(o.Period)
		if err != nil {
			return nil, err
		}
		points = append(points, schema.TimeSamplePoint{Year: end, Value: o.DVI})
	}

	if _, ok := findYear(points, schema.CurrentYear); !ok {
		last := points[0]
		for _, p := range points[1:] {
			if p.Year > last.Year {
				last = p
			}
		}
		points = append(points, schema.TimeSamplePoint{
			Year:  schema.CurrentYear,
			Value: last.Value * schema.CurrentYearDecay,
		})
	}
	if _, ok := findYear(points, schema.ProjectionYear); !ok {
		current, _ := findYear(points, schema.CurrentYear)
		points = append(points, schema.TimeSamplePoint{
			Year:  schema.ProjectionYear,
			Value: current.Value * schema.ProjectionYearDecay,
		})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	for i := 1; i < len(points); i++ {
		if points[i].Year == points[i-1].Year {
			return nil, fmt.Errorf("duplicate dvi sample for year %d", points[i].Year)
		}
	}
	return points, nil
}

func findYear(points []schema.TimeSamplePoint, year int) (schema.TimeSamplePoint, bool) {
	for _, p := range points {
		if p.Year == year {
			return p, true
		}
	}
	return schema.TimeSamplePoint{}, false
}

// ParsePeriod splits a "Y1-Y2" period label into its start and end years.
func ParsePeriod(period string) (start, end int, err error) {
	a, b, ok := strings.Cut(strings.TrimSpace(period), "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid period '%s'. must be of the form YYYY-YYYY", period)
	}
	if start, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
		return 0, 0, fmt.Errorf("invalid period start '%s': %w", a, err)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
		return 0, 0, fmt.Errorf("invalid period end '%s': %w", b, err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("invalid period '%s'. end year precedes start year", period)
	}
	return start, end, nil
}

// DviAt returns the DVI of a region at a possibly fractional year.
// Unknown regions yield 0.
func (e *DviEngine) DviAt(region string, year float64) float64 {
	return algo.Lerp(e.series[region], year)
}

// Series returns a copy of the DVI series of a region.
func (e *DviEngine) Series(region string) (schema.RegionDviSeries, bool) {
	s, ok := e.series[region]
	if !ok {
		return nil, false
	}
	out := make(schema.RegionDviSeries, len(s))
	copy(out, s)
	return out, true
}

// Regions returns the regions with a DVI series, sorted by name.
func (e *DviEngine) Regions() []string {
	out := make([]string, len(e.regions))
	copy(out, e.regions)
	return out
}
