package core

import (
	"fmt"
	"sort"

	"github.com/eastside-atlas/velocity/core/algo"
	"github.com/eastside-atlas/velocity/schema"
)

// metricDef describes one socioeconomic metric card.
type metricDef struct {
	key           schema.MetricKey
	label         string
	higherIsWorse bool
	value         func(s *schema.SocioSnapshot) float64
}

// metricDefs are the metric cards in display order.
var metricDefs = []metricDef{
	{schema.IncomeMetric, "Median Income", false, func(s *schema.SocioSnapshot) float64 { return s.IncomeAdj }},
	{schema.HomeValueMetric, "Home Value", false, func(s *schema.SocioSnapshot) float64 { return s.HomeValue }},
	{schema.BachelorsMetric, "Bachelor's+", false, func(s *schema.SocioSnapshot) float64 { return s.PctBachelors }},
	{schema.CostBurdenedMetric, "Cost-Burdened", true, func(s *schema.SocioSnapshot) float64 { return s.PctCostBurdened }},
}

// Atlas bundles the engines, region metadata and color interpolation behind
// one read-only query surface. Build it once at startup and share it.
type Atlas struct {
	dvi     *DviEngine
	socio   *SocioEngine
	meta    map[string]schema.RegionMeta
	keys    map[string]string // schema.RegionKey -> canonical region name
	regions []string
	interp  algo.ColorInterpolator
}

// AtlasOption configures an Atlas.
type AtlasOption func(*atlasOptions)

type atlasOptions struct {
	interp         algo.ColorInterpolator
	newDevelopment []string
}

// WithColorInterpolator replaces the default RGB interpolator.
func WithColorInterpolator(interp algo.ColorInterpolator) AtlasOption {
	return func(o *atlasOptions) { o.interp = interp }
}

// WithNewDevelopment flags additional regions as greenfield.
func WithNewDevelopment(regions ...string) AtlasOption {
	return func(o *atlasOptions) { o.newDevelopment = append(o.newDevelopment, regions...) }
}

// NewAtlas builds both engines from the dataset. Any construction error is
// returned as is so that startup can fail loudly.
func NewAtlas(ds *schema.Dataset, opts ...AtlasOption) (*Atlas, error) {
	if ds == nil {
		return nil, fmt.Errorf("nil dataset")
	}
	o := atlasOptions{interp: algo.RGBInterpolator{}}
	for _, opt := range opts {
		opt(&o)
	}

	dvi, err := BuildDviEngine(ds.Observations)
	if err != nil {
		return nil, fmt.Errorf("failed to build dvi engine: %w", err)
	}
	socio, err := BuildSocioEngine(ds.Samples)
	if err != nil {
		return nil, fmt.Errorf("failed to build socio engine: %w", err)
	}

	a := &Atlas{
		dvi:    dvi,
		socio:  socio,
		meta:   make(map[string]schema.RegionMeta, len(ds.Regions)),
		keys:   make(map[string]string),
		interp: o.interp,
	}
	for _, m := range ds.Regions {
		if _, dup := a.meta[m.Name]; dup {
			return nil, fmt.Errorf("duplicate region metadata for %q", m.Name)
		}
		a.meta[m.Name] = m
	}

	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		a.regions = append(a.regions, name)
		a.keys[schema.RegionKey(name)] = name
	}
	for name := range a.meta {
		add(name)
	}
	for _, name := range dvi.Regions() {
		add(name)
	}
	for _, name := range socio.Regions() {
		add(name)
	}
	sort.Strings(a.regions)

	for _, m := range ds.Regions {
		if m.ShortName != "" {
			if _, taken := a.keys[schema.RegionKey(m.ShortName)]; !taken {
				a.keys[schema.RegionKey(m.ShortName)] = m.Name
			}
		}
	}
	for _, name := range o.newDevelopment {
		canonical, ok := a.Resolve(name)
		if !ok {
			return nil, fmt.Errorf("unknown new-development region %q", name)
		}
		m := a.meta[canonical]
		m.Name = canonical
		m.NewDevelopment = true
		a.meta[canonical] = m
	}
	return a, nil
}

// Regions returns every region known to the atlas, sorted by name.
func (a *Atlas) Regions() []string {
	out := make([]string, len(a.regions))
	copy(out, a.regions)
	return out
}

// Resolve maps a user-supplied name (case and spacing insensitive, or a short
// name) to the canonical region name.
func (a *Atlas) Resolve(name string) (string, bool) {
	canonical, ok := a.keys[schema.RegionKey(name)]
	return canonical, ok
}

// Meta returns the metadata of a region.
func (a *Atlas) Meta(region string) (schema.RegionMeta, bool) {
	m, ok := a.meta[region]
	return m, ok
}

// IsNewDevelopment reports whether a region is flagged as greenfield.
func (a *Atlas) IsNewDevelopment(region string) bool {
	return a.meta[region].NewDevelopment
}

// DviAt returns the DVI of a region at a year, 0 for unknown regions.
func (a *Atlas) DviAt(region string, year float64) float64 {
	return a.dvi.DviAt(region, year)
}

// SocioAt returns the socioeconomic snapshot of a region at a year, or nil.
func (a *Atlas) SocioAt(region string, year int) *schema.SocioSnapshot {
	return a.socio.SocioAt(region, year)
}

// PriorSocioAt returns the latest sample strictly before a year, or nil.
func (a *Atlas) PriorSocioAt(region string, year int) *schema.SocioSnapshot {
	return a.socio.PriorSocioAt(region, year)
}

// Series returns the DVI series of a region.
func (a *Atlas) Series(region string) (schema.RegionDviSeries, bool) {
	return a.dvi.Series(region)
}

// Classify returns the band and colors of a DVI value using the atlas interpolator.
func (a *Atlas) Classify(dvi float64, isNewDevelopment bool) schema.Classification {
	return algo.Classify(dvi, isNewDevelopment, a.interp)
}

// RegionView assembles the detail view of a region at a year.
func (a *Atlas) RegionView(region string, year int) schema.RegionView {
	nd := a.IsNewDevelopment(region)
	dvi := a.dvi.DviAt(region, float64(year))
	meta := a.meta[region]

	view := schema.RegionView{
		Region:         region,
		Year:           year,
		MapFill:        algo.MapFill(dvi, nd, year, a.interp),
		Current:        a.socio.SocioAt(region, year),
		Prior:          a.socio.PriorSocioAt(region, year),
		Heritage:       meta.Heritage,
		ShortName:      meta.ShortName,
		Classification: a.Classify(dvi, nd),
	}
	view.Changes = MetricChanges(view.Current, view.Prior)
	return view
}

// Frame returns the view of every region at a year.
func (a *Atlas) Frame(year int) []schema.RegionView {
	out := make([]schema.RegionView, 0, len(a.regions))
	for _, region := range a.regions {
		out = append(out, a.RegionView(region, year))
	}
	return out
}

// Timeseries samples the DVI of a region at the given years.
// A nil or empty years slice samples schema.ChartYears.
func (a *Atlas) Timeseries(region string, years []int) schema.TimeseriesResult {
	if len(years) == 0 {
		years = schema.ChartYears
	}
	nd := a.IsNewDevelopment(region)
	res := schema.TimeseriesResult{
		Region:         region,
		NewDevelopment: nd,
		Points:         make([]schema.DviPoint, 0, len(years)),
	}
	for _, y := range years {
		dvi := a.dvi.DviAt(region, float64(y))
		band := algo.BandOf(dvi)
		if nd {
			band = schema.NewDevelopmentBand
		}
		res.Points = append(res.Points, schema.DviPoint{Year: y, DVI: dvi, Band: band})
	}
	return res
}

// Compare sets two regions side by side at a year.
func (a *Atlas) Compare(regionA, regionB string, year int) schema.RegionComparison {
	dviA := a.dvi.DviAt(regionA, float64(year))
	dviB := a.dvi.DviAt(regionB, float64(year))
	cmp := schema.RegionComparison{
		Year:     year,
		RegionA:  regionA,
		RegionB:  regionB,
		DviA:     dviA,
		DviB:     dviB,
		DviDelta: dviA - dviB,
	}

	sa, sb := a.socio.SocioAt(regionA, year), a.socio.SocioAt(regionB, year)
	if sa == nil || sb == nil {
		return cmp
	}
	for _, def := range metricDefs {
		va, vb := def.value(sa), def.value(sb)
		cmp.Metrics = append(cmp.Metrics, schema.MetricDelta{
			Key:   def.key,
			Label: def.label,
			A:     va,
			B:     vb,
			Delta: va - vb,
		})
	}
	return cmp
}

// MetricChanges builds the metric cards of a snapshot against its prior.
// It returns nil when there is no current snapshot.
func MetricChanges(now, prior *schema.SocioSnapshot) []schema.MetricChange {
	if now == nil {
		return nil
	}
	out := make([]schema.MetricChange, 0, len(metricDefs))
	for _, def := range metricDefs {
		mc := schema.MetricChange{Key: def.key, Label: def.label, Current: def.value(now)}
		if prior != nil {
			p := def.value(prior)
			mc.Prior = &p
			mc.Change = algo.ChangeOf(mc.Current, mc.Prior, def.higherIsWorse)
		}
		out = append(out, mc)
	}
	return out
}
