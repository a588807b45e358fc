package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/eastside-atlas/velocity/schema"
)

// SocioEngine answers socioeconomic snapshot queries for any region at any year.
// It is immutable after construction and safe for concurrent use.
type SocioEngine struct {
	samples map[string][]schema.SocioSnapshot // sorted by year, unique years
	regions []string
}

// BuildSocioEngine groups samples by region and sorts them by year.
// Duplicate (region, year) pairs and unknown confidence flags are rejected.
func BuildSocioEngine(samples []schema.SocioSnapshot) (*SocioEngine, error) {
	e := &SocioEngine{samples: make(map[string][]schema.SocioSnapshot)}
	for i, s := range samples {
		if strings.TrimSpace(s.Region) == "" {
			return nil, fmt.Errorf("socio sample %d: empty region", i)
		}
		if _, ok := schema.ValidConfidences[s.Confidence]; !ok {
			return nil, fmt.Errorf("socio sample %d (%s %d): invalid confidence '%s'. must be High or Medium", i, s.Region, s.Year, s.Confidence)
		}
		if _, ok := e.samples[s.Region]; !ok {
			e.regions = append(e.regions, s.Region)
		}
		e.samples[s.Region] = append(e.samples[s.Region], s)
	}

	for region, list := range e.samples {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Year < list[j].Year })
		for i := 1; i < len(list); i++ {
			if list[i].Year == list[i-1].Year {
				return nil, fmt.Errorf("region %q: duplicate socio sample for year %d", region, list[i].Year)
			}
		}
	}
	sort.Strings(e.regions)
	return e, nil
}

// SocioAt returns the snapshot of a region at a year, or nil when the region
// has no samples. Exact and out-of-range years return a stored sample as is;
// other years are interpolated between the bracketing samples.
func (e *SocioEngine) SocioAt(region string, year int) *schema.SocioSnapshot {
	list := e.samples[region]
	if len(list) == 0 {
		return nil
	}
	for _, s := range list {
		if s.Year == year {
			return snapshotCopy(s)
		}
	}
	first, last := list[0], list[len(list)-1]
	if year < first.Year {
		return snapshotCopy(first)
	}
	if year > last.Year {
		return snapshotCopy(last)
	}

	i := sort.Search(len(list), func(i int) bool { return list[i].Year > year }) - 1
	a, b := list[i], list[i+1]
	t := float64(year-a.Year) / float64(b.Year-a.Year)

	conf := schema.MediumConfidence
	if a.Confidence == schema.HighConfidence && b.Confidence == schema.HighConfidence {
		conf = schema.HighConfidence
	}
	return &schema.SocioSnapshot{
		Region:          region,
		Year:            year,
		IncomeAdj:       math.Round(lerpValue(a.IncomeAdj, b.IncomeAdj, t)),
		HomeValue:       math.Round(lerpValue(a.HomeValue, b.HomeValue, t)),
		PctBachelors:    round3(lerpValue(a.PctBachelors, b.PctBachelors, t)),
		PctCostBurdened: round3(lerpValue(a.PctCostBurdened, b.PctCostBurdened, t)),
		Confidence:      conf,
	}
}

// PriorSocioAt returns the latest sample of a region strictly before year, or nil.
func (e *SocioEngine) PriorSocioAt(region string, year int) *schema.SocioSnapshot {
	list := e.samples[region]
	i := sort.Search(len(list), func(i int) bool { return list[i].Year >= year })
	if i == 0 {
		return nil
	}
	return snapshotCopy(list[i-1])
}

// Samples returns a copy of the raw samples of a region, sorted by year.
func (e *SocioEngine) Samples(region string) []schema.SocioSnapshot {
	list := e.samples[region]
	out := make([]schema.SocioSnapshot, len(list))
	copy(out, list)
	return out
}

// Regions returns the regions with socioeconomic samples, sorted by name.
func (e *SocioEngine) Regions() []string {
	out := make([]string, len(e.regions))
	copy(out, e.regions)
	return out
}

func snapshotCopy(s schema.SocioSnapshot) *schema.SocioSnapshot {
	return &s
}

func lerpValue(a, b, t float64) float64 {
	return a + t*(b-a)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
