// Package schema has models, constants and formatters for all parts of velocity.
package schema

// TimeSamplePoint is one (year, value) sample of a numeric series.
type TimeSamplePoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// RegionDviSeries is the DVI series for one region, sorted by year with unique years.
type RegionDviSeries []TimeSamplePoint

// DviObservation is one raw DVI measurement as written by the data pipeline.
// The DVI describes the period ending at the second year of Period.
type DviObservation struct {
	Region string  `json:"region"`
	Period string  `json:"period"` // "Y1-Y2", e.g. "2010-2020"
	DVI    float64 `json:"dvi"`
}

// SocioSnapshot holds the socioeconomic indicators of a region in one year.
// Raw samples and interpolated results share this shape.
type SocioSnapshot struct {
	Region          string     `json:"region"`
	Year            int        `json:"year"`
	IncomeAdj       float64    `json:"incomeAdj"`       // inflation-adjusted median household income
	HomeValue       float64    `json:"homeValue"`       // median home value
	PctBachelors    float64    `json:"pctBachelors"`    // share with a bachelor's degree or higher, 0..1
	PctCostBurdened float64    `json:"pctCostBurdened"` // share of cost-burdened households, 0..1
	Confidence      Confidence `json:"confidence"`
}

// RegionMeta is the static metadata of a region.
type RegionMeta struct {
	ID                   int    `json:"region_id"`
	Name                 string `json:"region_name"`
	ShortName            string `json:"short_name,omitempty"`
	Heritage             string `json:"heritage,omitempty"`
	GentrificationStatus string `json:"gentrification_status,omitempty"`
	NewDevelopment       bool   `json:"new_development"` // greenfield area with no displaced population
}

// Label returns the short name when set, otherwise the full name.
func (m RegionMeta) Label() string {
	if m.ShortName != "" {
		return m.ShortName
	}
	return m.Name
}

// Dataset is the full input of the engine: raw DVI observations,
// socioeconomic samples and region metadata.
type Dataset struct {
	Observations []DviObservation `json:"observations"`
	Samples      []SocioSnapshot  `json:"samples"`
	Regions      []RegionMeta     `json:"regions"`
}
