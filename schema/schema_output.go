package schema

// Change is the relative change of a metric against its prior value.
type Change struct {
	Percent       float64   `json:"percent"`
	Direction     Direction `json:"direction"`
	HigherIsWorse bool      `json:"higher_is_worse"`
}

// Worsened reports whether the change moves the metric in the unfavorable direction.
func (c Change) Worsened() bool {
	up := c.Direction == Up
	if c.HigherIsWorse {
		return up
	}
	return !up
}

// MetricChange is one metric card of a region detail view.
type MetricChange struct {
	Key     MetricKey `json:"key"`
	Label   string    `json:"label"`
	Current float64   `json:"current"`
	Prior   *float64  `json:"prior,omitempty"`
	Change  *Change   `json:"change,omitempty"`
}

// Classification is the band and colors of one DVI value.
type Classification struct {
	DVI            float64 `json:"dvi"`
	NewDevelopment bool    `json:"new_development"`
	Band           Band    `json:"band"`
	BandColor      string  `json:"band_color"`
	RampColor      string  `json:"ramp_color"`
}

// RegionView is everything a presentation layer needs to draw one region at one year.
type RegionView struct {
	Region     string         `json:"region"`
	Year       int            `json:"year"`
	MapFill    string         `json:"map_fill"`
	Current    *SocioSnapshot `json:"current,omitempty"`
	Prior      *SocioSnapshot `json:"prior,omitempty"`
	Changes    []MetricChange `json:"changes,omitempty"`
	Heritage   string         `json:"heritage,omitempty"`
	ShortName  string         `json:"short_name,omitempty"`
	Classification
}

// DviPoint is one sample of a DVI time series result.
type DviPoint struct {
	Year int     `json:"year"`
	DVI  float64 `json:"dvi"`
	Band Band    `json:"band"`
}

// TimeseriesResult is the DVI of a region over a list of years.
type TimeseriesResult struct {
	Region         string     `json:"region"`
	NewDevelopment bool       `json:"new_development"`
	Points         []DviPoint `json:"points"`
}

// MetricDelta is one row of a side-by-side region comparison.
type MetricDelta struct {
	Key   MetricKey `json:"key"`
	Label string    `json:"label"`
	A     float64   `json:"a"`
	B     float64   `json:"b"`
	Delta float64   `json:"delta"` // A - B
}

// RegionComparison compares two regions at one year.
type RegionComparison struct {
	Year     int           `json:"year"`
	RegionA  string        `json:"region_a"`
	RegionB  string        `json:"region_b"`
	DviA     float64       `json:"dvi_a"`
	DviB     float64       `json:"dvi_b"`
	DviDelta float64       `json:"dvi_delta"`
	Metrics  []MetricDelta `json:"metrics,omitempty"` // empty unless both regions have socio data
}
