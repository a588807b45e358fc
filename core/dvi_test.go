package core

import (
	"testing"

	"github.com/eastside-atlas/velocity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rainey    = "Holly / Rainey Street"
	redRiver  = "Red River Cultural District"
	domain    = "The Domain / North Burnet"
	single    = "Single Window"
	unknownRg = "Nowhere"
)

func testObservations() []schema.DviObservation {
	return []schema.DviObservation{
		{Region: rainey, Period: "2000-2010", DVI: 80.6},
		{Region: rainey, Period: "2010-2020", DVI: 48},
		{Region: redRiver, Period: "2000-2010", DVI: 14},
		{Region: redRiver, Period: "2010-2020", DVI: 16},
		{Region: redRiver, Period: "2020-2023", DVI: 22},
		{Region: domain, Period: "2000-2010", DVI: 23},
		{Region: domain, Period: "2010-2020", DVI: 25},
		{Region: single, Period: "2000-2010", DVI: 30},
	}
}

func years(s schema.RegionDviSeries) []int {
	out := make([]int, len(s))
	for i, p := range s {
		out[i] = p.Year
	}
	return out
}

func TestBuildDviEngineSynthesizesTail(t *testing.T) {
	e, err := BuildDviEngine(testObservations())
	require.NoError(t, err)

	s, ok := e.Series(rainey)
	require.True(t, ok)
	assert.Equal(t, []int{1990, 2000, 2010, 2020, 2023, 2025}, years(s))
	assert.Equal(t, 0.0, s[0].Value)
	assert.Equal(t, 0.0, s[1].Value)
	assert.Equal(t, 80.6, s[2].Value)
	assert.Equal(t, 48.0, s[3].Value)
	assert.InDelta(t, 48*0.92, s[4].Value, 1e-9)
	assert.InDelta(t, 48*0.92*0.95, s[5].Value, 1e-9)
}

func TestBuildDviEngineKeepsObservedCurrentYear(t *testing.T) {
	e, err := BuildDviEngine(testObservations())
	require.NoError(t, err)

	s, ok := e.Series(redRiver)
	require.True(t, ok)
	assert.Equal(t, []int{1990, 2000, 2010, 2020, 2023, 2025}, years(s))
	assert.Equal(t, 22.0, s[4].Value)
	assert.InDelta(t, 20.9, s[5].Value, 1e-9)
}

func TestBuildDviEngineSingleObservation(t *testing.T) {
	e, err := BuildDviEngine(testObservations())
	require.NoError(t, err)

	s, ok := e.Series(single)
	require.True(t, ok)
	assert.Equal(t, []int{1990, 2000, 2010, 2023, 2025}, years(s))
	assert.InDelta(t, 27.6, s[3].Value, 1e-9)
	assert.InDelta(t, 26.22, s[4].Value, 1e-9)
}

func TestBuildDviEngineErrors(t *testing.T) {
	tests := []struct {
		name string
		obs  []schema.DviObservation
		want string
	}{
		{
			name: "duplicate end year",
			obs: []schema.DviObservation{
				{Region: "A", Period: "2000-2010", DVI: 1},
				{Region: "A", Period: "2005-2010", DVI: 2},
			},
			want: "duplicate dvi sample for year 2010",
		},
		{
			name: "collides with anchor",
			obs:  []schema.DviObservation{{Region: "A", Period: "1990-2000", DVI: 5}},
			want: "duplicate dvi sample for year 2000",
		},
		{
			name: "malformed period",
			obs:  []schema.DviObservation{{Region: "A", Period: "2010", DVI: 5}},
			want: "invalid period",
		},
		{
			name: "empty region",
			obs:  []schema.DviObservation{{Region: " ", Period: "2000-2010", DVI: 5}},
			want: "empty region",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildDviEngine(tt.obs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDviAt(t *testing.T) {
	e, err := BuildDviEngine(testObservations())
	require.NoError(t, err)

	tests := []struct {
		name   string
		region string
		year   float64
		want   float64
	}{
		{"unknown region", unknownRg, 2015, 0},
		{"before dataset", rainey, 1970, 0},
		{"anchor plateau", rainey, 1995, 0},
		{"first observation", rainey, 2010, 80.6},
		{"midpoint between observations", rainey, 2015, 64.3},
		{"rising from anchor", rainey, 2005, 40.3},
		{"observed current year", redRiver, 2023, 22},
		{"after projection clamps", rainey, 2040, 48 * 0.92 * 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.DviAt(tt.region, tt.year), 1e-9)
		})
	}
}

func TestDviEngineRegions(t *testing.T) {
	e, err := BuildDviEngine(testObservations())
	require.NoError(t, err)
	assert.Equal(t, []string{rainey, redRiver, single, domain}, e.Regions())

	_, ok := e.Series(unknownRg)
	assert.False(t, ok)
}

func TestDviEngineSeriesIsCopy(t *testing.T) {
	e, err := BuildDviEngine(testObservations())
	require.NoError(t, err)

	s, _ := e.Series(rainey)
	s[2].Value = -1
	assert.InDelta(t, 80.6, e.DviAt(rainey, 2010), 1e-9)
}

func TestParsePeriod(t *testing.T) {
	start, end, err := ParsePeriod("2010-2020")
	require.NoError(t, err)
	assert.Equal(t, 2010, start)
	assert.Equal(t, 2020, end)

	_, end, err = ParsePeriod(" 2020 - 2023 ")
	require.NoError(t, err)
	assert.Equal(t, 2023, end)

	for _, bad := range []string{"", "2010", "abcd-2020", "2010-xyz", "2020-2010"} {
		_, _, err := ParsePeriod(bad)
		assert.Error(t, err, bad)
	}
}
