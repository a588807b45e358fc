package algo

import (
	"fmt"
	"testing"

	"github.com/eastside-atlas/velocity/schema"
	"github.com/stretchr/testify/assert"
)

// recordingInterpolator captures the blend requested by RampColor.
type recordingInterpolator struct {
	from, to string
	t        float64
}

func (r *recordingInterpolator) Interpolate(a, b string, t float64) string {
	r.from, r.to, r.t = a, b, t
	return fmt.Sprintf("%s>%s@%.4f", a, b, t)
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		dvi       float64
		wantBand  schema.Band
		wantColor string
	}{
		{-5, schema.StableBand, "#16a34a"},
		{0, schema.StableBand, "#16a34a"},
		{20, schema.StableBand, "#16a34a"},
		{20.01, schema.EarlyPressureBand, "#ca8a04"},
		{35, schema.EarlyPressureBand, "#ca8a04"},
		{35.5, schema.ActiveDisplacementBand, "#ea580c"},
		{55, schema.ActiveDisplacementBand, "#ea580c"},
		{55.0001, schema.HistoricDisplacementBand, "#dc2626"},
		{80.6, schema.HistoricDisplacementBand, "#dc2626"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("dvi=%v", tt.dvi), func(t *testing.T) {
			assert.Equal(t, tt.wantBand, BandOf(tt.dvi))
			assert.Equal(t, tt.wantColor, BandColorOf(tt.dvi))
		})
	}
}

func TestBandColorOfNewDevelopment(t *testing.T) {
	assert.Equal(t, "#7c6f5e", BandColor(schema.NewDevelopmentBand))
}

func TestRampColorFixedColors(t *testing.T) {
	interp := &recordingInterpolator{}
	assert.Equal(t, "#c4b5a4", RampColor(40, true, interp))
	assert.Equal(t, "#c4b5a4", RampColor(0, true, interp))
	assert.Equal(t, "#e8e5e0", RampColor(0, false, interp))
	assert.Equal(t, "#e8e5e0", RampColor(-3, false, interp))
	assert.Empty(t, interp.from, "fixed colors must not call the interpolator")
}

func TestRampColorSegments(t *testing.T) {
	tests := []struct {
		dvi      float64
		from, to string
		t        float64
	}{
		{10, "#b8e6c8", "#4ade80", 0.5},
		{20, "#b8e6c8", "#4ade80", 1},
		{27.5, "#4ade80", "#facc15", 0.5},
		{35, "#4ade80", "#facc15", 1},
		{45, "#facc15", "#fb923c", 0.5},
		{55, "#facc15", "#fb923c", 1},
		{70, "#fb923c", "#ef4444", 0.5},
		{85, "#fb923c", "#ef4444", 1},
		{99, "#fb923c", "#ef4444", 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("dvi=%v", tt.dvi), func(t *testing.T) {
			interp := &recordingInterpolator{}
			RampColor(tt.dvi, false, interp)
			assert.Equal(t, tt.from, interp.from)
			assert.Equal(t, tt.to, interp.to)
			assert.InDelta(t, tt.t, interp.t, 1e-9)
		})
	}
}

func TestRampColorWithRGB(t *testing.T) {
	interp := RGBInterpolator{}
	assert.Equal(t, "#4ade80", RampColor(20, false, interp))
	assert.Equal(t, "#facc15", RampColor(35, false, interp))
	assert.Equal(t, "#ef4444", RampColor(99, false, interp))
	assert.Equal(t, "#81e2a4", RampColor(10, false, interp))
}

func TestMapFill(t *testing.T) {
	interp := RGBInterpolator{}
	assert.Equal(t, "#e0ddd7", MapFill(60, false, 1990, interp))
	assert.Equal(t, "#e0ddd7", MapFill(60, true, 1992, interp))
	assert.Equal(t, "#e8e5e0", MapFill(0, false, 1993, interp))
	assert.Equal(t, "#c4b5a4", MapFill(60, true, 2023, interp))
	assert.Equal(t, RampColor(60, false, interp), MapFill(60, false, 2023, interp))
}

func TestClassify(t *testing.T) {
	interp := RGBInterpolator{}

	c := Classify(48, false, interp)
	assert.Equal(t, schema.ActiveDisplacementBand, c.Band)
	assert.Equal(t, "#ea580c", c.BandColor)
	assert.False(t, c.NewDevelopment)

	nd := Classify(48, true, interp)
	assert.Equal(t, schema.NewDevelopmentBand, nd.Band)
	assert.Equal(t, "#7c6f5e", nd.BandColor)
	assert.Equal(t, "#c4b5a4", nd.RampColor)
	assert.Equal(t, 48.0, nd.DVI)
}
