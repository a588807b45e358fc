package algo

import (
	"math"

	"github.com/eastside-atlas/velocity/schema"
)

// rampSegment is one leg of the continuous DVI color ramp.
type rampSegment struct {
	lo, hi   float64 // DVI range covered by the segment
	from, to string
}

// ramp is ordered by ascending DVI; the last segment saturates at schema.RampMax.
var ramp = []rampSegment{
	{0, schema.StableMax, "#b8e6c8", "#4ade80"},
	{schema.StableMax, schema.EarlyPressureMax, "#4ade80", "#facc15"},
	{schema.EarlyPressureMax, schema.ActiveDisplacementMax, "#facc15", "#fb923c"},
	{schema.ActiveDisplacementMax, schema.RampMax, "#fb923c", "#ef4444"},
}

// BandOf returns the displacement band of a DVI value. Upper bounds are inclusive.
func BandOf(dvi float64) schema.Band {
	switch {
	case dvi <= schema.StableMax:
		return schema.StableBand
	case dvi <= schema.EarlyPressureMax:
		return schema.EarlyPressureBand
	case dvi <= schema.ActiveDisplacementMax:
		return schema.ActiveDisplacementBand
	default:
		return schema.HistoricDisplacementBand
	}
}

// BandColorOf returns the label color of the band a DVI value falls in.
func BandColorOf(dvi float64) string {
	return BandColor(BandOf(dvi))
}

// BandColor returns the label color of a band.
func BandColor(b schema.Band) string {
	switch b {
	case schema.StableBand:
		return schema.StableColor
	case schema.EarlyPressureBand:
		return schema.EarlyPressureColor
	case schema.ActiveDisplacementBand:
		return schema.ActiveDisplacementColor
	case schema.NewDevelopmentBand:
		return schema.NewDevelopmentLabelColor
	default:
		return schema.HistoricDisplacementColor
	}
}

// RampColor returns the continuous map color of a DVI value.
// Greenfield regions and non-positive values get fixed colors.
func RampColor(dvi float64, isNewDevelopment bool, interp ColorInterpolator) string {
	if isNewDevelopment {
		return schema.GreenfieldFillColor
	}
	if dvi <= 0 {
		return schema.NoPressureFillColor
	}
	seg := ramp[len(ramp)-1]
	for _, s := range ramp {
		if dvi <= s.hi {
			seg = s
			break
		}
	}
	t := math.Min((dvi-seg.lo)/(seg.hi-seg.lo), 1)
	return interp.Interpolate(seg.from, seg.to, t)
}

// MapFill returns the fill of a region on the map at a given year.
// Years before the first observation window render with a neutral fill.
func MapFill(dvi float64, isNewDevelopment bool, year int, interp ColorInterpolator) string {
	if year < schema.PreObservationYear {
		return schema.PreObservationFillColor
	}
	return RampColor(dvi, isNewDevelopment, interp)
}

// Classify returns the band and colors of a DVI value.
func Classify(dvi float64, isNewDevelopment bool, interp ColorInterpolator) schema.Classification {
	band := BandOf(dvi)
	if isNewDevelopment {
		band = schema.NewDevelopmentBand
	}
	return schema.Classification{
		DVI:            dvi,
		NewDevelopment: isNewDevelopment,
		Band:           band,
		BandColor:      BandColor(band),
		RampColor:      RampColor(dvi, isNewDevelopment, interp),
	}
}
