package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionViewRecord(t *testing.T) {
	view := RegionView{
		Region:  "Holly / Rainey Street",
		Year:    2015,
		MapFill: "#fb923c",
		Current: &SocioSnapshot{
			Region:          "Holly / Rainey Street",
			Year:            2015,
			IncomeAdj:       52000,
			HomeValue:       310000,
			PctBachelors:    0.41,
			PctCostBurdened: 0.38,
			Confidence:      MediumConfidence,
		},
		Classification: Classification{
			DVI:       48.2,
			Band:      ActiveDisplacementBand,
			BandColor: ActiveDisplacementColor,
			RampColor: "#fb923c",
		},
	}

	rec := view.Record(7)
	assert.Equal(t, int64(7), rec.RunID)
	assert.Equal(t, "Holly / Rainey Street", rec.Region)
	assert.Equal(t, 2015, rec.FrameYear)
	assert.Equal(t, 48.2, rec.DVI)
	assert.Equal(t, string(ActiveDisplacementBand), rec.Band)
	assert.False(t, rec.NewDevelopment)
	require.NotNil(t, rec.IncomeAdj)
	assert.Equal(t, 52000.0, *rec.IncomeAdj)
	require.NotNil(t, rec.PctCostBurdened)
	assert.Equal(t, 0.38, *rec.PctCostBurdened)
	require.NotNil(t, rec.Confidence)
	assert.Equal(t, "Medium", *rec.Confidence)

	// The record must not alias the snapshot.
	view.Current.IncomeAdj = 1
	assert.Equal(t, 52000.0, *rec.IncomeAdj)
}

func TestRegionViewRecordWithoutSnapshot(t *testing.T) {
	view := RegionView{
		Region:  "The Domain",
		Year:    2023,
		MapFill: GreenfieldFillColor,
		Classification: Classification{
			NewDevelopment: true,
			Band:           NewDevelopmentBand,
			BandColor:      NewDevelopmentLabelColor,
			RampColor:      GreenfieldFillColor,
		},
	}

	rec := view.Record(1)
	assert.True(t, rec.NewDevelopment)
	assert.Equal(t, string(NewDevelopmentBand), rec.Band)
	assert.Nil(t, rec.IncomeAdj)
	assert.Nil(t, rec.HomeValue)
	assert.Nil(t, rec.PctBachelors)
	assert.Nil(t, rec.PctCostBurdened)
	assert.Nil(t, rec.Confidence)
}
