package schema

import "time"

// FrameRunRecord represents a row from the velocity_frame_runs table.
type FrameRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	FrameYear     int
	TotalRegions  int
	ConfigParams  *string
}

// RegionFrameRecord represents a row from the velocity_region_frames table.
type RegionFrameRecord struct {
	RunID           int64    `db:"run_id"`
	Region          string   `db:"region"`
	FrameYear       int      `db:"frame_year"`
	DVI             float64  `db:"dvi"`
	Band            string   `db:"band"`
	BandColor       string   `db:"band_color"`
	RampColor       string   `db:"ramp_color"`
	MapFill         string   `db:"map_fill"`
	NewDevelopment  bool     `db:"new_development"`
	IncomeAdj       *float64 `db:"income_adj"`
	HomeValue       *float64 `db:"home_value"`
	PctBachelors    *float64 `db:"pct_bachelors"`
	PctCostBurdened *float64 `db:"pct_cost_burdened"`
	Confidence      *string  `db:"confidence"`
}

// StoreStatus represents the status of the frame archive.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Location      string           `json:"location"` // database name or file path
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalFrames   int              `json:"total_frames"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// Record flattens the view into an archive record under runID.
func (v RegionView) Record(runID int64) RegionFrameRecord {
	rec := RegionFrameRecord{
		RunID:          runID,
		Region:         v.Region,
		FrameYear:      v.Year,
		DVI:            v.DVI,
		Band:           string(v.Band),
		BandColor:      v.BandColor,
		RampColor:      v.RampColor,
		MapFill:        v.MapFill,
		NewDevelopment: v.NewDevelopment,
	}
	if s := v.Current; s != nil {
		income, home, bach, burden := s.IncomeAdj, s.HomeValue, s.PctBachelors, s.PctCostBurdened
		conf := string(s.Confidence)
		rec.IncomeAdj, rec.HomeValue, rec.PctBachelors, rec.PctCostBurdened = &income, &home, &bach, &burden
		rec.Confidence = &conf
	}
	return rec
}
