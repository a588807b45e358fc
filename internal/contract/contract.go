// Package contract has the configuration, interfaces and shared helpers of velocity.
package contract

import (
	"time"

	"github.com/eastside-atlas/velocity/schema"
)

// FrameStore archives computed map frames.
type FrameStore interface {
	// BeginRun starts a new archive run and returns its ID.
	BeginRun(startTime time.Time, frameYear int, configParams map[string]any) (int64, error)

	// EndRun marks a run as finished.
	EndRun(runID int64, endTime time.Time, totalRegions int) error

	// RecordRegionView stores one region view under a run.
	RecordRegionView(runID int64, view schema.RegionView) error

	// GetStatus returns archive statistics.
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns returns every archived run.
	GetAllRuns() ([]schema.FrameRunRecord, error)

	// GetAllRegionFrames returns every archived region frame.
	GetAllRegionFrames() ([]schema.RegionFrameRecord, error)

	// Close releases the database connection.
	Close() error
}

// StoreManager provides access to the frame archive.
type StoreManager interface {
	GetFrameStore() FrameStore
}
