package framestore

import (
	"fmt"
	"time"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/schema"
)

// ArchiveFrame stores one computed frame as a new run and returns the run ID.
// now supplies timestamps; pass time.Now outside of tests.
func ArchiveFrame(store contract.FrameStore, year int, views []schema.RegionView, params map[string]any, now func() time.Time) (int64, error) {
	runID, err := store.BeginRun(now(), year, params)
	if err != nil {
		return 0, err
	}
	for _, v := range views {
		if err := store.RecordRegionView(runID, v); err != nil {
			return runID, err
		}
	}
	if err := store.EndRun(runID, now(), len(views)); err != nil {
		return runID, fmt.Errorf("failed to finish run %d: %w", runID, err)
	}
	return runID, nil
}
