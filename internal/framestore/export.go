package framestore

import (
	"errors"
	"fmt"
	"io"

	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/eastside-atlas/velocity/internal/parquet"
)

// ExportFrames writes every archived run and region frame to two Parquet files
// named after outputFile.
func ExportFrames(w io.Writer, store contract.FrameStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no archived frames found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total frame runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total region frames: %d\n", status.TotalFrames)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve frame runs: %w", err)
	}
	frames, err := store.GetAllRegionFrames()
	if err != nil {
		return fmt.Errorf("failed to retrieve region frames: %w", err)
	}

	runsFile := outputFile + ".frame_runs.parquet"
	parquetRuns := parquet.ConvertFrameRunRecords(runs)
	if err := parquet.WriteFrameRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write frame runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d frame runs to: %s\n", len(parquetRuns), runsFile)

	framesFile := outputFile + ".region_frames.parquet"
	parquetFrames := parquet.ConvertRegionFrameRecords(frames)
	if err := parquet.WriteRegionFramesParquet(parquetFrames, framesFile); err != nil {
		return fmt.Errorf("failed to write region frames: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d region frames to: %s\n", len(parquetFrames), framesFile)
	return nil
}
