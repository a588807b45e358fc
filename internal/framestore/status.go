package framestore

import (
	"fmt"
	"io"
	"sort"

	"github.com/eastside-atlas/velocity/schema"
)

// PrintStoreStatus prints frame archive status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	if status.Location != "" {
		_, _ = fmt.Fprintf(w, "Location: %s\n", status.Location)
	}
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Total Region Frames: %d\n", status.TotalFrames)
	}

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
